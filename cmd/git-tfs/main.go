package main

import (
	"os"

	"github.com/gius/git-tfs/internal/app"
	"github.com/gius/git-tfs/internal/runtime"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(app.Run(os.Args[1:], runtime.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}))
}
