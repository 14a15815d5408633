package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var styledOutput = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	remoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func render(style lipgloss.Style, s string) string {
	if !styledOutput {
		return s
	}
	return style.Render(s)
}

// Heading styles a section heading for help output
func Heading(s string) string {
	return render(headingStyle, s)
}

// CommandName styles a command name for help output
func CommandName(s string) string {
	return render(commandStyle, s)
}

// RemoteId styles a tfs-remote id in selection messages
func RemoteId(s string) string {
	return render(remoteStyle, s)
}

// Dim styles secondary text
func Dim(s string) string {
	return render(dimStyle, s)
}
