package tfs

import (
	"strings"
	"time"
)

// Author is the identity attached to a changeset on the server
type Author struct {
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName"`
}

// Changeset is a committed TFVC changeset
type Changeset struct {
	ChangesetId int       `json:"changesetId"`
	Author      Author    `json:"author"`
	CreatedDate time.Time `json:"createdDate"`
	Comment     string    `json:"comment"`
}

// Item is a versioned file or folder on the server
type Item struct {
	Path     string `json:"path"`
	Version  int    `json:"version"`
	IsFolder bool   `json:"isFolder"`
}

// Change is a single item change within a changeset
type Change struct {
	ChangeType string `json:"changeType"`
	Item       Item   `json:"item"`
}

// IsDelete reports whether the change removes the item. The server reports
// changeType as a comma-separated list, e.g. "delete, sourceRename".
func (c Change) IsDelete() bool {
	for _, part := range strings.Split(c.ChangeType, ",") {
		if strings.TrimSpace(part) == "delete" {
			return true
		}
	}
	return false
}

// PendingChange is one item change in an outgoing checkin
type PendingChange struct {
	ChangeType string
	ServerPath string
	Content    string
}

// CreateChangesetRequest describes a checkin to send to the server
type CreateChangesetRequest struct {
	Comment string
	Changes []PendingChange
}
