package entities

import (
	"fmt"
	"time"
)

// FileKind names one of the changed-file categories of a commit
type FileKind string

const (
	FilesAdded    FileKind = "added"
	FilesRemoved  FileKind = "removed"
	FilesModified FileKind = "modified"
)

// FileKinds lists the categories in display order
var FileKinds = []FileKind{FilesAdded, FilesRemoved, FilesModified}

// Valid reports whether k is one of the known categories
func (k FileKind) Valid() bool {
	switch k {
	case FilesAdded, FilesRemoved, FilesModified:
		return true
	}
	return false
}

// Verb is the past-tense word shown next to a file count
func (k FileKind) Verb() string {
	if k == FilesModified {
		return "changed"
	}
	return string(k)
}

// IssueKind classifies a problem recovered while deriving a single field
type IssueKind string

const (
	IssueMissingField   IssueKind = "missing_field"
	IssueMalformedArray IssueKind = "malformed_array"
	IssueDateParse      IssueKind = "date_parse"
)

// FieldIssue records a payload field that could not be read and was defaulted
type FieldIssue struct {
	Field string    `json:"field"`
	Kind  IssueKind `json:"kind"`
}

// CommitView is the display-ready form of a single commit
type CommitView struct {
	AuthorLogin           string                `json:"author_login"`
	CommitterLogin        string                `json:"committer_login"`
	AuthorName            string                `json:"author_name"`
	CommitterName         string                `json:"committer_name"`
	AuthorAvatarKey       string                `json:"author_avatar_key,omitempty"`
	CommitterAvatarKey    string                `json:"committer_avatar_key,omitempty"`
	Message               string                `json:"message"`
	AuthoredAt            *time.Time            `json:"authored_at,omitempty"`
	CommittedAt           *time.Time            `json:"committed_at,omitempty"`
	AuthorRelativeTime    string                `json:"author_relative_time"`
	CommitterRelativeTime string                `json:"committer_relative_time"`
	FilesAdded            int                   `json:"files_added"`
	FilesRemoved          int                   `json:"files_removed"`
	FilesChanged          int                   `json:"files_changed"`
	Files                 map[FileKind][]string `json:"files"`
	Issues                []FieldIssue          `json:"issues,omitempty"`
}

// SameIdentity reports whether author and committer should be shown as one person
func (v *CommitView) SameIdentity() bool {
	return v.AuthorLogin == v.CommitterLogin
}

// FileCount returns the number of files in the given category
func (v *CommitView) FileCount(kind FileKind) int {
	switch kind {
	case FilesAdded:
		return v.FilesAdded
	case FilesRemoved:
		return v.FilesRemoved
	case FilesModified:
		return v.FilesChanged
	}
	return 0
}

// FileLabel returns e.g. "3 files added", or "" when the category is empty
func (v *CommitView) FileLabel(kind FileKind) string {
	n := v.FileCount(kind)
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d files %s", n, kind.Verb())
}
