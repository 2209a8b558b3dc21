package service

import (
	"errors"
	"time"

	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/just-nibble/commit-view/internal/core/humanize"
)

// CommitViewBuilder derives display-ready commit views from raw commit payloads
type CommitViewBuilder struct {
	layouts []string
}

// NewCommitViewBuilder creates a builder that understands GitHub's commit date format,
// falling back to RFC 3339 timestamps
func NewCommitViewBuilder() *CommitViewBuilder {
	return &CommitViewBuilder{
		layouts: []string{GitHubTimeLayout, time.RFC3339},
	}
}

// Build derives a CommitView from a commit payload.
//
// Known logins take precedence over the payload's own author/committer logins. Any field that
// cannot be read is defaulted and recorded in the view's Issues; only a payload that is not a JSON
// object fails the whole build.
func (b *CommitViewBuilder) Build(data []byte, known entities.KnownLogins, now time.Time) (*entities.CommitView, error) {
	p, err := decodePayload(data)
	if err != nil {
		return nil, err
	}

	v := &entities.CommitView{
		Files: make(map[entities.FileKind][]string, len(entities.FileKinds)),
	}
	note := func(field string, err error) {
		if err == nil {
			return
		}
		v.Issues = append(v.Issues, entities.FieldIssue{Field: field, Kind: issueKind(err)})
	}

	v.AuthorLogin, err = resolveLogin(p, known.Author, "author")
	note("author.login", err)
	v.CommitterLogin, err = resolveLogin(p, known.Committer, "committer")
	note("committer.login", err)

	v.AuthorName, err = p.str("author", "name")
	note("author.name", err)
	v.CommitterName, err = p.str("committer", "name")
	note("committer.name", err)

	v.Message, err = p.str("message")
	note("message", err)

	v.AuthorAvatarKey = v.AuthorLogin
	v.CommitterAvatarKey = v.CommitterLogin

	if t, err := p.date("authored_date", b.layouts); err == nil {
		v.AuthoredAt = &t
		v.AuthorRelativeTime = humanize.RelativeTime(now, t)
	} else {
		note("authored_date", err)
	}
	if t, err := p.date("committed_date", b.layouts); err == nil {
		v.CommittedAt = &t
		v.CommitterRelativeTime = humanize.RelativeTime(now, t)
	} else {
		note("committed_date", err)
	}

	for _, kind := range entities.FileKinds {
		paths, n, err := p.files(string(kind))
		note(string(kind), err)
		if paths == nil {
			paths = []string{}
		}
		v.Files[kind] = paths
		switch kind {
		case entities.FilesAdded:
			v.FilesAdded = n
		case entities.FilesRemoved:
			v.FilesRemoved = n
		case entities.FilesModified:
			v.FilesChanged = n
		}
	}

	return v, nil
}

func resolveLogin(p payload, known *string, who string) (string, error) {
	if known != nil {
		return *known, nil
	}
	return p.str(who, "login")
}

func issueKind(err error) entities.IssueKind {
	switch {
	case errors.Is(err, ErrMalformedArray):
		return entities.IssueMalformedArray
	case errors.Is(err, ErrDateParse):
		return entities.IssueDateParse
	default:
		return entities.IssueMissingField
	}
}
