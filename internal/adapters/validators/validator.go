package validators

import (
	"errors"
	"regexp"
	"strings"

	"github.com/just-nibble/commit-view/internal/core/domain/entities"
)

var (
	ErrInvalidRepo = errors.New("invalid repo")
	ErrInvalidSHA  = errors.New("invalid commit sha")
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	shaPattern  = regexp.MustCompile(`^[0-9a-fA-F]{4,40}$`)
)

// Repo is an "owner/name" repository reference
type Repo string

func (r *Repo) Validate() error {
	_, _, err := r.Split()
	return err
}

// Split returns the owner and name parts of the reference
func (r *Repo) Split() (string, string, error) {
	repoSlice := strings.Split(string(*r), "/")
	if len(repoSlice) != 2 {
		return "", "", ErrInvalidRepo
	}
	if !namePattern.MatchString(repoSlice[0]) || !namePattern.MatchString(repoSlice[1]) {
		return "", "", ErrInvalidRepo
	}
	return repoSlice[0], repoSlice[1], nil
}

// CommitKey validates the parts of a commit reference and assembles the key
func CommitKey(owner, name, sha string) (entities.CommitKey, error) {
	repo := Repo(owner + "/" + name)
	if err := repo.Validate(); err != nil {
		return entities.CommitKey{}, err
	}
	if !shaPattern.MatchString(sha) {
		return entities.CommitKey{}, ErrInvalidSHA
	}
	return entities.CommitKey{Owner: owner, Repo: name, SHA: strings.ToLower(sha)}, nil
}
