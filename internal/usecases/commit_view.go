package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/just-nibble/commit-view/internal/adapters/api"
	"github.com/just-nibble/commit-view/internal/adapters/db"
	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/just-nibble/commit-view/internal/core/service"
	"github.com/just-nibble/commit-view/internal/logger"
)

var ErrUnknownFileKind = errors.New("unknown file kind")

// CommitFetcher retrieves the raw commit document from the source code host
type CommitFetcher interface {
	GetCommit(ctx context.Context, owner, repo, sha string) ([]byte, error)
}

type CommitViewRequest struct {
	Key   entities.CommitKey
	Known entities.KnownLogins
	// Refresh skips the stored snapshot and fetches again
	Refresh bool
}

type CommitViewUsecase interface {
	GetCommitView(ctx context.Context, req CommitViewRequest) (*entities.CommitView, error)
	GetCommitFiles(ctx context.Context, key entities.CommitKey, kind entities.FileKind) ([]string, error)
}

type commitViewUsecase struct {
	fetcher   CommitFetcher
	snapshots db.SnapshotStore
	builder   *service.CommitViewBuilder
	now       func() time.Time
	log       *logger.Logger
}

// NewCommitViewUsecase wires the usecase. snapshots may be nil to disable persistence,
// now may be nil to use the wall clock.
func NewCommitViewUsecase(fetcher CommitFetcher, snapshots db.SnapshotStore, now func() time.Time, log *logger.Logger) CommitViewUsecase {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.Nop()
	}
	return &commitViewUsecase{
		fetcher:   fetcher,
		snapshots: snapshots,
		builder:   service.NewCommitViewBuilder(),
		now:       now,
		log:       log,
	}
}

func (u *commitViewUsecase) GetCommitView(ctx context.Context, req CommitViewRequest) (*entities.CommitView, error) {
	payload, err := u.loadPayload(ctx, req.Key, req.Refresh)
	if err != nil {
		return nil, err
	}

	view, err := u.builder.Build(payload, req.Known, u.now())
	if err != nil {
		return nil, fmt.Errorf("failed to build view for %s: %w", req.Key, err)
	}

	for _, issue := range view.Issues {
		u.log.Debugf("commit %s: %s defaulted (%s)", req.Key, issue.Field, issue.Kind)
	}

	return view, nil
}

func (u *commitViewUsecase) GetCommitFiles(ctx context.Context, key entities.CommitKey, kind entities.FileKind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFileKind, kind)
	}

	view, err := u.GetCommitView(ctx, CommitViewRequest{Key: key})
	if err != nil {
		return nil, err
	}

	return view.Files[kind], nil
}

// loadPayload prefers the stored snapshot and falls back to the fetcher, persisting what it fetched
func (u *commitViewUsecase) loadPayload(ctx context.Context, key entities.CommitKey, refresh bool) ([]byte, error) {
	if u.snapshots != nil && !refresh {
		snapshot, err := u.snapshots.GetSnapshot(ctx, key)
		switch {
		case err == nil:
			return []byte(snapshot.Payload), nil
		case !errors.Is(err, db.ErrSnapshotNotFound):
			u.log.Warn(fmt.Sprintf("snapshot lookup for %s failed, fetching", key), err)
		}
	}

	payload, err := u.fetcher.GetCommit(ctx, key.Owner, key.Repo, key.SHA)
	if err != nil {
		return nil, FetchError(key, err)
	}

	if u.snapshots != nil {
		if err := u.snapshots.SaveSnapshot(ctx, key, payload); err != nil {
			u.log.Warn(fmt.Sprintf("failed to store snapshot for %s", key), err)
		}
	}

	return payload, nil
}

// FetchError attributes a fetch failure to key, marking it with api.ErrFetchFailed unless the
// fetcher already did
func FetchError(key entities.CommitKey, err error) error {
	if errors.Is(err, api.ErrFetchFailed) {
		return fmt.Errorf("%s: %w", key, err)
	}
	return fmt.Errorf("%s: %w: %w", key, api.ErrFetchFailed, err)
}
