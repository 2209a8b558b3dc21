package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/just-nibble/commit-view/internal/adapters/api"
	apimocks "github.com/just-nibble/commit-view/internal/adapters/api/mocks"
	"github.com/just-nibble/commit-view/internal/adapters/db"
	dbmocks "github.com/just-nibble/commit-view/internal/adapters/db/mocks"
	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/just-nibble/commit-view/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testKey  = entities.CommitKey{Owner: "eddieringle", Repo: "hubroid", SHA: "abc123"}
	fixedNow = func() time.Time { return time.Date(2011, 5, 2, 10, 0, 0, 0, time.UTC) }
)

const testPayload = `{
	"author": {"login": "eddie", "name": "Eddie R"},
	"committer": {"login": "octocat", "name": "Mona"},
	"message": "fix bug",
	"authored_date": "2011-05-01T10:00:00+0000",
	"committed_date": "2011-05-02T08:00:00+0000",
	"added": ["x"],
	"removed": [],
	"modified": ["y", "z"]
}`

// TestCommitViewUsecase_GetCommitView_FetchesAndStores tests the path where no snapshot exists yet
func TestCommitViewUsecase_GetCommitView_FetchesAndStores(t *testing.T) {
	// Arrange
	fetcher := new(apimocks.CommitFetcher)
	store := new(dbmocks.SnapshotStore)

	store.On("GetSnapshot", mock.Anything, testKey).Return(nil, db.ErrSnapshotNotFound)
	fetcher.On("GetCommit", mock.Anything, "eddieringle", "hubroid", "abc123").Return([]byte(testPayload), nil)
	store.On("SaveSnapshot", mock.Anything, testKey, []byte(testPayload)).Return(nil)

	uc := NewCommitViewUsecase(fetcher, store, fixedNow, nil)

	// Act
	view, err := uc.GetCommitView(context.TODO(), CommitViewRequest{Key: testKey})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "eddie", view.AuthorLogin)
	assert.Equal(t, "octocat", view.CommitterLogin)
	assert.Equal(t, "1 day ago", view.AuthorRelativeTime)
	assert.Equal(t, "2 hours ago", view.CommitterRelativeTime)
	assert.Equal(t, 1, view.FilesAdded)
	assert.Equal(t, 2, view.FilesChanged)

	fetcher.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestCommitViewUsecase_GetCommitView_RestoresFromSnapshot(t *testing.T) {
	fetcher := new(apimocks.CommitFetcher)
	store := new(dbmocks.SnapshotStore)

	store.On("GetSnapshot", mock.Anything, testKey).Return(&entities.Snapshot{
		Owner: testKey.Owner, Repo: testKey.Repo, SHA: testKey.SHA, Payload: testPayload,
	}, nil)

	uc := NewCommitViewUsecase(fetcher, store, fixedNow, nil)

	bob := "bob"
	view, err := uc.GetCommitView(context.TODO(), CommitViewRequest{
		Key:   testKey,
		Known: entities.KnownLogins{Author: &bob},
	})

	require.NoError(t, err)
	assert.Equal(t, "bob", view.AuthorLogin)
	assert.Equal(t, "Eddie R", view.AuthorName)
	fetcher.AssertNotCalled(t, "GetCommit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestCommitViewUsecase_GetCommitView_RefreshSkipsSnapshot(t *testing.T) {
	fetcher := new(apimocks.CommitFetcher)
	store := new(dbmocks.SnapshotStore)

	fetcher.On("GetCommit", mock.Anything, "eddieringle", "hubroid", "abc123").Return([]byte(testPayload), nil)
	store.On("SaveSnapshot", mock.Anything, testKey, mock.Anything).Return(nil)

	uc := NewCommitViewUsecase(fetcher, store, fixedNow, nil)

	_, err := uc.GetCommitView(context.TODO(), CommitViewRequest{Key: testKey, Refresh: true})

	require.NoError(t, err)
	store.AssertNotCalled(t, "GetSnapshot", mock.Anything, mock.Anything)
	fetcher.AssertExpectations(t)
}

func TestCommitViewUsecase_GetCommitView_FetchFailure(t *testing.T) {
	fetcher := new(apimocks.CommitFetcher)
	store := new(dbmocks.SnapshotStore)

	store.On("GetSnapshot", mock.Anything, testKey).Return(nil, db.ErrSnapshotNotFound)
	fetcher.On("GetCommit", mock.Anything, "eddieringle", "hubroid", "abc123").
		Return(nil, api.ErrFetchFailed)

	uc := NewCommitViewUsecase(fetcher, store, fixedNow, nil)

	view, err := uc.GetCommitView(context.TODO(), CommitViewRequest{Key: testKey})

	assert.Nil(t, view)
	assert.ErrorIs(t, err, api.ErrFetchFailed)
	assert.Equal(t, 1, strings.Count(err.Error(), api.ErrFetchFailed.Error()))
	store.AssertNotCalled(t, "SaveSnapshot", mock.Anything, mock.Anything, mock.Anything)
}

func TestCommitViewUsecase_GetCommitView_PlainFetchErrorIsMarked(t *testing.T) {
	fetcher := new(apimocks.CommitFetcher)
	fetcher.On("GetCommit", mock.Anything, "eddieringle", "hubroid", "abc123").
		Return(nil, errors.New("dial tcp: connection refused"))

	uc := NewCommitViewUsecase(fetcher, nil, fixedNow, nil)

	_, err := uc.GetCommitView(context.TODO(), CommitViewRequest{Key: testKey})

	assert.ErrorIs(t, err, api.ErrFetchFailed)
	assert.EqualError(t, err, "eddieringle/hubroid@abc123: commit fetch failed: dial tcp: connection refused")
}

func TestCommitViewUsecase_GetCommitView_StoreErrorsAreNotFatal(t *testing.T) {
	fetcher := new(apimocks.CommitFetcher)
	store := new(dbmocks.SnapshotStore)

	store.On("GetSnapshot", mock.Anything, testKey).Return(nil, errors.New("connection reset"))
	fetcher.On("GetCommit", mock.Anything, "eddieringle", "hubroid", "abc123").Return([]byte(testPayload), nil)
	store.On("SaveSnapshot", mock.Anything, testKey, mock.Anything).Return(errors.New("connection reset"))

	uc := NewCommitViewUsecase(fetcher, store, fixedNow, nil)

	view, err := uc.GetCommitView(context.TODO(), CommitViewRequest{Key: testKey})

	require.NoError(t, err)
	assert.Equal(t, "fix bug", view.Message)
}

func TestCommitViewUsecase_GetCommitView_InvalidPayload(t *testing.T) {
	fetcher := new(apimocks.CommitFetcher)
	fetcher.On("GetCommit", mock.Anything, "eddieringle", "hubroid", "abc123").Return([]byte(`[]`), nil)

	uc := NewCommitViewUsecase(fetcher, nil, fixedNow, nil)

	view, err := uc.GetCommitView(context.TODO(), CommitViewRequest{Key: testKey})

	assert.Nil(t, view)
	assert.ErrorIs(t, err, service.ErrInvalidPayload)
}

func TestCommitViewUsecase_GetCommitFiles(t *testing.T) {
	fetcher := new(apimocks.CommitFetcher)
	fetcher.On("GetCommit", mock.Anything, "eddieringle", "hubroid", "abc123").Return([]byte(testPayload), nil)

	uc := NewCommitViewUsecase(fetcher, nil, fixedNow, nil)

	files, err := uc.GetCommitFiles(context.TODO(), testKey, entities.FilesModified)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "z"}, files)

	files, err = uc.GetCommitFiles(context.TODO(), testKey, entities.FilesRemoved)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCommitViewUsecase_GetCommitFiles_UnknownKind(t *testing.T) {
	fetcher := new(apimocks.CommitFetcher)
	uc := NewCommitViewUsecase(fetcher, nil, fixedNow, nil)

	_, err := uc.GetCommitFiles(context.TODO(), testKey, entities.FileKind("renamed"))

	assert.ErrorIs(t, err, ErrUnknownFileKind)
	fetcher.AssertNotCalled(t, "GetCommit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
