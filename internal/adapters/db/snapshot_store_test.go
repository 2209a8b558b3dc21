package db

import (
	"context"
	"os"
	"testing"

	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupDB connects to the database named by COMMITVIEW_TEST_DSN, skipping the test when unset
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("COMMITVIEW_TEST_DSN")
	if dsn == "" {
		t.Skip("COMMITVIEW_TEST_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Snapshot{}))
	require.NoError(t, db.Exec("DELETE FROM snapshots").Error)
	return db
}

func TestSaveAndGetSnapshot(t *testing.T) {
	store := NewGormSnapshotStore(setupDB(t))
	ctx := context.Background()
	key := entities.CommitKey{Owner: "eddieringle", Repo: "hubroid", SHA: "abc123"}

	err := store.SaveSnapshot(ctx, key, []byte(`{"message": "first"}`))
	require.NoError(t, err)

	snapshot, err := store.GetSnapshot(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, key, snapshot.Key())
	assert.JSONEq(t, `{"message": "first"}`, snapshot.Payload)
}

func TestSaveSnapshotReplaces(t *testing.T) {
	store := NewGormSnapshotStore(setupDB(t))
	ctx := context.Background()
	key := entities.CommitKey{Owner: "eddieringle", Repo: "hubroid", SHA: "abc123"}

	require.NoError(t, store.SaveSnapshot(ctx, key, []byte(`{"message": "first"}`)))
	require.NoError(t, store.SaveSnapshot(ctx, key, []byte(`{"message": "second"}`)))

	snapshot, err := store.GetSnapshot(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "second"}`, snapshot.Payload)
}

func TestGetSnapshotNotFound(t *testing.T) {
	store := NewGormSnapshotStore(setupDB(t))

	snapshot, err := store.GetSnapshot(context.Background(), entities.CommitKey{Owner: "o", Repo: "r", SHA: "ffff"})
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.Nil(t, snapshot)
}

func TestDeleteSnapshot(t *testing.T) {
	store := NewGormSnapshotStore(setupDB(t))
	ctx := context.Background()
	key := entities.CommitKey{Owner: "o", Repo: "r", SHA: "abcd"}

	require.NoError(t, store.SaveSnapshot(ctx, key, []byte(`{}`)))
	require.NoError(t, store.DeleteSnapshot(ctx, key))

	_, err := store.GetSnapshot(ctx, key)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
