package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore defines an interface for database operations
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, key entities.CommitKey, payload []byte) error
	GetSnapshot(ctx context.Context, key entities.CommitKey) (*entities.Snapshot, error)
	DeleteSnapshot(ctx context.Context, key entities.CommitKey) error
}

// GormSnapshotStore is a GORM-based implementation of SnapshotStore
type GormSnapshotStore struct {
	db *gorm.DB
}

// NewGormSnapshotStore initializes a new GormSnapshotStore
func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{db: db}
}

// SaveSnapshot inserts the payload for key, replacing any payload stored earlier
func (s *GormSnapshotStore) SaveSnapshot(ctx context.Context, key entities.CommitKey, payload []byte) error {
	snapshot := &entities.Snapshot{
		Owner:   key.Owner,
		Repo:    key.Repo,
		SHA:     key.SHA,
		Payload: string(payload),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner"}, {Name: "repo"}, {Name: "sha"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(snapshot).
		Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

// GetSnapshot retrieves the stored payload for key
func (s *GormSnapshotStore) GetSnapshot(ctx context.Context, key entities.CommitKey) (*entities.Snapshot, error) {
	var snapshot entities.Snapshot
	err := s.db.WithContext(ctx).
		Where("owner = ? AND repo = ? AND sha = ?", key.Owner, key.Repo, key.SHA).
		First(&snapshot).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve snapshot %s: %w", key, err)
	}
	return &snapshot, nil
}

func (s *GormSnapshotStore) DeleteSnapshot(ctx context.Context, key entities.CommitKey) error {
	err := s.db.WithContext(ctx).
		Where("owner = ? AND repo = ? AND sha = ?", key.Owner, key.Repo, key.SHA).
		Delete(&entities.Snapshot{}).
		Error
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}
