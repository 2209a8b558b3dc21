package mocks

import (
	"context"

	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/stretchr/testify/mock"
)

// SnapshotStore mock
type SnapshotStore struct {
	mock.Mock
}

func (m *SnapshotStore) SaveSnapshot(ctx context.Context, key entities.CommitKey, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func (m *SnapshotStore) GetSnapshot(ctx context.Context, key entities.CommitKey) (*entities.Snapshot, error) {
	args := m.Called(ctx, key)
	snapshot, _ := args.Get(0).(*entities.Snapshot)
	return snapshot, args.Error(1)
}

func (m *SnapshotStore) DeleteSnapshot(ctx context.Context, key entities.CommitKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
