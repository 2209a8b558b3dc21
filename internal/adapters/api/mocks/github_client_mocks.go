package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// CommitFetcher mock
type CommitFetcher struct {
	mock.Mock
}

func (m *CommitFetcher) GetCommit(ctx context.Context, owner, repo, sha string) ([]byte, error) {
	args := m.Called(ctx, owner, repo, sha)
	payload, _ := args.Get(0).([]byte)
	return payload, args.Error(1)
}
