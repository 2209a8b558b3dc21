package mocks

import (
	"context"

	"github.com/just-nibble/commit-view/internal/core/domain/entities"
	"github.com/just-nibble/commit-view/internal/usecases"
	"github.com/stretchr/testify/mock"
)

// CommitViewUsecase mock
type CommitViewUsecase struct {
	mock.Mock
}

func (m *CommitViewUsecase) GetCommitView(ctx context.Context, req usecases.CommitViewRequest) (*entities.CommitView, error) {
	args := m.Called(ctx, req)
	view, _ := args.Get(0).(*entities.CommitView)
	return view, args.Error(1)
}

func (m *CommitViewUsecase) GetCommitFiles(ctx context.Context, key entities.CommitKey, kind entities.FileKind) ([]string, error) {
	args := m.Called(ctx, key, kind)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}
