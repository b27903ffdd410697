package mocks

import (
	"context"

	"filerelay/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockTransferer struct {
	mock.Mock
}

func (m *MockTransferer) Upload(ctx context.Context, localPath, name string, size int64, progress storage.ProgressFunc) (string, error) {
	args := m.Called(ctx, localPath, name, size, progress)
	return args.String(0), args.Error(1)
}
