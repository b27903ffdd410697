package mocks

import (
	"context"

	"filerelay/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) ResolvePath(ctx context.Context, fileID string) (string, error) {
	args := m.Called(ctx, fileID)
	return args.String(0), args.Error(1)
}

func (m *MockPlatform) Download(ctx context.Context, handle model.FileHandle) (string, error) {
	args := m.Called(ctx, handle)
	return args.String(0), args.Error(1)
}
