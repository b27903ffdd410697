package mocks

import (
	"context"

	"filerelay/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, handle model.FileHandle, serverPath string) (*model.LinkSet, error) {
	args := m.Called(ctx, handle, serverPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LinkSet), args.Error(1)
}
