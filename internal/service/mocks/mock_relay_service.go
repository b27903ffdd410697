package mocks

import (
	"context"

	"filerelay/internal/model"
	"filerelay/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRelayService struct {
	mock.Mock
}

func (m *MockRelayService) Relay(ctx context.Context, handle model.FileHandle, reporter service.StatusReporter) model.Outcome {
	args := m.Called(ctx, handle, reporter)
	return args.Get(0).(model.Outcome)
}

func (m *MockRelayService) Backup(ctx context.Context, shortID int, hash string, reporter service.StatusReporter) (model.Outcome, error) {
	args := m.Called(ctx, shortID, hash, reporter)
	return args.Get(0).(model.Outcome), args.Error(1)
}

func (m *MockRelayService) Lookup(ctx context.Context, shortID int, hash string) (*model.TransferRecord, error) {
	args := m.Called(ctx, shortID, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransferRecord), args.Error(1)
}

func (m *MockRelayService) Cleanup(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockRelayService) Stats(ctx context.Context) (*model.RecordStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecordStats), args.Error(1)
}
