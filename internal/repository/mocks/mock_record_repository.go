package mocks

import (
	"context"

	"filerelay/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(ctx context.Context, rec *model.TransferRecord) (*model.TransferRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransferRecord), args.Error(1)
}

func (m *MockRecordRepository) Find(ctx context.Context, shortID int, hash string) (*model.TransferRecord, error) {
	args := m.Called(ctx, shortID, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransferRecord), args.Error(1)
}

func (m *MockRecordRepository) SweepExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRecordRepository) Stats(ctx context.Context) (*model.RecordStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecordStats), args.Error(1)
}
