package repository

// Package repository contains data access layer abstractions for transfer records.
// Implementations live in subpackages (postgres for the durable store, memory for
// the in-process fallback).

import (
	"context"
	"errors"

	"filerelay/internal/model"
)

// ErrRecordNotFound is returned by Find for a missing record, a wrong integrity
// hash, or an expired record alike. Callers must not be able to tell which.
var ErrRecordNotFound = errors.New("transfer record not found")

// RecordRepository defines persistence for TransferRecords. No business logic here,
// strictly storage operations. Implementations must be safe for concurrent use and
// own their retention window: Create stamps ExpiresAt from CreatedAt plus the
// repository's TTL.
type RecordRepository interface {
	// Create inserts a new transfer record and returns the stored record with
	// CreatedAt/ExpiresAt populated.
	Create(ctx context.Context, rec *model.TransferRecord) (*model.TransferRecord, error)

	// Find returns the record whose short id and integrity hash both match and
	// whose retention window has not passed. Every other case is ErrRecordNotFound.
	Find(ctx context.Context, shortID int, hash string) (*model.TransferRecord, error)

	// SweepExpired removes records past their retention window and returns how
	// many were removed. Calling it twice in a row removes nothing the second time.
	SweepExpired(ctx context.Context) (int, error)

	// Stats returns the count and total size of records currently held.
	Stats(ctx context.Context) (*model.RecordStats, error)
}
