package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// integrityHashLen is the number of hex characters kept from the digest. Long enough
// that guessing a hash for a known short id is impractical, short enough to fit in a
// chat command.
const integrityHashLen = 10

// TransferRecord maps a short public identifier back to file provenance on the source
// platform. Records are immutable after creation and expire after a fixed retention
// window (the repository that stores them owns the window).
type TransferRecord struct {
	ShortID      int       `json:"short_id"`
	FileID       string    `json:"file_id"`
	FileUniqueID string    `json:"file_unique_id"`
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	Kind         MediaKind `json:"kind"`
	Hash         string    `json:"hash"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Expired reports whether the record is past its retention window at the given time.
func (r *TransferRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// IntegrityHash derives the short capability token for a platform file id. Knowing a
// record's short id alone must not grant access; lookups require this token as well.
// The digest is truncated, so the raw file id cannot be recovered from a link.
func IntegrityHash(fileID string) string {
	sum := sha256.Sum256([]byte(fileID))
	return hex.EncodeToString(sum[:])[:integrityHashLen]
}

// RecordStats summarizes the records a repository currently holds.
type RecordStats struct {
	Count     int   `json:"count"`
	TotalSize int64 `json:"total_size"`
}
