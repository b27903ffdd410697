package storage

// Package storage contains the outbound transfer abstraction and its
// implementations: the GoFile hosting client and an S3-compatible mirror backend.

import (
	"context"
	"fmt"
)

// ProgressFunc receives short human-readable status lines during an upload. It
// must not block; throttling is the caller's concern.
type ProgressFunc func(status string)

// Transferer uploads a local file to a remote target and returns a shareable URL.
//
// Ownership contract: the local file at localPath belongs to the Transferer for the
// duration of the call and is removed on every exit path, success and failure
// alike. Implementations make a single attempt; they never retry internally.
type Transferer interface {
	Upload(ctx context.Context, localPath, name string, size int64, progress ProgressFunc) (string, error)
}

// ErrorKind classifies how an upload attempt failed.
type ErrorKind string

const (
	// ErrHTTP means the target answered with a non-200 status.
	ErrHTTP ErrorKind = "http"
	// ErrEmptyResponse means the target answered 200 with an empty body.
	ErrEmptyResponse ErrorKind = "empty_response"
	// ErrMalformedResponse means the body was not parseable as the expected format.
	ErrMalformedResponse ErrorKind = "malformed_response"
	// ErrRejected means the response parsed but its status field was not the
	// success marker.
	ErrRejected ErrorKind = "rejected"
	// ErrIncompleteResult means a success response was missing the result field.
	ErrIncompleteResult ErrorKind = "incomplete_result"
	// ErrTimeout means the attempt exceeded its computed deadline.
	ErrTimeout ErrorKind = "timeout"
	// ErrConnection means the request failed at the transport level.
	ErrConnection ErrorKind = "connection"
)

// TransferError is the typed failure returned by a Transferer. It is always
// returned, never panicked, and carries enough to log without re-parsing strings.
type TransferError struct {
	Kind   ErrorKind
	Status int // HTTP status code, when Kind is ErrHTTP
	Err    error
}

func (e *TransferError) Error() string {
	switch {
	case e.Kind == ErrHTTP:
		return fmt.Sprintf("transfer failed: http status %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("transfer failed: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("transfer failed: %s", e.Kind)
	}
}

func (e *TransferError) Unwrap() error { return e.Err }
