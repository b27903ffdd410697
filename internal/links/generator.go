package links

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"filerelay/internal/model"
	"filerelay/internal/repository"
)

// ErrNoServerPath means the platform could not produce a server-side path for the
// file, so instant links cannot be built. The caller falls back to the hosted
// upload path; this is not a fatal error.
var ErrNoServerPath = errors.New("no server path resolved")

// Generator produces instant links for a resolved platform file.
type Generator interface {
	Generate(ctx context.Context, handle model.FileHandle, serverPath string) (*model.LinkSet, error)
}

// LinkGenerator builds deterministic direct/stream URLs from short id, integrity
// hash and sanitized name, and persists the TransferRecord that maps the short id
// back to the file.
type LinkGenerator struct {
	baseURL string
	repo    repository.RecordRepository
	alloc   func() int
	logger  *slog.Logger
}

// NewLinkGenerator wires the generator to its record store and public base URL.
func NewLinkGenerator(baseURL string, repo repository.RecordRepository, logger *slog.Logger) *LinkGenerator {
	return &LinkGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		repo:    repo,
		alloc:   TimeShortID,
		logger:  logger,
	}
}

var _ Generator = (*LinkGenerator)(nil)

// Generate allocates a short id, writes the TransferRecord, then returns the
// LinkSet. A failed record write is logged but does not fail the call: the links
// stay usable as long as the platform file reference resolves, only the lookup
// and backup paths degrade for that record.
func (g *LinkGenerator) Generate(ctx context.Context, handle model.FileHandle, serverPath string) (*model.LinkSet, error) {
	if serverPath == "" {
		return nil, ErrNoServerPath
	}

	shortID := g.alloc()
	hash := model.IntegrityHash(handle.FileID)
	name := SanitizeName(handle.Name)

	links := &model.LinkSet{
		ShortID: shortID,
		Hash:    hash,
		Direct:  fmt.Sprintf("%s/dl/%06d/%s/%s", g.baseURL, shortID, hash, name),
		Stream:  fmt.Sprintf("%s/stream/%06d/%s/%s", g.baseURL, shortID, hash, name),
	}

	rec := &model.TransferRecord{
		ShortID:      shortID,
		FileID:       handle.FileID,
		FileUniqueID: handle.UniqueID,
		Name:         handle.Name,
		Size:         handle.Size,
		Kind:         handle.Kind,
		Hash:         hash,
	}
	if _, err := g.repo.Create(ctx, rec); err != nil {
		g.logger.Error("transfer record write failed, links degrade to unresolvable",
			slog.Int("short_id", shortID),
			slog.String("file_unique_id", handle.UniqueID),
			slog.String("error", err.Error()),
		)
	}

	return links, nil
}

// TimeShortID derives a 6-digit identifier from the millisecond clock. Two
// allocations in the same millisecond (or 10^6 ms apart) collide; the hash gate
// turns a collision into not-found rather than the wrong file.
func TimeShortID() int {
	return int(time.Now().UnixMilli() % 1_000_000)
}

// SanitizeName makes a display name safe inside a URL path segment: parentheses
// are dropped, spaces become underscores, everything else is path-escaped.
func SanitizeName(name string) string {
	r := strings.NewReplacer("(", "", ")", "", " ", "_")
	return url.PathEscape(r.Replace(name))
}
