package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"filerelay/internal/links"
	"filerelay/internal/model"
	"filerelay/internal/repository"
	"filerelay/internal/storage"
)

// ErrRecordNotFound is re-exported so callers of Backup/Lookup do not need to
// import the repository package to detect the miss case.
var ErrRecordNotFound = repository.ErrRecordNotFound

// Platform is the narrow slice of the chat platform the pipeline consumes,
// implemented by the telegram adapter and mocked in tests.
type Platform interface {
	// ResolvePath asks the platform for a transient server-side path for the
	// file. An empty path or an error both mean instant links are unavailable.
	ResolvePath(ctx context.Context, fileID string) (string, error)

	// Download fetches the file's bytes into a local temporary file and returns
	// its path. Ownership of the file passes to the caller.
	Download(ctx context.Context, handle model.FileHandle) (string, error)
}

// runState names the stations one file passes through. Kept as data rather than
// control flow comments so transitions can be logged uniformly.
type runState string

const (
	stateReceived     runState = "received"
	stateResolving    runState = "resolving"
	stateLinkPath     runState = "link_path"
	stateTransferPath runState = "transfer_path"
	stateReporting    runState = "reporting"
	stateDone         runState = "done"
	stateFailed       runState = "failed"
)

// RelayService drives one inbound file through
// resolve → link-generation-or-transfer → persist → report.
type RelayService interface {
	// Relay runs the full pipeline for one inbound file and returns its terminal
	// outcome. The outcome has already been reported through the reporter when
	// Relay returns.
	Relay(ctx context.Context, handle model.FileHandle, reporter StatusReporter) model.Outcome

	// Backup re-enters the pipeline at the transfer path for a previously
	// recorded file, identified by short id and integrity hash. Returns
	// ErrRecordNotFound when the record is missing, expired or the hash does
	// not match.
	Backup(ctx context.Context, shortID int, hash string, reporter StatusReporter) (model.Outcome, error)

	// Lookup returns the stored record for an id/hash pair.
	Lookup(ctx context.Context, shortID int, hash string) (*model.TransferRecord, error)

	// Cleanup sweeps expired records and reports removed and remaining counts.
	Cleanup(ctx context.Context) (removed, remaining int, err error)

	// Stats reports count and total size of records currently held.
	Stats(ctx context.Context) (*model.RecordStats, error)
}

type relayService struct {
	platform       Platform
	generator      links.Generator
	transferer     storage.Transferer
	repo           repository.RecordRepository
	maxFileSize    int64
	resolveTimeout time.Duration
	logger         *slog.Logger
	metrics        *Metrics
	tracer         trace.Tracer
}

// NewRelayService constructs the pipeline with all collaborators injected.
// metrics may be nil when no registry is wired (tests).
func NewRelayService(
	platform Platform,
	generator links.Generator,
	transferer storage.Transferer,
	repo repository.RecordRepository,
	maxFileSize int64,
	resolveTimeout time.Duration,
	logger *slog.Logger,
	metrics *Metrics,
) RelayService {
	return &relayService{
		platform:       platform,
		generator:      generator,
		transferer:     transferer,
		repo:           repo,
		maxFileSize:    maxFileSize,
		resolveTimeout: resolveTimeout,
		logger:         logger,
		metrics:        metrics,
		tracer:         otel.Tracer("filerelay/service"),
	}
}

func (s *relayService) Relay(ctx context.Context, handle model.FileHandle, reporter StatusReporter) (out model.Outcome) {
	start := time.Now()
	logger := s.logger.With(
		slog.String("run_id", uuid.NewString()),
		slog.String("file_unique_id", handle.UniqueID),
		slog.String("kind", string(handle.Kind)),
		slog.Int64("size", handle.Size),
	)

	ctx, span := s.tracer.Start(ctx, "relay.run", trace.WithAttributes(
		attribute.String("relay.media_kind", string(handle.Kind)),
		attribute.Int64("relay.size_bytes", handle.Size),
	))
	defer span.End()

	state := stateReceived
	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline panic recovered",
				slog.String("state", string(state)),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			out = model.Fail(model.FailInternal, fmt.Errorf("unexpected failure: %v", r))
			s.finish(handle, out, reporter, logger)
		}
		span.SetAttributes(attribute.String("relay.outcome", string(out.Kind)))
		s.metrics.ObserveRun(out, time.Since(start))
	}()

	// received: reject oversized input before any collaborator call.
	if handle.Size > s.maxFileSize {
		state = stateFailed
		out = model.Fail(model.FailTooLarge, nil)
		s.finish(handle, out, reporter, logger)
		return out
	}

	state = stateResolving
	logger.Debug("state transition", slog.String("state", string(state)))
	reporter.Progress(renderProgress(handle, "Preparing links..."))

	rctx, cancel := context.WithTimeout(ctx, s.resolveTimeout)
	path, err := s.platform.ResolvePath(rctx, handle.FileID)
	cancel()

	if err == nil && path != "" {
		state = stateLinkPath
		logger.Debug("state transition", slog.String("state", string(state)))

		linkSet, genErr := s.generator.Generate(ctx, handle, path)
		if genErr == nil {
			state = stateDone
			out = model.Instant(linkSet)
			s.finish(handle, out, reporter, logger)
			return out
		}
		// Designed fallback, one hop only: the transfer path is next and last.
		logger.Info("link generation unavailable, falling back to hosted upload",
			slog.String("error", genErr.Error()),
		)
	} else {
		reason := "empty path"
		if err != nil {
			reason = err.Error()
		}
		logger.Info("path resolution unavailable, falling back to hosted upload",
			slog.String("error", reason),
		)
	}

	state = stateTransferPath
	logger.Debug("state transition", slog.String("state", string(state)))

	out = s.transfer(ctx, handle, reporter)
	if out.Kind == model.OutcomeFailed {
		state = stateFailed
	} else {
		state = stateDone
	}
	s.finish(handle, out, reporter, logger)
	return out
}

func (s *relayService) Backup(ctx context.Context, shortID int, hash string, reporter StatusReporter) (model.Outcome, error) {
	rec, err := s.repo.Find(ctx, shortID, hash)
	if err != nil {
		return model.Outcome{}, err
	}

	handle := model.FileHandle{
		FileID:   rec.FileID,
		UniqueID: rec.FileUniqueID,
		Name:     rec.Name,
		Size:     rec.Size,
		Kind:     rec.Kind,
	}
	logger := s.logger.With(
		slog.Int("short_id", shortID),
		slog.String("file_unique_id", handle.UniqueID),
	)

	out := s.transfer(ctx, handle, reporter)
	s.finish(handle, out, reporter, logger)
	return out, nil
}

// transfer is the hosted-upload leg: platform download, then a single outbound
// attempt. The temporary file belongs to the Transferer once handed over.
func (s *relayService) transfer(ctx context.Context, handle model.FileHandle, reporter StatusReporter) model.Outcome {
	reporter.Progress(renderProgress(handle, "Downloading..."))

	localPath, err := s.platform.Download(ctx, handle)
	if err != nil {
		return model.Fail(model.FailUpload, fmt.Errorf("platform download: %w", err))
	}

	url, err := s.transferer.Upload(ctx, localPath, handle.Name, handle.Size, func(status string) {
		reporter.Progress(renderProgress(handle, status))
	})
	if err != nil {
		s.metrics.ObserveTransferError(err)
		return model.Fail(model.FailUpload, err)
	}
	return model.HostedOutcome(url)
}

// finish delivers the terminal message. Reporting failures are logged, never
// retried, and never change the outcome already computed.
func (s *relayService) finish(handle model.FileHandle, out model.Outcome, reporter StatusReporter, logger *slog.Logger) {
	reporter.Final(renderOutcome(handle, out, s.maxFileSize))

	switch out.Kind {
	case model.OutcomeFailed:
		attrs := []any{slog.String("reason", string(out.Reason))}
		if out.Err != nil {
			attrs = append(attrs, slog.String("error", out.Err.Error()))
		}
		logger.Error("relay failed", attrs...)
	default:
		logger.Info("relay done", slog.String("outcome", string(out.Kind)))
	}
}

func (s *relayService) Lookup(ctx context.Context, shortID int, hash string) (*model.TransferRecord, error) {
	return s.repo.Find(ctx, shortID, hash)
}

func (s *relayService) Cleanup(ctx context.Context) (int, int, error) {
	removed, err := s.repo.SweepExpired(ctx)
	if err != nil {
		return 0, 0, err
	}
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return removed, 0, err
	}
	return removed, st.Count, nil
}

func (s *relayService) Stats(ctx context.Context) (*model.RecordStats, error) {
	return s.repo.Stats(ctx)
}

// errorKind extracts the typed transfer error kind, for metrics labels.
func errorKind(err error) string {
	var terr *storage.TransferError
	if errors.As(err, &terr) {
		return string(terr.Kind)
	}
	return "other"
}
