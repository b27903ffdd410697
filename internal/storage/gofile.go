package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"filerelay/internal/config"
)

const (
	// serverSelectTimeout bounds the best-effort server-selection query; its
	// failure is never fatal to the upload.
	serverSelectTimeout = 10 * time.Second

	uploadTimeoutFloor   = 300 * time.Second
	uploadTimeoutCeiling = 1800 * time.Second
	// secondsPerMiB models the assumed worst-case sustained throughput.
	secondsPerMiB = 15
)

// gofileResponse is the wire shape shared by the server-selection and upload
// endpoints: {status: "ok", data: {...}}.
type gofileResponse struct {
	Status string `json:"status"`
	Data   struct {
		Server       string `json:"server"`
		DownloadPage string `json:"downloadPage"`
	} `json:"data"`
}

// GoFileClient uploads files to the GoFile hosting service. A single attempt per
// call; every failure comes back as a *TransferError.
type GoFileClient struct {
	cfg    config.GoFileConfig
	client *http.Client
	logger *slog.Logger

	// uploadURL builds the target URL for a chosen server. Swapped in tests.
	uploadURL func(server string) string
}

// NewGoFileClient builds a client against the configured GoFile endpoints. The
// transport is traced; request deadlines come from per-call contexts, not a
// client-wide timeout.
func NewGoFileClient(cfg config.GoFileConfig, logger *slog.Logger) *GoFileClient {
	c := &GoFileClient{
		cfg:    cfg,
		client: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		logger: logger,
	}
	c.uploadURL = func(server string) string {
		return fmt.Sprintf("https://%s.%s/uploadFile", server, cfg.UploadHost)
	}
	return c
}

var _ Transferer = (*GoFileClient)(nil)

// Upload streams the file at localPath to GoFile as one multipart body and returns
// the download page URL. The local file is removed on every exit path.
func (c *GoFileClient) Upload(ctx context.Context, localPath, name string, size int64, progress ProgressFunc) (_ string, err error) {
	defer c.removeLocal(localPath)

	report(progress, "Starting upload...")

	server := c.selectServer(ctx)
	target := c.uploadURL(server)

	f, err := os.Open(localPath)
	if err != nil {
		return "", &TransferError{Kind: ErrConnection, Err: fmt.Errorf("open local file: %w", err)}
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout(size))
	defer cancel()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}
		// Empty token keeps the upload anonymous (guest account).
		if err := mw.WriteField("token", c.cfg.AccountToken); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pr)
	if err != nil {
		return "", &TransferError{Kind: ErrConnection, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	report(progress, "Uploading to GoFile...")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &TransferError{Kind: ErrTimeout, Err: err}
		}
		return "", &TransferError{Kind: ErrConnection, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransferError{Kind: ErrConnection, Err: err}
	}

	c.logger.Info("upload response",
		slog.String("server", server),
		slog.Int("status", resp.StatusCode),
		slog.Int("body_bytes", len(body)),
	)

	if resp.StatusCode != http.StatusOK {
		return "", &TransferError{Kind: ErrHTTP, Status: resp.StatusCode}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", &TransferError{Kind: ErrEmptyResponse}
	}

	var parsed gofileResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &TransferError{Kind: ErrMalformedResponse, Err: err}
	}
	if parsed.Status != "ok" {
		return "", &TransferError{Kind: ErrRejected, Err: fmt.Errorf("gofile status %q", parsed.Status)}
	}
	if parsed.Data.DownloadPage == "" {
		return "", &TransferError{Kind: ErrIncompleteResult}
	}

	return parsed.Data.DownloadPage, nil
}

// selectServer queries the server-selection endpoint and falls back to the
// configured default on any failure: non-200, timeout, malformed body.
func (c *GoFileClient) selectServer(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, serverSelectTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.ServerEndpoint, nil)
	if err != nil {
		return c.cfg.DefaultServer
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("server selection failed, using default",
			slog.String("default", c.cfg.DefaultServer),
			slog.String("error", err.Error()),
		)
		return c.cfg.DefaultServer
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.cfg.DefaultServer
	}
	var parsed gofileResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return c.cfg.DefaultServer
	}
	if parsed.Status != "ok" || parsed.Data.Server == "" {
		return c.cfg.DefaultServer
	}
	return parsed.Data.Server
}

func (c *GoFileClient) removeLocal(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.logger.Warn("failed to remove local file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return
	}
	c.logger.Info("cleaned up local file", slog.String("path", path))
}

// UploadTimeout scales the per-attempt deadline with declared size, bounded on
// both ends: 15s per MiB, never under 5 minutes, never over 30.
func UploadTimeout(size int64) time.Duration {
	d := time.Duration(size/(1<<20)) * secondsPerMiB * time.Second
	if d < uploadTimeoutFloor {
		return uploadTimeoutFloor
	}
	if d > uploadTimeoutCeiling {
		return uploadTimeoutCeiling
	}
	return d
}

func report(progress ProgressFunc, status string) {
	if progress != nil {
		progress(status)
	}
}
