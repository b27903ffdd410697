package telegram

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tele "gopkg.in/telebot.v3"

	"filerelay/internal/model"
	"filerelay/internal/service"
)

// platform implements service.Platform on top of the bot API.
type platform struct {
	bot *tele.Bot
	dir string
}

var _ service.Platform = (*platform)(nil)

// ResolvePath asks Telegram for the file's transient server path (getFile). The
// bot API call itself has no context support, so the bound is enforced by
// abandoning the call when ctx expires.
func (p *platform) ResolvePath(ctx context.Context, fileID string) (string, error) {
	type result struct {
		path string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		f, err := p.bot.FileByID(fileID)
		ch <- result{path: f.FilePath, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("resolve file path: %w", r.err)
		}
		return r.path, nil
	}
}

// Download fetches the file's bytes into the download directory. The returned
// path is owned by the caller; there is no way to cancel an in-flight download
// once started.
func (p *platform) Download(_ context.Context, handle model.FileHandle) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	dst := filepath.Join(p.dir, fmt.Sprintf("%s_%s", handle.UniqueID, filepath.Base(handle.Name)))
	f := tele.File{FileID: handle.FileID, UniqueID: handle.UniqueID}
	if err := p.bot.Download(&f, dst); err != nil {
		return "", fmt.Errorf("download file: %w", err)
	}
	return dst, nil
}

// messageSink delivers status texts by editing one status message.
type messageSink struct {
	bot *tele.Bot
	msg *tele.Message
}

var _ service.Sink = (*messageSink)(nil)

func (s *messageSink) Update(text string) error {
	_, err := s.bot.Edit(s.msg, text, defaultSendOptions)
	return err
}
