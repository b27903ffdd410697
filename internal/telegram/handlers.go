package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"filerelay/internal/model"
	"filerelay/internal/service"
)

func (a *Adapter) handleStart(c tele.Context) error {
	return c.Send(textStart, defaultSendOptions)
}

func (a *Adapter) handleUnsupported(c tele.Context) error {
	return c.Send(textUnsupported, defaultSendOptions)
}

// handleMedia ingests one media message and runs the pipeline in its own
// goroutine; concurrent messages relay independently.
func (a *Adapter) handleMedia(c tele.Context) error {
	handle, ok := fileHandleFrom(c.Message())
	if !ok {
		return c.Send(textUnsupported, defaultSendOptions)
	}

	status, err := a.bot.Reply(c.Message(),
		fmt.Sprintf("📄 **File:** `%s`\n📏 **Size:** `%s`\n⏳ **Status:** Received...",
			handle.Name, model.FormatBytes(handle.Size)),
		defaultSendOptions,
	)
	if err != nil {
		return fmt.Errorf("send status message: %w", err)
	}

	reporter := service.NewThrottledReporter(
		&messageSink{bot: a.bot, msg: status},
		a.editInterval,
		a.logger,
	)

	go func() {
		out := a.svc.Relay(context.Background(), handle, reporter)
		if out.Kind == model.OutcomeInstantLinks {
			a.attachBackupButton(status, out.Links)
		}
	}()
	return nil
}

// attachBackupButton adds the "back up to GoFile" action under an instant-links
// result, carrying the record reference in its payload.
func (a *Adapter) attachBackupButton(status *tele.Message, links *model.LinkSet) {
	rm := &tele.ReplyMarkup{}
	btn := rm.Data("⬆️ Back up to GoFile", btnBackup.Unique, strconv.Itoa(links.ShortID), links.Hash)
	rm.Inline(rm.Row(btn))

	if _, err := a.bot.EditReplyMarkup(status, rm); err != nil {
		a.logger.Warn("failed to attach backup button", slog.String("error", err.Error()))
	}
}

// handleBackup converts an earlier instant-links result into a hosted link. The
// stored record rebuilds the file handle; a missing or expired record degrades
// to a not-found reply.
func (a *Adapter) handleBackup(c tele.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Respond(&tele.CallbackResponse{Text: "Malformed backup request"})
	}
	shortID, err := strconv.Atoi(args[0])
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Malformed backup request"})
	}
	hash := args[1]

	if err := c.Respond(&tele.CallbackResponse{Text: "Backing up..."}); err != nil {
		a.logger.Warn("callback ack failed", slog.String("error", err.Error()))
	}

	status, err := a.bot.Send(c.Chat(), "⏳ **Backing up to GoFile...**", defaultSendOptions)
	if err != nil {
		return fmt.Errorf("send status message: %w", err)
	}

	reporter := service.NewThrottledReporter(
		&messageSink{bot: a.bot, msg: status},
		a.editInterval,
		a.logger,
	)

	go func() {
		if _, err := a.svc.Backup(context.Background(), shortID, hash, reporter); err != nil {
			if errors.Is(err, service.ErrRecordNotFound) {
				reporter.Final(textRecordNotFound)
				return
			}
			a.logger.Error("backup failed", slog.Int("short_id", shortID), slog.String("error", err.Error()))
			reporter.Final("❌ **Backup failed.** Please try again later.")
		}
	}()
	return nil
}

func (a *Adapter) handleInfo(c tele.Context) error {
	shortID, hash, ok := parseLookupArgs(c.Args())
	if !ok {
		return c.Send(textInfoUsage, defaultSendOptions)
	}

	rec, err := a.svc.Lookup(context.Background(), shortID, hash)
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			return c.Send(textRecordNotFound, defaultSendOptions)
		}
		a.logger.Error("lookup failed", slog.Int("short_id", shortID), slog.String("error", err.Error()))
		return c.Send("❌ Lookup is unavailable right now.", defaultSendOptions)
	}

	return c.Send(fmt.Sprintf(
		"📄 **File:** `%s`\n"+
			"📏 **Size:** `%s`\n"+
			"🗂 **Kind:** `%s`\n"+
			"🕒 **Stored:** `%s`\n"+
			"⏰ **Expires:** `%s`",
		rec.Name,
		model.FormatBytes(rec.Size),
		rec.Kind,
		rec.CreatedAt.Format("2006-01-02 15:04 MST"),
		rec.ExpiresAt.Format("2006-01-02 15:04 MST"),
	), defaultSendOptions)
}

func (a *Adapter) handleCleanup(c tele.Context) error {
	removed, remaining, err := a.svc.Cleanup(context.Background())
	if err != nil {
		a.logger.Error("cleanup failed", slog.String("error", err.Error()))
		return c.Send("❌ Cleanup failed. Please try again later.", defaultSendOptions)
	}
	return c.Send(fmt.Sprintf(
		"🧹 **Cleanup complete.**\n\n🗑 **Removed:** `%d`\n📦 **Remaining:** `%d`",
		removed, remaining,
	), defaultSendOptions)
}

func (a *Adapter) handleStats(c tele.Context) error {
	st, err := a.svc.Stats(context.Background())
	if err != nil {
		a.logger.Error("stats failed", slog.String("error", err.Error()))
		return c.Send("❌ Stats are unavailable right now.", defaultSendOptions)
	}
	return c.Send(fmt.Sprintf(
		"📊 **Storage statistics**\n\n📦 **Records:** `%d`\n📏 **Total size:** `%s`",
		st.Count, model.FormatBytes(st.TotalSize),
	), defaultSendOptions)
}

// parseLookupArgs validates "/info <id> <hash>" arguments. The id must look like
// a short id; anything else is a usage error, not a lookup.
func parseLookupArgs(args []string) (int, string, bool) {
	if len(args) != 2 {
		return 0, "", false
	}
	shortID, err := strconv.Atoi(args[0])
	if err != nil || shortID < 0 || shortID > 999_999 {
		return 0, "", false
	}
	if args[1] == "" {
		return 0, "", false
	}
	return shortID, args[1], true
}
