package telegram

import (
	"fmt"
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v3"

	"filerelay/internal/config"
	"filerelay/internal/service"
)

// btnBackup is the inline "back up to GoFile" action attached to instant-link
// results. Its payload carries the record's short id and hash.
var btnBackup = tele.Btn{Unique: "backup"}

// defaultSendOptions is how every outbound message is rendered.
var defaultSendOptions = &tele.SendOptions{
	ParseMode:             tele.ModeMarkdown,
	DisableWebPagePreview: true,
}

// Adapter connects the relay pipeline to Telegram: it ingests media messages
// into FileHandles, runs each through the pipeline in its own goroutine, and
// exposes the platform capabilities the pipeline consumes.
type Adapter struct {
	bot          *tele.Bot
	svc          service.RelayService
	logger       *slog.Logger
	downloadDir  string
	editInterval time.Duration
}

// New creates the adapter and registers all handlers. The relay service is bound
// afterwards with Bind, since it needs this adapter's Platform to be built.
func New(cfg config.TelegramConfig, relayCfg config.RelayConfig, logger *slog.Logger) (*Adapter, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: func(err error, c tele.Context) {
			logger.Error("handler error", slog.String("error", err.Error()))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	a := &Adapter{
		bot:          b,
		logger:       logger,
		downloadDir:  relayCfg.DownloadDir,
		editInterval: relayCfg.EditInterval,
	}
	a.register()
	return a, nil
}

// Bind attaches the relay service. Must be called before Start.
func (a *Adapter) Bind(svc service.RelayService) { a.svc = svc }

// Platform returns the capability set the pipeline consumes: server-path
// resolution and byte download.
func (a *Adapter) Platform() service.Platform {
	return &platform{bot: a.bot, dir: a.downloadDir}
}

// Start begins long polling. Blocks until Stop.
func (a *Adapter) Start() { a.bot.Start() }

// Stop terminates the poller.
func (a *Adapter) Stop() { a.bot.Stop() }

func (a *Adapter) register() {
	a.bot.Handle("/start", a.handleStart)
	a.bot.Handle("/help", a.handleStart)
	a.bot.Handle("/info", a.handleInfo)
	a.bot.Handle("/cleanup", a.handleCleanup)
	a.bot.Handle("/stats", a.handleStats)

	for _, ep := range []string{
		tele.OnDocument,
		tele.OnPhoto,
		tele.OnVideo,
		tele.OnAudio,
		tele.OnVoice,
		tele.OnVideoNote,
		tele.OnSticker,
	} {
		a.bot.Handle(ep, a.handleMedia)
	}

	a.bot.Handle(tele.OnText, a.handleUnsupported)
	a.bot.Handle(&btnBackup, a.handleBackup)
}
