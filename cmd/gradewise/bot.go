package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gradewise/internal/config"
	"gradewise/internal/httpserver"
	"gradewise/internal/llm"
	"gradewise/internal/logging"
	"gradewise/internal/telegram"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot front-end",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logging.NewLogger(logging.Style(cfg.LogStyle), cfg.LogLevel)
		defer log.Sync()

		h, db, err := buildHandle(cfg, log)
		if err != nil {
			return err
		}
		if db != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return err
			}
			if err := h.Repo.Init(ctx); err != nil {
				return err
			}
			log.Info("db connected")
		}

		bot, err := tgbotapi.NewBotAPI(cfg.MustTelegram())
		if err != nil {
			return err
		}
		bot.Debug = false

		def, err := h.Chain.Engines().Get("")
		if err != nil {
			return err
		}
		r := &telegram.Router{
			Bot:        bot,
			H:          h,
			EngManager: llm.NewManager(def),
			Log:        log,
		}

		// The health endpoint runs alongside either bot mode; the
		// dir store's artifacts stay retrievable over HTTP too.
		pdfDir := ""
		if cfg.StorageBackend == "dir" {
			pdfDir = cfg.PDFDir
		}
		mux := httpserver.New(httpserver.Options{Handle: h, PDFDir: pdfDir, DB: db, Log: log})
		addr := "0.0.0.0:" + cfg.Port

		if whURL := strings.TrimSpace(cfg.WebhookURL); whURL != "" {
			return runWebhook(addr, bot, r, whURL, mux, log)
		}
		go func() {
			if err := httpserver.Start(addr, mux, log); err != nil {
				log.Fatal("http server", zap.Error(err))
			}
		}()
		runPolling(context.Background(), bot, log, r.HandleUpdate)
		return nil
	},
}

func runWebhook(addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string, api http.Handler, log *zap.Logger) error {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return err
	}

	// ListenForWebhook registers its handler on the default mux; the
	// API routes mount beside it.
	updates := bot.ListenForWebhook(path)
	http.Handle("/", api)
	go func() {
		for upd := range updates {
			r.HandleUpdate(upd)
		}
		log.Warn("webhook updates channel closed")
	}()

	log.Info("webhook listening", zap.String("addr", addr), zap.String("path", path))
	return http.ListenAndServe(addr, nil)
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 from Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, log *zap.Logger, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			log.Info("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling timeout (sec)

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := retryDelayFromError(err)
			if d < baseDelay {
				d = baseDelay
			}
			if d > maxDelay {
				d = maxDelay
			}
			log.Warn("polling error", zap.Error(err), zap.Duration("retry_in", d))
			time.Sleep(d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

// shortHash derives a stable non-crypto token hash for the webhook
// path.
func shortHash(s string) string {
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
