// Package bot implements the Telegram update loop, message ingestion, and
// the operator's /sbot command surface.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg_summary_bot/internal/config"
	"tg_summary_bot/internal/storage"
	"tg_summary_bot/internal/summarizer"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot observes every incoming message, persists it, and serves the
// operator's /sbot commands from their private chat.
type Bot struct {
	api       telegramAPI
	store     storage.Storage
	cfg       *config.Config
	completer summarizer.Completer
	log       *slog.Logger

	// Guards the summarization pipeline so an overlapping /sbot sum cannot
	// double-consume rows that are not yet flagged.
	sumMu sync.Mutex
}

// New creates a Bot with the given Telegram token, storage, LLM completer,
// and config.
func New(token string, store storage.Storage, completer summarizer.Completer, cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:       api,
		store:     store,
		cfg:       cfg,
		completer: completer,
		log:       log,
	}, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
// Updates are handled one at a time; a handler runs to completion before the
// next update is dispatched.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// reply sends text to the given chat, split into transport-sized chunks.
func (b *Bot) reply(chatID int64, text string) {
	for _, chunk := range SplitText(text, maxMessageLen) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if _, err := b.api.Send(msg); err != nil {
			b.log.Error("send message", "chat_id", chatID, "error", err)
		}
	}
}
