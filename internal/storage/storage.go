// Package storage defines the persistence interface and its implementations.
package storage

import (
	"context"
	"time"

	"tg_summary_bot/internal/model"
)

// Storage is the interface for all persistence operations.
type Storage interface {
	SaveMessage(ctx context.Context, chat model.Chat, sender model.Sender, msg model.Message) error
	GetChat(ctx context.Context, id int64) (*model.Chat, error)

	AddFilteredChat(ctx context.Context, chatID int64) error
	RemoveFilteredChat(ctx context.Context, chatID int64) error
	ListFilteredChats(ctx context.Context) ([]int64, error)

	ListUnsummarized(ctx context.Context, chatID int64, since time.Time) ([]model.DigestRow, error)
	MarkSummarized(ctx context.Context, messageIDs []int64) error

	Close() error
}
