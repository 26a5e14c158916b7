package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// commandPrefix marks operator commands in the self chat.
const commandPrefix = "/sbot"

const usageText = `Commands:
/sbot add <chat_id> — add a chat to the summarization filter
/sbot del <chat_id> — remove a chat from the filter
/sbot list — show filtered chats
/sbot sum [chat_id] — summarize new messages`

// handleCommand dispatches a /sbot command from the operator's self chat.
// The command text itself is never persisted.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 || fields[0] != commandPrefix {
		return
	}

	chatID := msg.Chat.ID
	if len(fields) < 2 {
		b.reply(chatID, usageText)
		return
	}

	sub := fields[1]
	args := fields[2:]

	b.log.Debug("command", "sub", sub, "args", args)

	switch sub {
	case "add":
		b.handleAdd(ctx, chatID, args)
	case "del":
		b.handleDel(ctx, chatID, args)
	case "list":
		b.handleList(ctx, chatID)
	case "sum":
		b.handleSum(ctx, chatID, args)
	default:
		b.reply(chatID, usageText)
	}
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, args []string) {
	id, err := ParseChatID(args)
	if err != nil {
		b.reply(chatID, "Usage: /sbot add <chat_id>")
		return
	}

	if err := b.store.AddFilteredChat(ctx, id); err != nil {
		b.log.Error("add filtered chat", "chat_id", id, "error", err)
		return
	}
	b.log.Info("chat added to filter", "chat_id", id)
	b.reply(chatID, fmt.Sprintf("Chat %d added to filter.", id))
}

func (b *Bot) handleDel(ctx context.Context, chatID int64, args []string) {
	id, err := ParseChatID(args)
	if err != nil {
		b.reply(chatID, "Usage: /sbot del <chat_id>")
		return
	}

	if err := b.store.RemoveFilteredChat(ctx, id); err != nil {
		b.log.Error("remove filtered chat", "chat_id", id, "error", err)
		return
	}
	b.log.Info("chat removed from filter", "chat_id", id)
	b.reply(chatID, fmt.Sprintf("Chat %d removed from filter.", id))
}

// handleList re-reads the filter set from storage on every invocation so
// edits are always visible.
func (b *Bot) handleList(ctx context.Context, chatID int64) {
	ids, err := b.store.ListFilteredChats(ctx)
	if err != nil {
		b.log.Error("list filtered chats", "error", err)
		return
	}

	if len(ids) == 0 {
		b.reply(chatID, "No filtered chats yet. Use /sbot add <chat_id> to add one.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Filtered chats:\n")
	for _, id := range ids {
		title := "Unknown"
		if chat, err := b.store.GetChat(ctx, id); err == nil {
			title = chat.Title
		}
		fmt.Fprintf(&sb, "- %d: %s\n", id, title)
	}
	b.reply(chatID, sb.String())
}

// handleSum resolves the summarization scope and runs the pipeline. A given
// chat ID is used verbatim as the scope, whether or not it is filtered;
// without one the scope is all filtered chats.
func (b *Bot) handleSum(ctx context.Context, chatID int64, args []string) {
	var scope []int64
	if len(args) > 0 {
		id, err := ParseChatID(args)
		if err != nil {
			b.reply(chatID, "Usage: /sbot sum [chat_id]")
			return
		}
		scope = []int64{id}
	} else {
		ids, err := b.store.ListFilteredChats(ctx)
		if err != nil {
			b.log.Error("list filtered chats", "error", err)
			return
		}
		scope = ids
	}

	if !b.sumMu.TryLock() {
		b.reply(chatID, "Summarization is already running.")
		return
	}
	defer b.sumMu.Unlock()

	b.runSummarization(ctx, chatID, scope)
}
