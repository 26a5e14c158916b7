package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tg_summary_bot/internal/model"
)

// handleMessage is the single entry point for every incoming message. Self
// chat messages are routed to the command interpreter and never persisted;
// everything else is stored. Failures are logged and swallowed so the update
// loop keeps running.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		b.log.Warn("message without chat, skipping")
		return
	}
	sender, ok := resolveSender(msg)
	if !ok {
		b.log.Warn("message without resolvable sender, skipping", "chat_id", msg.Chat.ID)
		return
	}

	if b.isSelfChat(msg) {
		if strings.HasPrefix(msg.Text, commandPrefix) {
			b.handleCommand(ctx, msg)
		}
		return
	}

	chat := model.Chat{ID: msg.Chat.ID, Title: chatTitle(msg.Chat, false)}

	record := model.Message{
		ID:     int64(msg.MessageID),
		Text:   msg.Text,
		Date:   msg.Time(),
		IsNew:  true,
		ChatID: chat.ID,
	}
	record.AuthorID = sender.ID
	if msg.ReplyToMessage != nil {
		replyID := int64(msg.ReplyToMessage.MessageID)
		record.ReplyToMessageID = &replyID
	}

	if err := b.store.SaveMessage(ctx, chat, sender, record); err != nil {
		b.log.Error("save message", "chat_id", chat.ID, "message_id", record.ID, "error", err)
		return
	}

	b.log.Debug("message stored", "chat", chat.Title, "message_id", record.ID)
}

// isSelfChat reports whether the message is the operator talking to the bot
// in their private chat, the exclusive command channel.
func (b *Bot) isSelfChat(msg *tgbotapi.Message) bool {
	return msg.Chat.IsPrivate() && msg.From != nil && msg.From.ID == b.cfg.OperatorID
}

// chatTitle resolves a display title for the chat. The self chat uses the
// reserved "Saved Messages" title, titled chats use their title, and private
// peers fall back to the peer's name.
func chatTitle(chat *tgbotapi.Chat, self bool) string {
	if self {
		return model.SavedMessagesTitle
	}
	if chat.Title != "" {
		return chat.Title
	}
	return strings.TrimSpace(chat.FirstName + " " + chat.LastName)
}

// resolveSender maps the message's sender onto the closed sender variant.
// Channel posts arrive with a sender chat instead of a user.
func resolveSender(msg *tgbotapi.Message) (model.Sender, bool) {
	switch {
	case msg.SenderChat != nil && msg.SenderChat.IsChannel():
		return model.Sender{
			ID:       msg.SenderChat.ID,
			Kind:     model.SenderChannel,
			Title:    msg.SenderChat.Title,
			Username: msg.SenderChat.UserName,
		}, true
	case msg.From != nil:
		return model.Sender{
			ID:        msg.From.ID,
			Kind:      model.SenderPerson,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
			Username:  msg.From.UserName,
		}, true
	case msg.SenderChat != nil:
		return model.Sender{ID: msg.SenderChat.ID, Kind: model.SenderOther}, true
	}
	return model.Sender{}, false
}
