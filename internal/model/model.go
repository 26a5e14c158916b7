// Package model defines the domain types used across the application.
package model

import (
	"strings"
	"time"
)

// Chat represents a Telegram chat the bot has observed messages in.
// The title is resolved once, on the first observed message, and cached.
type Chat struct {
	ID    int64
	Title string
}

// SavedMessagesTitle is the reserved title for the operator's self chat.
const SavedMessagesTitle = "Saved Messages"

// SenderKind distinguishes the kinds of message senders.
type SenderKind string

// Supported sender kinds.
const (
	SenderPerson  SenderKind = "person"
	SenderChannel SenderKind = "channel"
	SenderOther   SenderKind = "other"
)

// Sender is a message sender resolved once per incoming event.
// Person senders carry name fields, channel senders carry a title;
// both may carry a username.
type Sender struct {
	ID        int64
	Kind      SenderKind
	FirstName string
	LastName  string
	Username  string
	Title     string
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s.Kind {
	case SenderPerson:
		return strings.TrimSpace(s.FirstName + " " + s.LastName)
	case SenderChannel:
		return s.Title
	default:
		return "Unknown"
	}
}

// Message represents a single observed message.
type Message struct {
	ID               int64
	Text             string
	ChatID           int64
	AuthorID         int64
	Date             time.Time
	ReplyToMessageID *int64
	IsNew            bool
}

// DigestRow is one unsummarized message joined to the display context
// needed for the transcript sent to the LLM.
type DigestRow struct {
	MessageID   int64
	ChatTitle   string
	AuthorName  string
	Text        string
	ReplyToText *string
}
