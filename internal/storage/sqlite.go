package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"tg_summary_bot/internal/model"
	"tg_summary_bot/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Storage backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SaveMessage inserts the chat and author rows if absent and then the message
// row, all in one transaction. Existing chat and author rows are never
// overwritten, so titles and names stay as first observed.
func (s *SQLite) SaveMessage(ctx context.Context, chat model.Chat, sender model.Sender, msg model.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO chats (id, title) VALUES (?, ?)`,
		chat.ID, chat.Title,
	); err != nil {
		return fmt.Errorf("insert chat: %w", err)
	}

	firstName, lastName, username := authorColumns(sender)
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO authors (id, first_name, last_name, username) VALUES (?, ?, ?, ?)`,
		sender.ID, firstName, lastName, username,
	); err != nil {
		return fmt.Errorf("insert author: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (id, message, chat_id, author_id, date, reply_to_message_id, is_new)
		 VALUES (?, ?, ?, ?, ?, ?, 1)`,
		msg.ID, msg.Text, chat.ID, sender.ID, msg.Date.UTC().Format(timeLayout), msg.ReplyToMessageID,
	); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	return tx.Commit()
}

// GetChat returns a single chat by its ID.
func (s *SQLite) GetChat(ctx context.Context, id int64) (*model.Chat, error) {
	var c model.Chat
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title FROM chats WHERE id = ?`, id,
	).Scan(&c.ID, &c.Title)
	if err != nil {
		return nil, fmt.Errorf("scan chat: %w", err)
	}
	return &c, nil
}

// AddFilteredChat adds a chat to the summarization filter. Idempotent.
func (s *SQLite) AddFilteredChat(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO filtered_chats (chat_id) VALUES (?)`, chatID,
	)
	if err != nil {
		return fmt.Errorf("add filtered chat: %w", err)
	}
	return nil
}

// RemoveFilteredChat removes a chat from the summarization filter. Idempotent.
func (s *SQLite) RemoveFilteredChat(ctx context.Context, chatID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM filtered_chats WHERE chat_id = ?`, chatID,
	)
	if err != nil {
		return fmt.Errorf("remove filtered chat: %w", err)
	}
	return nil
}

// ListFilteredChats returns the filtered chat IDs sorted ascending.
func (s *SQLite) ListFilteredChats(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chat_id FROM filtered_chats ORDER BY chat_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query filtered chats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan filtered chat: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListUnsummarized returns the chat's messages still flagged as new with a
// date after since, joined to their chat title, author display fields, and
// the replied-to message text where present, ordered by message ID.
func (s *SQLite) ListUnsummarized(ctx context.Context, chatID int64, since time.Time) ([]model.DigestRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.id, c.title, a.first_name, a.last_name, a.username, m.message, r.message
		 FROM messages m
		 JOIN chats c ON m.chat_id = c.id
		 JOIN authors a ON m.author_id = a.id
		 LEFT JOIN messages r ON m.reply_to_message_id = r.id
		 WHERE m.is_new = 1 AND m.date > ? AND m.chat_id = ?
		 ORDER BY m.id`,
		since.UTC().Format(timeLayout), chatID,
	)
	if err != nil {
		return nil, fmt.Errorf("query unsummarized: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.DigestRow
	for rows.Next() {
		var (
			row                           model.DigestRow
			firstName, lastName, username sql.NullString
			replyTo                       sql.NullString
		)
		if err := rows.Scan(&row.MessageID, &row.ChatTitle, &firstName, &lastName, &username, &row.Text, &replyTo); err != nil {
			return nil, fmt.Errorf("scan unsummarized: %w", err)
		}
		row.AuthorName = authorName(firstName, lastName, username)
		if replyTo.Valid {
			row.ReplyToText = &replyTo.String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// MarkSummarized flips is_new to 0 for the given message IDs in one update.
func (s *SQLite) MarkSummarized(ctx context.Context, messageIDs []int64) error {
	if len(messageIDs) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(messageIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(messageIDs))
	for i, id := range messageIDs {
		args[i] = id
	}

	_, err := s.db.ExecContext(ctx,
		`UPDATE messages SET is_new = 0 WHERE id IN (`+placeholders+`)`, args...,
	)
	if err != nil {
		return fmt.Errorf("mark summarized: %w", err)
	}
	return nil
}

// authorColumns maps a sender variant onto the authors table. Channel titles
// are stored in first_name, matching the schema's person-shaped columns.
func authorColumns(sender model.Sender) (firstName string, lastName, username *string) {
	switch sender.Kind {
	case model.SenderPerson:
		return sender.FirstName, nullIfEmpty(sender.LastName), nullIfEmpty(sender.Username)
	case model.SenderChannel:
		return sender.Title, nil, nullIfEmpty(sender.Username)
	default:
		return "Unknown", nil, nil
	}
}

// authorName prefers the username when present, else first+last name.
func authorName(firstName, lastName, username sql.NullString) string {
	if username.Valid && username.String != "" {
		return username.String
	}
	name := firstName.String
	if lastName.Valid && lastName.String != "" {
		name += " " + lastName.String
	}
	return strings.TrimSpace(name)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
