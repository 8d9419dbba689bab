package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateChat creates an empty chat for a user.
func (s *Store) CreateChat(userID string) (*Chat, error) {
	chat := &Chat{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     "New Chat",
		Content:   "",
		UpdatedAt: time.Now(),
	}

	_, err := s.db.Exec(
		"INSERT INTO chats (id, user_id, title, content, updated_at) VALUES (?, ?, ?, ?, ?)",
		chat.ID, chat.UserID, chat.Title, chat.Content, chat.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}

	return chat, nil
}

// GetChat loads a chat by id.
func (s *Store) GetChat(id string) (*Chat, error) {
	var chat Chat
	err := s.db.QueryRow(
		"SELECT id, user_id, title, content, updated_at FROM chats WHERE id = ?", id,
	).Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.Content, &chat.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load chat: %w", err)
	}
	return &chat, nil
}

// ListChats returns a user's chats, most recently updated first.
func (s *Store) ListChats(userID string) ([]Chat, error) {
	rows, err := s.db.Query(
		"SELECT id, user_id, title, content, updated_at FROM chats WHERE user_id = ? ORDER BY updated_at DESC", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var chat Chat
		if err := rows.Scan(&chat.ID, &chat.UserID, &chat.Title, &chat.Content, &chat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// ValidateHistory arbitrates between a client's optimistic history and the
// persisted copy. The client history includes the user message it just
// added, so the comparison is against the client history minus that final
// entry. The check is length-based: two divergent edits of equal length
// would pass. Returns the persisted history and whether the client is
// current; a stale result mutates nothing.
func (s *Store) ValidateHistory(chatID string, clientHistory []Message) ([]Message, bool, error) {
	chat, err := s.GetChat(chatID)
	if err != nil {
		return nil, false, err
	}

	persisted, err := DecodeHistory(chat.Content)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode chat history: %w", err)
	}

	if len(clientHistory) == 0 {
		return persisted, false, nil
	}
	if len(clientHistory)-1 != len(persisted) {
		return persisted, false, nil
	}
	return persisted, true, nil
}

// AppendTurn appends one assistant entry to baseHistory and atomically
// replaces the chat's content. baseHistory already carries the caller's
// latest user message, so one successful turn commits both.
func (s *Store) AppendTurn(chatID string, baseHistory []Message, reply Message) error {
	content, err := EncodeHistory(append(baseHistory, reply))
	if err != nil {
		return fmt.Errorf("failed to encode chat history: %w", err)
	}

	res, err := s.db.Exec(
		"UPDATE chats SET content = ?, updated_at = ? WHERE id = ?",
		content, time.Now(), chatID,
	)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
