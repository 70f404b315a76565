package repository

import (
	"context"
	"fmt"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository defines the interface for chat message persistence.
// Messages are append-only; they are removed only by the chat cascade.
type MessageRepository interface {
	Append(ctx context.Context, chatID string, role entity.MessageRole, content string) (*entity.Message, error)
	ListByChat(ctx context.Context, chatID string) ([]*entity.Message, error)
}

var _ MessageRepository = &MessagePostgres{}

// MessagePostgres implements MessageRepository using PostgreSQL
type MessagePostgres struct {
	db *pgxpool.Pool
}

func NewMessagePostgres(db *pgxpool.Pool) *MessagePostgres {
	return &MessagePostgres{db: db}
}

func (r *MessagePostgres) Append(ctx context.Context, chatID string, role entity.MessageRole, content string) (*entity.Message, error) {
	chatUUID, err := toPgUUID(chatID)
	if err != nil {
		return nil, fmt.Errorf("parse chat ID: %w", err)
	}

	var row messageRow
	err = r.db.QueryRow(ctx,
		`INSERT INTO chat_messages (chat_id, role, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, chat_id, role, content, created_at`,
		chatUUID, string(role), content,
	).Scan(&row.ID, &row.ChatID, &row.Role, &row.Content, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	return toEntityMessage(&row), nil
}

// ListByChat returns the full history ordered by creation time ascending,
// insertion order breaking ties.
func (r *MessagePostgres) ListByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	chatUUID, err := toPgUUID(chatID)
	if err != nil {
		return nil, fmt.Errorf("parse chat ID: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, chat_id, role, content, created_at
		 FROM chat_messages
		 WHERE chat_id = $1
		 ORDER BY created_at ASC, id ASC`,
		chatUUID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*entity.Message, 0)
	for rows.Next() {
		var row messageRow
		if err := rows.Scan(&row.ID, &row.ChatID, &row.Role, &row.Content, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, toEntityMessage(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}
