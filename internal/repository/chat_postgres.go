package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChatRepository defines the interface for chat persistence
type ChatRepository interface {
	Create(ctx context.Context, chat entity.Chat) (*entity.Chat, error)
	Get(ctx context.Context, id string) (*entity.Chat, error)
	List(ctx context.Context) ([]*entity.Chat, error)
	UpdateTitle(ctx context.Context, id, title string) error
	UpdateTitleIfUnset(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
}

var _ ChatRepository = &ChatPostgres{}

// ChatPostgres implements ChatRepository using PostgreSQL
type ChatPostgres struct {
	db *pgxpool.Pool
}

func NewChatPostgres(db *pgxpool.Pool) *ChatPostgres {
	return &ChatPostgres{db: db}
}

// Create inserts a chat. When the caller supplies no ID one is generated;
// a caller-supplied ID enables lazy creation from the ask flow.
func (r *ChatPostgres) Create(ctx context.Context, chat entity.Chat) (*entity.Chat, error) {
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}

	chatID, err := toPgUUID(chat.ID)
	if err != nil {
		return nil, fmt.Errorf("parse chat ID: %w", err)
	}

	var row chatRow
	err = r.db.QueryRow(ctx,
		`INSERT INTO chats (id, title) VALUES ($1, $2)
		 RETURNING id, title, created_at`,
		chatID, chat.Title,
	).Scan(&row.ID, &row.Title, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}

	return toEntityChat(&row), nil
}

func (r *ChatPostgres) Get(ctx context.Context, id string) (*entity.Chat, error) {
	chatID, err := toPgUUID(id)
	if err != nil {
		// Malformed IDs cannot match any row
		return nil, entity.ErrChatNotFound
	}

	var row chatRow
	err = r.db.QueryRow(ctx,
		`SELECT id, title, created_at FROM chats WHERE id = $1`, chatID,
	).Scan(&row.ID, &row.Title, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrChatNotFound
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}

	return toEntityChat(&row), nil
}

func (r *ChatPostgres) List(ctx context.Context) ([]*entity.Chat, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, title, created_at FROM chats ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	chats := make([]*entity.Chat, 0)
	for rows.Next() {
		var row chatRow
		if err := rows.Scan(&row.ID, &row.Title, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, toEntityChat(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chats: %w", err)
	}

	return chats, nil
}

func (r *ChatPostgres) UpdateTitle(ctx context.Context, id, title string) error {
	chatID, err := toPgUUID(id)
	if err != nil {
		return entity.ErrChatNotFound
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE chats SET title = $2 WHERE id = $1`, chatID, title,
	)
	if err != nil {
		return fmt.Errorf("update chat title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrChatNotFound
	}

	return nil
}

// UpdateTitleIfUnset replaces the title only while it still carries the
// default value, so auto-titling never overwrites a user-chosen name.
// Safe to call repeatedly.
func (r *ChatPostgres) UpdateTitleIfUnset(ctx context.Context, id, title string) error {
	chatID, err := toPgUUID(id)
	if err != nil {
		return fmt.Errorf("parse chat ID: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`UPDATE chats SET title = $2 WHERE id = $1 AND title = $3`,
		chatID, title, entity.DefaultChatTitle,
	)
	if err != nil {
		return fmt.Errorf("update chat title: %w", err)
	}

	return nil
}

// Delete removes a chat; its messages go with it via the FK cascade
func (r *ChatPostgres) Delete(ctx context.Context, id string) error {
	chatID, err := toPgUUID(id)
	if err != nil {
		return entity.ErrChatNotFound
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM chats WHERE id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrChatNotFound
	}

	return nil
}
