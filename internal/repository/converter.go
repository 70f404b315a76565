package repository

import (
	"github.com/futig/docchat-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Explicit row structs keep the database schema visible at the boundary;
// every query scans into one of these before conversion to an entity.

type documentRow struct {
	ID         pgtype.UUID
	Filename   string
	UploadedAt pgtype.Timestamptz
	Content    string
}

type chatRow struct {
	ID        pgtype.UUID
	Title     string
	CreatedAt pgtype.Timestamptz
}

type messageRow struct {
	ID        int64
	ChatID    pgtype.UUID
	Role      string
	Content   string
	CreatedAt pgtype.Timestamptz
}

func toEntityDocument(row *documentRow) *entity.Document {
	docUUID := uuid.UUID(row.ID.Bytes)

	return &entity.Document{
		ID:         docUUID.String(),
		Filename:   row.Filename,
		UploadedAt: row.UploadedAt.Time,
		Content:    row.Content,
	}
}

func toEntityChat(row *chatRow) *entity.Chat {
	chatUUID := uuid.UUID(row.ID.Bytes)

	return &entity.Chat{
		ID:        chatUUID.String(),
		Title:     row.Title,
		CreatedAt: row.CreatedAt.Time,
	}
}

func toEntityMessage(row *messageRow) *entity.Message {
	chatUUID := uuid.UUID(row.ChatID.Bytes)

	return &entity.Message{
		ID:        row.ID,
		ChatID:    chatUUID.String(),
		Role:      entity.MessageRole(row.Role),
		Content:   row.Content,
		CreatedAt: row.CreatedAt.Time,
	}
}

func toPgUUID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}
