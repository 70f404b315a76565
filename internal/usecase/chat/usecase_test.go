package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/pkg/formatter"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChatRepo struct {
	chats map[string]*entity.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*entity.Chat)}
}

func (f *fakeChatRepo) Create(ctx context.Context, chat entity.Chat) (*entity.Chat, error) {
	if chat.ID == "" {
		chat.ID = uuid.NewString()
	}
	chat.CreatedAt = time.Now()
	stored := chat
	f.chats[chat.ID] = &stored
	return &stored, nil
}

func (f *fakeChatRepo) Get(ctx context.Context, id string) (*entity.Chat, error) {
	chat, ok := f.chats[id]
	if !ok {
		return nil, entity.ErrChatNotFound
	}
	return chat, nil
}

func (f *fakeChatRepo) List(ctx context.Context) ([]*entity.Chat, error) {
	chats := make([]*entity.Chat, 0, len(f.chats))
	for _, chat := range f.chats {
		chats = append(chats, chat)
	}
	return chats, nil
}

func (f *fakeChatRepo) UpdateTitle(ctx context.Context, id, title string) error {
	chat, ok := f.chats[id]
	if !ok {
		return entity.ErrChatNotFound
	}
	chat.Title = title
	return nil
}

func (f *fakeChatRepo) UpdateTitleIfUnset(ctx context.Context, id, title string) error {
	if chat, ok := f.chats[id]; ok && chat.Title == entity.DefaultChatTitle {
		chat.Title = title
	}
	return nil
}

func (f *fakeChatRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.chats[id]; !ok {
		return entity.ErrChatNotFound
	}
	delete(f.chats, id)
	return nil
}

type fakeMsgRepo struct {
	messages map[string][]*entity.Message
}

func newFakeMsgRepo() *fakeMsgRepo {
	return &fakeMsgRepo{messages: make(map[string][]*entity.Message)}
}

func (f *fakeMsgRepo) Append(ctx context.Context, chatID string, role entity.MessageRole, content string) (*entity.Message, error) {
	msg := &entity.Message{
		ID:        int64(len(f.messages[chatID]) + 1),
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	f.messages[chatID] = append(f.messages[chatID], msg)
	return msg, nil
}

func (f *fakeMsgRepo) ListByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	return f.messages[chatID], nil
}

func newTestUsecase(chats *fakeChatRepo, msgs *fakeMsgRepo) *Usecase {
	return NewUsecase(chats, msgs, formatter.NewFactory(), zap.NewNop())
}

func TestCreate_DefaultTitle(t *testing.T) {
	chats := newFakeChatRepo()
	uc := newTestUsecase(chats, newFakeMsgRepo())

	chat, err := uc.Create(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultChatTitle, chat.Title)
	assert.NotEmpty(t, chat.ID)
}

func TestCreate_ExplicitTitle(t *testing.T) {
	uc := newTestUsecase(newFakeChatRepo(), newFakeMsgRepo())

	chat, err := uc.Create(context.Background(), "Project research")
	require.NoError(t, err)
	assert.Equal(t, "Project research", chat.Title)
}

func TestRename(t *testing.T) {
	chats := newFakeChatRepo()
	uc := newTestUsecase(chats, newFakeMsgRepo())

	chat, err := uc.Create(context.Background(), "")
	require.NoError(t, err)

	require.NoError(t, uc.Rename(context.Background(), chat.ID, "Renamed"))
	got, err := uc.chatRepo.Get(context.Background(), chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestRename_EmptyTitle(t *testing.T) {
	uc := newTestUsecase(newFakeChatRepo(), newFakeMsgRepo())

	err := uc.Rename(context.Background(), uuid.NewString(), "  ")
	require.ErrorIs(t, err, entity.ErrMissingField)
}

func TestDelete_UnknownChat(t *testing.T) {
	uc := newTestUsecase(newFakeChatRepo(), newFakeMsgRepo())

	err := uc.Delete(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, entity.ErrChatNotFound)
}

func TestHistory_UnknownChat(t *testing.T) {
	uc := newTestUsecase(newFakeChatRepo(), newFakeMsgRepo())

	_, err := uc.History(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, entity.ErrChatNotFound)
}

func TestHistory_ReturnsTurnsInOrder(t *testing.T) {
	chats := newFakeChatRepo()
	msgs := newFakeMsgRepo()
	uc := newTestUsecase(chats, msgs)

	chat, err := uc.Create(context.Background(), "Go questions")
	require.NoError(t, err)

	_, err = msgs.Append(context.Background(), chat.ID, entity.RoleUser, "what is go?")
	require.NoError(t, err)
	_, err = msgs.Append(context.Background(), chat.ID, entity.RoleAssistant, "A language.")
	require.NoError(t, err)

	history, err := uc.History(context.Background(), chat.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.RoleUser, history[0].Role)
	assert.Equal(t, entity.RoleAssistant, history[1].Role)
}

func TestExport_Markdown(t *testing.T) {
	chats := newFakeChatRepo()
	msgs := newFakeMsgRepo()
	uc := newTestUsecase(chats, msgs)

	chat, err := uc.Create(context.Background(), "Go questions")
	require.NoError(t, err)

	_, err = msgs.Append(context.Background(), chat.ID, entity.RoleUser, "what is go?")
	require.NoError(t, err)
	_, err = msgs.Append(context.Background(), chat.ID, entity.RoleAssistant, "A language.")
	require.NoError(t, err)

	result, err := uc.Export(context.Background(), chat.ID, entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "text/markdown; charset=utf-8", result.ContentType)
	assert.Equal(t, "Go_questions.md", result.Filename)

	transcript := string(result.Data)
	assert.True(t, strings.HasPrefix(transcript, "# Go questions"))
	assert.Contains(t, transcript, "**You:** what is go?")
	assert.Contains(t, transcript, "**Assistant:** A language.")
}

func TestExport_UnsupportedFormat(t *testing.T) {
	chats := newFakeChatRepo()
	uc := newTestUsecase(chats, newFakeMsgRepo())

	chat, err := uc.Create(context.Background(), "Go questions")
	require.NoError(t, err)

	_, err = uc.Export(context.Background(), chat.ID, entity.ExportFormat("xlsx"))
	require.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestExport_UnknownChat(t *testing.T) {
	uc := newTestUsecase(newFakeChatRepo(), newFakeMsgRepo())

	_, err := uc.Export(context.Background(), uuid.NewString(), entity.FormatMarkdown)
	require.ErrorIs(t, err, entity.ErrChatNotFound)
}
