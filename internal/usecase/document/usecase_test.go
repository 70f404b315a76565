package document

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/futig/docchat-backend/internal/config"
	"github.com/futig/docchat-backend/internal/entity"
	"github.com/futig/docchat-backend/internal/pkg/chunker"
	"github.com/futig/docchat-backend/internal/pkg/validator"
	"github.com/futig/docchat-backend/internal/vectorstore/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeDocRepo struct {
	docs    map[string]*entity.Document
	deleted []string
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*entity.Document)}
}

func (f *fakeDocRepo) Create(ctx context.Context, filename, content string) (*entity.Document, error) {
	doc := &entity.Document{
		ID:         uuid.NewString(),
		Filename:   filename,
		UploadedAt: time.Now(),
		Content:    content,
	}
	f.docs[doc.ID] = doc
	return doc, nil
}

func (f *fakeDocRepo) List(ctx context.Context) ([]*entity.Document, error) {
	docs := make([]*entity.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (f *fakeDocRepo) Delete(ctx context.Context, id string) (*entity.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, entity.ErrDocumentNotFound
	}
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return doc, nil
}

func (f *fakeDocRepo) Count(ctx context.Context) (int, error) {
	return len(f.docs), nil
}

type fakeStore struct {
	indexed   []entity.Chunk
	indexErr  error
	deleted   []string
	deleteErr error
}

func (f *fakeStore) Index(ctx context.Context, chunks []entity.Chunk) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, chunks...)
	return nil
}

func (f *fakeStore) Search(ctx context.Context, query string, k int) ([]entity.ScoredChunk, error) {
	return nil, nil
}

func (f *fakeStore) DeleteByOwner(ctx context.Context, docID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, docID)
	return nil
}

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	headers := form.File["file"]
	require.Len(t, headers, 1)
	return headers[0]
}

func newTestUsecase(repo *fakeDocRepo, store *fakeStore) *Usecase {
	v := validator.NewFileValidator(config.FileUploadConfig{MaxFileSize: 1 << 20})
	return NewUsecase(repo, store, chunker.New(20, 5), v, zap.NewNop())
}

func TestUpload_IndexesChunksWithMetadata(t *testing.T) {
	repo := newFakeDocRepo()
	store := &fakeStore{}
	uc := newTestUsecase(repo, store)

	header := makeFileHeader(t, "notes.txt", []byte("Go favors composition over inheritance in its type system."))

	doc, err := uc.Upload(context.Background(), header)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", doc.Filename)
	assert.NotEmpty(t, doc.ID)

	require.NotEmpty(t, store.indexed)
	for _, chunk := range store.indexed {
		assert.Equal(t, doc.ID, chunk.DocumentID)
		assert.Equal(t, doc.ID, chunk.Metadata.DocumentID)
		assert.Equal(t, "notes.txt", chunk.Metadata.Filename)
		assert.NotEmpty(t, chunk.Text)
	}
}

func TestUpload_SanitizesFilename(t *testing.T) {
	repo := newFakeDocRepo()
	uc := newTestUsecase(repo, &fakeStore{})

	header := makeFileHeader(t, "my notes (v2).txt", []byte("some content"))

	doc, err := uc.Upload(context.Background(), header)
	require.NoError(t, err)
	assert.Equal(t, "my_notes_v2.txt", doc.Filename)
}

func TestUpload_RejectsUnsupportedExtension(t *testing.T) {
	uc := newTestUsecase(newFakeDocRepo(), &fakeStore{})

	header := makeFileHeader(t, "image.png", []byte("not text"))

	_, err := uc.Upload(context.Background(), header)
	require.ErrorIs(t, err, entity.ErrInvalidExtension)
}

func TestUpload_RejectsEmptyFile(t *testing.T) {
	uc := newTestUsecase(newFakeDocRepo(), &fakeStore{})

	header := makeFileHeader(t, "empty.txt", []byte("   \n\t  "))

	_, err := uc.Upload(context.Background(), header)
	require.ErrorIs(t, err, entity.ErrEmptyFile)
}

func TestUpload_RollsBackOnIndexFailure(t *testing.T) {
	repo := newFakeDocRepo()
	store := &fakeStore{indexErr: errors.New("embedding service down")}
	uc := newTestUsecase(repo, store)

	header := makeFileHeader(t, "doc.txt", []byte("content that will fail to index"))

	_, err := uc.Upload(context.Background(), header)
	require.Error(t, err)
	assert.Empty(t, repo.docs)

	require.Len(t, repo.deleted, 1)
	assert.Equal(t, repo.deleted, store.deleted)
}

// flakyEmbedder succeeds until failFrom calls have been made, so a multi-chunk
// document gets partially indexed before the failure surfaces.
type flakyEmbedder struct {
	calls    int
	failFrom int
}

func (f *flakyEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.calls >= f.failFrom {
		return nil, entity.ErrEmbeddingUnavailable
	}
	return []float32{1, 0, 0}, nil
}

func TestUpload_PartialIndexLeavesNoVectors(t *testing.T) {
	repo := newFakeDocRepo()
	store := memory.NewStore(&flakyEmbedder{failFrom: 2})
	v := validator.NewFileValidator(config.FileUploadConfig{MaxFileSize: 1 << 20})
	uc := NewUsecase(repo, store, chunker.New(20, 5), v, zap.NewNop())

	header := makeFileHeader(t, "doc.txt", []byte("alpha beta gamma alpha beta gamma alpha beta"))

	_, err := uc.Upload(context.Background(), header)
	require.ErrorIs(t, err, entity.ErrEmbeddingUnavailable)
	assert.Empty(t, repo.docs)

	results, err := store.Search(context.Background(), "alpha", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDelete_RemovesDocumentAndVectors(t *testing.T) {
	repo := newFakeDocRepo()
	store := &fakeStore{}
	uc := newTestUsecase(repo, store)

	doc, err := repo.Create(context.Background(), "doc.txt", "content")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), doc.ID))
	assert.Empty(t, repo.docs)
	assert.Equal(t, []string{doc.ID}, store.deleted)
}

func TestDelete_UnknownDocument(t *testing.T) {
	uc := newTestUsecase(newFakeDocRepo(), &fakeStore{})

	err := uc.Delete(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, entity.ErrDocumentNotFound)
}
