package parser

import (
	"testing"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAllowed(t *testing.T) {
	assert.True(t, IsAllowed("notes.txt"))
	assert.True(t, IsAllowed("README.MD"))
	assert.True(t, IsAllowed("report.pdf"))
	assert.True(t, IsAllowed("contract.docx"))

	assert.False(t, IsAllowed("image.png"))
	assert.False(t, IsAllowed("archive.zip"))
	assert.False(t, IsAllowed("noextension"))
}

func TestParsePlainText(t *testing.T) {
	text, err := Parse("doc1.txt", []byte("The sky is blue."))
	require.NoError(t, err)
	assert.Equal(t, "The sky is blue.", text)
}

func TestParseMarkdownPassthrough(t *testing.T) {
	src := "# Title\n\nSome *markdown* body."
	text, err := Parse("notes.md", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, src, text)
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	_, err := Parse("binary.exe", []byte("x"))
	assert.ErrorIs(t, err, entity.ErrInvalidExtension)
}

func TestParseRejectsWhitespaceOnly(t *testing.T) {
	_, err := Parse("empty.txt", []byte("   \n\t  "))
	assert.ErrorIs(t, err, entity.ErrEmptyFile)
}
