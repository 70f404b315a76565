package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/futig/docchat-backend/internal/entity"
	"github.com/ledongthuc/pdf"
	"github.com/unidoc/unioffice/document"
)

// AllowedExtensions lists the upload types text can be extracted from
var AllowedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".pdf":  true,
	".docx": true,
}

// Extension returns the lower-cased extension of filename
func Extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// IsAllowed reports whether filename has a supported extension
func IsAllowed(filename string) bool {
	return AllowedExtensions[Extension(filename)]
}

// Parse extracts plain text from an uploaded file based on its extension
func Parse(filename string, data []byte) (string, error) {
	ext := Extension(filename)
	if !AllowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s (allowed: .txt, .pdf, .md, .docx)", entity.ErrInvalidExtension, ext)
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".txt", ".md":
		text = string(data)
	case ".pdf":
		text, err = parsePDF(data)
	case ".docx":
		text, err = parseDOCX(data)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", entity.ErrEmptyFile, filename)
	}

	return text, nil
}

func parsePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for page := 1; page <= reader.NumPage(); page++ {
		p := reader.Page(page)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract pdf page %d: %w", page, err)
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	return b.String(), nil
}

func parseDOCX(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			b.WriteString(run.Text())
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}
