package formatter

import (
	"fmt"

	"github.com/futig/docchat-backend/internal/entity"
)

// Formatter renders a chat transcript into a downloadable document
type Formatter interface {
	Format(title string, messages []*entity.Message) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func roleLabel(role entity.MessageRole) string {
	if role == entity.RoleAssistant {
		return "Assistant"
	}
	return "You"
}
