package doctext

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

// Extractor converts uploaded artifacts into plain UTF-8 text, dispatching
// on the declared MIME type with a filename-extension tiebreak. Extraction
// is purely functional: the same bytes always produce the same text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, doc *domain.SourceDocument) (string, error) {
	if doc == nil {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("nil source document"))
	}
	if len(doc.Bytes) == 0 {
		return "", nil
	}

	switch format(doc) {
	case formatPDF:
		text, err := extractPDF(doc.Bytes)
		if err != nil {
			return "", domain.WrapError(domain.ErrExtraction, "extract pdf text", err)
		}
		return text, nil
	case formatWord:
		text, err := extractDocx(doc.Bytes)
		if err != nil {
			return "", domain.WrapError(domain.ErrExtraction, "extract word text", err)
		}
		return text, nil
	case formatHTML:
		return extractHTML(doc.Bytes), nil
	default:
		if !utf8.Valid(doc.Bytes) {
			return "", domain.WrapError(domain.ErrExtraction, "decode plain text",
				errors.New("byte stream is not valid UTF-8"))
		}
		return string(doc.Bytes), nil
	}
}

type docFormat int

const (
	formatPlain docFormat = iota
	formatPDF
	formatWord
	formatHTML
)

func format(doc *domain.SourceDocument) docFormat {
	mimeType := strings.ToLower(strings.TrimSpace(doc.MIMEType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	switch mimeType {
	case "application/pdf":
		return formatPDF
	case "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return formatWord
	case "text/html", "application/xhtml+xml":
		return formatHTML
	}

	switch strings.ToLower(filepath.Ext(doc.Filename)) {
	case ".pdf":
		return formatPDF
	case ".doc", ".docx":
		return formatWord
	case ".html", ".htm":
		return formatHTML
	}
	return formatPlain
}
