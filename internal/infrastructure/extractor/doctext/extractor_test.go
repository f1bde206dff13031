package doctext

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/anishqd/lexiscan/internal/core/domain"
)

func TestExtractPlainTextVerbatim(t *testing.T) {
	extractor := New()
	text, err := extractor.Extract(context.Background(), &domain.SourceDocument{
		Bytes:    []byte("Hello world"),
		MIMEType: "text/plain",
		Filename: "hello.txt",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "Hello world" {
		t.Fatalf("expected verbatim text, got %q", text)
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	extractor := New()
	doc := &domain.SourceDocument{
		Bytes:    []byte("same bytes\nsame text"),
		MIMEType: "text/plain",
		Filename: "a.txt",
	}
	first, err := extractor.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("first Extract() error = %v", err)
	}
	second, err := extractor.Extract(context.Background(), doc)
	if err != nil {
		t.Fatalf("second Extract() error = %v", err)
	}
	if first != second {
		t.Fatalf("extraction is not idempotent: %q vs %q", first, second)
	}
}

func TestExtractEmptyDocumentYieldsEmptyText(t *testing.T) {
	extractor := New()
	text, err := extractor.Extract(context.Background(), &domain.SourceDocument{
		MIMEType: "text/plain",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text, got %q", text)
	}
}

func TestExtractRejectsInvalidUTF8PlainText(t *testing.T) {
	extractor := New()
	_, err := extractor.Extract(context.Background(), &domain.SourceDocument{
		Bytes:    []byte{0xff, 0xfe, 0x00},
		MIMEType: "text/plain",
	})
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}

func TestExtractHTMLDropsScriptAndStyle(t *testing.T) {
	page := `<html><head><style>body{color:red}</style>
<script>alert("x")</script></head>
<body><h1>Lease Agreement</h1><p>Tenant shall pay rent.</p></body></html>`

	extractor := New()
	text, err := extractor.Extract(context.Background(), &domain.SourceDocument{
		Bytes:    []byte(page),
		MIMEType: "text/html",
		Filename: "lease.html",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "Lease Agreement") || !strings.Contains(text, "Tenant shall pay rent.") {
		t.Fatalf("expected body text, got %q", text)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, "color:red") {
		t.Fatalf("script/style leaked into text: %q", text)
	}
}

func TestExtractDocxText(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>This agreement is binding.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Clause 2:</w:t><w:tab/><w:t>arbitration applies.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	entry, err := archive.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte(docXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := archive.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	extractor := New()
	text, err := extractor.Extract(context.Background(), &domain.SourceDocument{
		Bytes:    buf.Bytes(),
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Filename: "agreement.docx",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "This agreement is binding.") {
		t.Fatalf("missing paragraph text: %q", text)
	}
	if !strings.Contains(text, "Clause 2:\tarbitration applies.") {
		t.Fatalf("tab not preserved: %q", text)
	}
}

func TestExtractUndecodableWordDocumentFails(t *testing.T) {
	extractor := New()
	_, err := extractor.Extract(context.Background(), &domain.SourceDocument{
		Bytes:    []byte("\xd0\xcf\x11\xe0 legacy ole junk"),
		MIMEType: "application/msword",
		Filename: "legacy.doc",
	})
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error for legacy .doc, got %v", err)
	}
}

func TestExtractUndecodablePDFFails(t *testing.T) {
	extractor := New()
	_, err := extractor.Extract(context.Background(), &domain.SourceDocument{
		Bytes:    []byte("not a pdf at all"),
		MIMEType: "application/pdf",
		Filename: "broken.pdf",
	})
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected extraction error for broken pdf, got %v", err)
	}
}

func TestFormatFallsBackToFilenameExtension(t *testing.T) {
	doc := &domain.SourceDocument{MIMEType: "application/octet-stream", Filename: "page.HTML"}
	if format(doc) != formatHTML {
		t.Fatalf("expected html format from extension")
	}
	doc = &domain.SourceDocument{MIMEType: "", Filename: "notes.txt"}
	if format(doc) != formatPlain {
		t.Fatalf("expected plain format")
	}
}
