package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

func newTestExtractor(t *testing.T, ocr *OCR) *Extractor {
	t.Helper()
	e, err := NewExtractor(context.Background(), ocr)
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	return e
}

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name, ct string
		want     Format
	}{
		{"judgment.PDF", "", FormatPDF},
		{"brief.docx", "", FormatDOCX},
		{"order.htm", "", FormatHTML},
		{"facts.md", "", FormatText},
		{"scan.jpeg", "", FormatImage},
		{"upload", "image/png", FormatImage},
		{"upload", "text/plain; charset=utf-8", FormatText},
	}
	for _, c := range cases {
		got, err := DetectFormat(c.name, c.ct)
		if err != nil {
			t.Fatalf("detect %q: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("detect %q: want %s got %s", c.name, c.want, got)
		}
	}
	if _, err := DetectFormat("archive.zip", "application/zip"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtract_Text(t *testing.T) {
	e := newTestExtractor(t, nil)
	got, err := e.Extract(context.Background(), FormatText, strings.NewReader("  The   appellant\r\n\r\n\r\nfiled late.  "), i18n.English)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "The appellant\n\nfiled late." {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestExtract_HTML(t *testing.T) {
	e := newTestExtractor(t, nil)
	html := `<html><head><style>p{}</style></head><body><h1>Order</h1><p>The appeal is <b>allowed</b>.</p><script>var x=1;</script></body></html>`
	got, err := e.Extract(context.Background(), FormatHTML, strings.NewReader(html), i18n.English)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(got, "Order") || !strings.Contains(got, "The appeal is allowed.") {
		t.Fatalf("unexpected text %q", got)
	}
	if strings.Contains(got, "var x") {
		t.Fatalf("script leaked into text: %q", got)
	}
}

func TestExtract_ImageWithoutOCR(t *testing.T) {
	e := newTestExtractor(t, nil)
	_, err := e.Extract(context.Background(), FormatImage, strings.NewReader("png"), i18n.English)
	if !errors.Is(err, ErrOCRUnavailable) {
		t.Fatalf("expected ErrOCRUnavailable, got %v", err)
	}
}

func TestNewOCR_Unresolvable(t *testing.T) {
	_, err := NewOCR(filepath.Join(t.TempDir(), "no-tesseract"))
	if !errors.Is(err, ErrOCRUnavailable) {
		t.Fatalf("expected ErrOCRUnavailable, got %v", err)
	}
}

func TestExtract_ImageRunsTesseract(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	bin := filepath.Join(t.TempDir(), "tesseract")
	script := "#!/bin/sh\necho \"recognised $2 $4\"\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	ocr, err := NewOCR(bin)
	if err != nil {
		t.Fatalf("new ocr: %v", err)
	}
	e := newTestExtractor(t, ocr)

	got, err := e.Extract(context.Background(), FormatImage, strings.NewReader("fake image"), i18n.Hindi)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "recognised stdout hin+eng" {
		t.Fatalf("unexpected ocr output %q", got)
	}
}

func TestLanguages(t *testing.T) {
	if Languages(i18n.English) != "eng" {
		t.Fatalf("english should not duplicate eng")
	}
	if Languages(i18n.Tamil) != "tam+eng" {
		t.Fatalf("unexpected %q", Languages(i18n.Tamil))
	}
}

func TestExtract_BlankPDFYieldsNoText(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "blank_page.pdf"))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	e := newTestExtractor(t, nil)
	got, err := e.Extract(context.Background(), FormatPDF, f, i18n.English)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "" {
		t.Fatalf("expected no text from a blank page, got %q", got)
	}
}

func TestExtract_CorruptDocumentsAreUnreadable(t *testing.T) {
	e := newTestExtractor(t, nil)
	for _, f := range []Format{FormatPDF, FormatDOCX} {
		_, err := e.Extract(context.Background(), f, strings.NewReader("hello, not a real document"), i18n.English)
		if !errors.Is(err, ErrUnreadableDocument) {
			t.Fatalf("%s: expected ErrUnreadableDocument, got %v", f, err)
		}
	}
}
