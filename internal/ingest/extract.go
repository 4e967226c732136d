// Package ingest turns uploaded case documents into plain text.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cloudwego/eino-ext/components/document/parser/docx"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoparser "github.com/cloudwego/eino/components/document/parser"

	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

var (
	ErrUnsupportedFormat = errors.New("ingest: unsupported format")
	ErrOCRUnavailable    = errors.New("ingest: ocr unavailable")
	// ErrUnreadableDocument means the parser rejected the file contents.
	ErrUnreadableDocument = errors.New("ingest: unreadable document")
)

type Extractor struct {
	pdf  einoparser.Parser
	docx einoparser.Parser
	ocr  *OCR
}

func NewExtractor(ctx context.Context, ocr *OCR) (*Extractor, error) {
	pdfParser, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("ingest: pdf parser: %w", err)
	}
	docxParser, err := docx.NewDocxParser(ctx, &docx.Config{
		ToSections:      false,
		IncludeComments: false,
		IncludeHeaders:  true,
		IncludeFooters:  false,
		IncludeTables:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: docx parser: %w", err)
	}
	return &Extractor{pdf: pdfParser, docx: docxParser, ocr: ocr}, nil
}

// Extract returns the plain text of r. A document without extractable text
// yields "" and no error.
func (e *Extractor) Extract(ctx context.Context, f Format, r io.Reader, lang i18n.Lang) (string, error) {
	var (
		text string
		err  error
	)
	switch f {
	case FormatPDF:
		text, err = parseWith(ctx, e.pdf, r)
	case FormatDOCX:
		text, err = parseWith(ctx, e.docx, r)
	case FormatHTML:
		text, err = htmlText(r)
	case FormatText:
		var b []byte
		b, err = io.ReadAll(r)
		text = string(b)
	case FormatImage:
		if e.ocr == nil {
			return "", ErrOCRUnavailable
		}
		text, err = e.ocr.Recognize(ctx, r, lang)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", err
	}
	return Normalize(text), nil
}

func parseWith(ctx context.Context, p einoparser.Parser, r io.Reader) (string, error) {
	docs, err := p.Parse(ctx, r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if d == nil || strings.TrimSpace(d.Content) == "" {
			continue
		}
		parts = append(parts, d.Content)
	}
	return strings.Join(parts, "\n\n"), nil
}

func htmlText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("ingest: html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find("br, p, div, li, tr, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return doc.Find("body").Text(), nil
}

// Normalize collapses horizontal whitespace inside lines and squeezes runs of
// blank lines down to one.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, l)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
