// Package document stores uploaded case files and the text extracted from
// them.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/recursive"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/schema"

	"github.com/suPer8Hu/legal-assistant/internal/classifier"
	"github.com/suPer8Hu/legal-assistant/internal/common"
	"github.com/suPer8Hu/legal-assistant/internal/i18n"
	"github.com/suPer8Hu/legal-assistant/internal/ingest"
)

// MaxUploadSize bounds a single uploaded document.
const MaxUploadSize = 20 << 20

var (
	ErrFileTooLarge     = errors.New("document: file too large")
	ErrDocumentNotFound = fmt.Errorf("document: %w", common.ErrNotFound)
	// ErrNoText is a readable upload with nothing to classify.
	ErrNoText = fmt.Errorf("document: no extractable text: %w", classifier.ErrEmptyInput)
)

type Service struct {
	store     Store
	storage   Storage
	extractor *ingest.Extractor
	splitter  document.Transformer
}

func NewService(ctx context.Context, store Store, storage Storage, extractor *ingest.Extractor) (*Service, error) {
	sp, err := recursive.NewSplitter(ctx, &recursive.Config{
		ChunkSize:   512,
		OverlapSize: 50,
		Separators:  []string{"\n\n", "\n", "। ", ". ", "? ", "! ", "; ", ", ", " ", ""},
		KeepType:    recursive.KeepTypeNone,
	})
	if err != nil {
		return nil, fmt.Errorf("document: splitter: %w", err)
	}
	return &Service{store: store, storage: storage, extractor: extractor, splitter: sp}, nil
}

type IngestRequest struct {
	UserID      string
	FileName    string
	ContentType string
	Reader      io.Reader
	Lang        i18n.Lang
}

type IngestResult struct {
	Document *Document
	Text     string
}

// Ingest extracts the upload's text, then stores the file and its chunks.
// Unsupported, unreadable and textless uploads are rejected before anything
// is written.
func (s *Service) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	format, err := ingest.DetectFormat(req.FileName, req.ContentType)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(req.Reader, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("document: read upload: %w", err)
	}
	if len(body) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	text, err := s.extractor.Extract(ctx, format, bytes.NewReader(body), req.Lang)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoText
	}

	path, err := s.storage.Save(ctx, &SaveRequest{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        int64(len(body)),
		Reader:      bytes.NewReader(body),
		UserID:      req.UserID,
	})
	if err != nil {
		return nil, err
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	chunks, err := s.split(ctx, id, text)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		ID:          id,
		UserID:      req.UserID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        int64(len(body)),
		StoragePath: path,
		Format:      string(format),
		TextLength:  len([]rune(text)),
		ChunkCount:  len(chunks),
		CreatedAt:   time.Now(),
	}
	if err := s.store.CreateDocument(ctx, doc, chunks); err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			slog.WarnContext(ctx, "orphaned upload", "path", path, "error", delErr)
		}
		return nil, err
	}
	return &IngestResult{Document: doc, Text: text}, nil
}

func (s *Service) split(ctx context.Context, docID, text string) ([]Chunk, error) {
	if text == "" {
		return nil, nil
	}
	parts, err := s.splitter.Transform(ctx, []*schema.Document{{Content: text}})
	if err != nil {
		return nil, fmt.Errorf("document: split: %w", err)
	}
	chunks := make([]Chunk, 0, len(parts))
	for _, p := range parts {
		if p == nil || p.Content == "" {
			continue
		}
		cid, err := common.NewULID()
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{ID: cid, DocumentID: docID, Index: len(chunks), Content: p.Content})
	}
	return chunks, nil
}

// Get returns the caller's document; other users' documents are not found.
func (s *Service) Get(ctx context.Context, userID, id string) (*Document, error) {
	d, err := s.store.GetDocument(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if d.UserID != userID {
		return nil, ErrDocumentNotFound
	}
	return d, nil
}

func (s *Service) Chunks(ctx context.Context, userID, id string) ([]Chunk, error) {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.store.ListChunks(ctx, id)
}

// Text extracts the caller's stored document again.
func (s *Service) Text(ctx context.Context, userID, id string, lang i18n.Lang) (string, error) {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return "", err
	}
	rc, err := s.storage.Get(ctx, d.StoragePath)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return s.extractor.Extract(ctx, ingest.Format(d.Format), rc, lang)
}
