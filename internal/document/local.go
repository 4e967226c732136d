package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalStorage struct {
	basePath string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("document: create storage dir: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Save writes to {base}/{user}/{uuid}{ext} and returns the relative path.
func (s *LocalStorage) Save(ctx context.Context, req *SaveRequest) (string, error) {
	rel := objectName(req)
	full := filepath.Join(s.basePath, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("document: create dir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("document: create file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, req.Reader); err != nil {
		return "", fmt.Errorf("document: write file: %w", err)
	}
	return rel, nil
}

func (s *LocalStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(s.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("document: open file: %w", err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	if err := os.Remove(s.resolve(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("document: delete file: %w", err)
	}
	return nil
}

// resolve keeps lookups inside basePath.
func (s *LocalStorage) resolve(path string) string {
	clean := filepath.Clean("/" + filepath.FromSlash(path))
	return filepath.Join(s.basePath, clean)
}

func objectName(req *SaveRequest) string {
	ext := strings.ToLower(filepath.Ext(req.FileName))
	if ext == "" {
		ext = extensionByContentType(req.ContentType)
	}
	owner := req.UserID
	if owner == "" {
		owner = "anonymous"
	}
	return fmt.Sprintf("%s/%s%s", owner, uuid.New().String(), ext)
}
