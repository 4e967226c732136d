package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/suPer8Hu/legal-assistant/internal/i18n"
)

// OCR shells out to a tesseract executable.
type OCR struct {
	path string
}

// NewOCR resolves the tesseract binary: the configured path first, then
// "tesseract" on PATH. It returns ErrOCRUnavailable when neither resolves.
func NewOCR(configured string) (*OCR, error) {
	candidate := strings.TrimSpace(configured)
	if candidate == "" {
		candidate = "tesseract"
	}
	p, err := exec.LookPath(candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
	}
	return &OCR{path: p}, nil
}

func (o *OCR) Path() string { return o.path }

// Languages returns the tesseract -l argument for lang, always including
// English since case papers mix scripts.
func Languages(lang i18n.Lang) string {
	code := lang.TesseractCode()
	if code == "" || code == "eng" {
		return "eng"
	}
	return code + "+eng"
}

func (o *OCR) Recognize(ctx context.Context, r io.Reader, lang i18n.Lang) (string, error) {
	tmp, err := os.CreateTemp("", "legal-ocr-*")
	if err != nil {
		return "", fmt.Errorf("ingest: ocr temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("ingest: ocr temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("ingest: ocr temp file: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, o.path, tmp.Name(), "stdout", "-l", Languages(lang))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %v", ErrOCRUnavailable, err)
		}
		return "", fmt.Errorf("ingest: tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
