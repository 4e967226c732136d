package document

import (
	"context"
	"io"
)

// Storage keeps the original uploaded bytes.
type Storage interface {
	Save(ctx context.Context, req *SaveRequest) (string, error)
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

type SaveRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
	UserID      string
}

type StorageType string

const (
	StorageLocal StorageType = "local"
	StorageMinIO StorageType = "minio"
)

func extensionByContentType(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	case "text/plain":
		return ".txt"
	case "text/markdown":
		return ".md"
	case "text/html":
		return ".html"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/tiff":
		return ".tiff"
	default:
		return ".bin"
	}
}
