package ingest

import (
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatHTML  Format = "html"
	FormatText  Format = "text"
	FormatImage Format = "image"
)

var extFormats = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".txt":  FormatText,
	".md":   FormatText,
	".png":  FormatImage,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".tif":  FormatImage,
	".tiff": FormatImage,
	".bmp":  FormatImage,
}

var contentTypeFormats = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
	"text/html":     FormatHTML,
	"text/plain":    FormatText,
	"text/markdown": FormatText,
	"image/png":     FormatImage,
	"image/jpeg":    FormatImage,
	"image/tiff":    FormatImage,
	"image/bmp":     FormatImage,
}

// DetectFormat picks the format from the file extension, falling back to
// the declared content type when the name has no usable extension.
func DetectFormat(fileName, contentType string) (Format, error) {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(fileName))]; ok {
		return f, nil
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if f, ok := contentTypeFormats[ct]; ok {
		return f, nil
	}
	return "", ErrUnsupportedFormat
}
