// Package uploads is the image-hosting boundary. The core only ever stores
// the opaque URL an uploader returns, never raw bytes, so swapping the
// local-disk implementation for a hosted one touches nothing else.
package uploads

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(data []byte, contentType string) (string, error)
}

// LocalUploader writes images under a directory served as static files.
type LocalUploader struct {
	dir     string
	baseURL string
}

// NewLocalUploader creates the upload directory if needed.
func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes the image to disk under a generated name and returns its
// URL.
func (u *LocalUploader) Upload(data []byte, contentType string) (string, error) {
	name := uuid.New().String() + extensionFor(contentType)
	path := filepath.Join(u.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload %s: %w", path, err)
	}
	return u.baseURL + "/" + name, nil
}

// DecodeDataURL decodes a base64 data URL ("data:image/png;base64,...").
// Plain base64 without the prefix is accepted too.
func DecodeDataURL(payload string) ([]byte, string, error) {
	contentType := "image/jpeg"
	if strings.HasPrefix(payload, "data:") {
		semi := strings.Index(payload, ";base64,")
		if semi < 0 {
			return nil, "", fmt.Errorf("malformed data URL")
		}
		contentType = payload[len("data:"):semi]
		payload = payload[semi+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image payload: %w", err)
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
