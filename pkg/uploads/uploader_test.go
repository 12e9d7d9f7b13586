package uploads_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dealership/pkg/uploads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	data, contentType, err := uploads.DecodeDataURL("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "image/png", contentType)

	// Bare base64 defaults to JPEG.
	data, contentType, err = uploads.DecodeDataURL("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "image/jpeg", contentType)

	_, _, err = uploads.DecodeDataURL("data:image/png,no-base64-marker")
	assert.Error(t, err)

	_, _, err = uploads.DecodeDataURL("data:image/png;base64,%%%")
	assert.Error(t, err)
}

func TestLocalUploaderWritesFile(t *testing.T) {
	dir := t.TempDir()
	uploader, err := uploads.NewLocalUploader(filepath.Join(dir, "img"), "/uploads/")
	require.NoError(t, err)

	url, err := uploader.Upload([]byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	stored, err := os.ReadFile(filepath.Join(dir, "img", strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)

	// Unknown content types fall back to .jpg.
	url, err = uploader.Upload([]byte("x"), "application/octet-stream")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"), url)
}
