package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes starts with the PNG magic so content sniffing sees image/png.
func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	return data
}

func uploadedFile(t *testing.T, name string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	files := NewFileService(dir)

	file, header := uploadedFile(t, "photo.png", pngBytes(1024))
	path, err := files.SaveImage(file, header)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".png"), "stored name should carry the sniffed extension, got %s", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, 1024)
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	files := NewFileService(t.TempDir())

	file, header := uploadedFile(t, "notes.png", []byte("just some text pretending to be a png"))
	_, err := files.SaveImage(file, header)
	assert.Error(t, err)
}

func TestSaveImageRejectsOversize(t *testing.T) {
	files := NewFileService(t.TempDir())

	file, header := uploadedFile(t, "big.png", pngBytes(MaxImageBytes+1))
	_, err := files.SaveImage(file, header)
	assert.Error(t, err)
}

func TestRemoveMissingFileIsQuiet(t *testing.T) {
	files := NewFileService(t.TempDir())
	// Best effort: neither panic nor error surface.
	files.Remove(filepath.Join(t.TempDir(), "gone.png"))
	files.Remove("")
}
