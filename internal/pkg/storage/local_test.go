package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndURL(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	stored, err := s.Upload(ctx, strings.NewReader("pdf"), "payslips/1/PS-1-202403.pdf", "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "payslips/1/PS-1-202403.pdf", stored)

	body, err := os.ReadFile(filepath.Join(dir, "payslips", "1", "PS-1-202403.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(body))

	url, err := s.GetURL(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/payslips/1/PS-1-202403.pdf", url)
}

func TestLocalStorage_TraversalStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(dir, "uploads"), "http://x")
	require.NoError(t, err)

	stored, err := s.Upload(ctx, strings.NewReader("x"), "../../escape.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "escape.txt", stored)

	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	assert.NoError(t, err)
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x")
	require.NoError(t, err)
	assert.NoError(t, s.Delete(context.Background(), "avatars/none.jpg"))
	assert.Error(t, s.Delete(context.Background(), ""))
}
