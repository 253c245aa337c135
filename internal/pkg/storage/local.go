package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files under basePath and serves them from baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string // e.g., "http://localhost:8080/uploads"
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: abs,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// resolve maps a relative storage path onto disk, refusing anything outside basePath.
func (s *LocalStorage) resolve(p string) (string, string, error) {
	clean := path.Clean("/" + filepath.ToSlash(p))[1:]
	if clean == "" {
		return "", "", fmt.Errorf("invalid file path: %q", p)
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(clean))
	rel, err := filepath.Rel(s.basePath, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", "", fmt.Errorf("invalid file path: %q", p)
	}
	return clean, full, nil
}

func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, p string, contentType string) (string, error) {
	clean, full, err := s.resolve(p)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return clean, nil
}

func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	_, full, err := s.resolve(p)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) GetURL(ctx context.Context, p string) (string, error) {
	clean, _, err := s.resolve(p)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/" + clean, nil
}
