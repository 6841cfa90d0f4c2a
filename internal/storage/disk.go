package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type diskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore stores logos under dir. The returned URLs are baseURL joined
// with the object name; the API serves dir at baseURL.
func NewDiskStore(dir, baseURL string) (LogoStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "logos"), 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewDiskStore: %w", err)
	}
	return &diskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *diskStore) Put(ctx context.Context, logo Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, ext, err := sniff(logo)
	if err != nil {
		return "", fmt.Errorf("storage.diskStore.Put: %w", err)
	}

	name := objectName(ext)
	if err := os.WriteFile(filepath.Join(s.dir, filepath.FromSlash(name)), logo.Data, 0o644); err != nil {
		return "", fmt.Errorf("storage.diskStore.Put: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
