package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobStore hides where uploaded files live; handlers only ever see the
// public URL that comes back.
type BlobStore interface {
	Put(ctx context.Context, filename string, r io.Reader) (string, error)
}

type DiskStore struct {
	Dir     string
	BaseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (d *DiskStore) Put(ctx context.Context, filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	path := filepath.Join(d.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write blob: %w", err)
	}
	return d.BaseURL + "/uploads/" + name, nil
}
