package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Dir stores artifacts as files under a root directory served by the
// HTTP layer at /pdfs/. Writes are atomic: temp file, then rename, so
// a failed save leaves nothing behind.
type Dir struct {
	Root    string
	BaseURL string // optional absolute prefix, e.g. https://host
}

func NewDir(root, baseURL string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create pdf dir %s: %w", root, err)
	}
	return &Dir{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *Dir) Save(ctx context.Context, name string, data []byte) (string, error) {
	dst := filepath.Join(d.Root, filepath.Base(name))
	tmp, err := os.CreateTemp(d.Root, ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", dst, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename %s: %w", dst, err)
	}
	return d.BaseURL + "/pdfs/" + filepath.Base(name), nil
}

func (d *Dir) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.Root, filepath.Base(name)))
}
