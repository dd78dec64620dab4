package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSaveAndOpen(t *testing.T) {
	root := filepath.Join(t.TempDir(), "pdfs")
	d, err := NewDir(root, "")
	require.NoError(t, err)

	url, err := d.Save(context.Background(), "report.pdf", []byte("%PDF-data"))
	require.NoError(t, err)
	assert.Equal(t, "/pdfs/report.pdf", url)

	rc, err := d.Open(context.Background(), "report.pdf")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-data", string(b))

	// No temp files left behind.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDirBaseURL(t *testing.T) {
	d, err := NewDir(t.TempDir(), "https://grade.example.com/")
	require.NoError(t, err)

	url, err := d.Save(context.Background(), "x.pdf", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "https://grade.example.com/pdfs/x.pdf", url)
}

func TestDirSaveStripsPathComponents(t *testing.T) {
	root := t.TempDir()
	d, err := NewDir(root, "")
	require.NoError(t, err)

	url, err := d.Save(context.Background(), "../../etc/evil.pdf", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/pdfs/evil.pdf", url)
	_, err = os.Stat(filepath.Join(root, "evil.pdf"))
	assert.NoError(t, err)
}

func TestMemStore(t *testing.T) {
	m := NewMem()
	url, err := m.Save(context.Background(), "a.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/pdfs/a.pdf", url)
	assert.Equal(t, 1, m.Len())

	_, err = m.Open(context.Background(), "missing.pdf")
	assert.Error(t, err)
}
