package report

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"gradewise/internal/storage"
)

// Generator renders a text block into a PDF and flushes it to a Store.
// One call is one document; concurrent calls are independent.
type Generator struct {
	Store storage.Store
	Log   *zap.Logger
}

func NewGenerator(store storage.Store, log *zap.Logger) *Generator {
	return &Generator{Store: store, Log: log}
}

// Generate renders text under the given filename and blocks until the
// storage flush completes. It returns the retrieval URL, or an error
// and no artifact; there is no partial result.
func (g *Generator) Generate(ctx context.Context, filename, text string) (string, error) {
	pdf, err := Build(text)
	if err != nil {
		return "", fmt.Errorf("render pdf: %w", err)
	}
	url, err := g.Store.Save(ctx, filename, pdf)
	if err != nil {
		return "", fmt.Errorf("store pdf %s: %w", filename, err)
	}
	g.Log.Debug("pdf generated",
		zap.String("filename", filename),
		zap.Int("bytes", len(pdf)))
	return url, nil
}

// Build runs the layout pass on a fresh canvas and returns the raw PDF
// bytes.
func Build(text string) ([]byte, error) {
	c := NewPDFCanvas()
	Render(c, text)
	var buf bytes.Buffer
	if err := c.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
