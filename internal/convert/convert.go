// Package convert shells out to the bundled Python helper that rasters
// PDF pages to JPEGs. The helper prints a single JSON object on stdout:
// {"success": true, "pages": [...]} or {"error": "..."}.
package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

type Converter struct {
	Python string // interpreter, default python3
	Script string // path to convert_pdf.py
}

type result struct {
	Success bool     `json:"success"`
	Pages   []string `json:"pages"`
	Error   string   `json:"error"`
}

// PDFToImages converts every page of the PDF at pdfPath into JPEG files
// under outDir and returns their paths in page order.
func (c *Converter) PDFToImages(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	python := c.Python
	if python == "" {
		python = "python3"
	}
	cmd := exec.CommandContext(ctx, python, c.Script, pdfPath, outDir)
	out, err := cmd.Output()
	// The helper reports failures as JSON on stdout with a nonzero
	// exit; prefer its message over the bare exit error.
	pages, perr := parseOutput(out)
	if perr == nil {
		return pages, nil
	}
	if err != nil {
		return nil, fmt.Errorf("convert pdf: %w: %v", err, perr)
	}
	return nil, perr
}

func parseOutput(out []byte) ([]string, error) {
	s := strings.TrimSpace(string(out))
	if s == "" {
		return nil, fmt.Errorf("converter produced no output")
	}
	var r result
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		return nil, fmt.Errorf("bad converter output %q: %w", s, err)
	}
	if r.Error != "" {
		return nil, fmt.Errorf("converter: %s", r.Error)
	}
	if !r.Success || len(r.Pages) == 0 {
		return nil, fmt.Errorf("converter returned no pages")
	}
	return r.Pages, nil
}
