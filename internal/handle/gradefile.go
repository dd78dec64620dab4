package handle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"gradewise/internal/llm"
	"gradewise/internal/util"
)

// --- GRADE FILE -------------------------------------------------------------

// GradeFile accepts a multipart upload (field "file", JPEG/PNG/PDF) and
// runs it through the same grading pipeline as text submissions. PDFs
// are rastered to page images by the external converter first.
func (h *Handle) GradeFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload)
	if err := r.ParseMultipartForm(h.MaxUpload); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	mime := util.SniffMime(data)
	if mime == "" {
		http.Error(w, "unsupported file type: want JPEG, PNG or PDF", http.StatusBadRequest)
		return
	}

	req := GradeRequest{
		StudentName: r.FormValue("student_name"),
		Subject:     r.FormValue("subject"),
		LLMName:     r.FormValue("llm_name"),
	}
	if g := r.FormValue("grade_level"); g != "" {
		fmt.Sscanf(g, "%d", &req.GradeLevel)
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestDeadline(r))
	defer cancel()

	res, err := h.GradeUpload(ctx, req, data, mime)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			http.Error(w, "grade error: "+err.Error(), http.StatusBadGateway)
		} else {
			http.Error(w, "grade error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GradeUpload turns an uploaded file into vision attachments and grades
// it. Shared with the Telegram bot's photo and document flows.
func (h *Handle) GradeUpload(ctx context.Context, req GradeRequest, data []byte, mime string) (*GradeResult, error) {
	switch mime {
	case "image/jpeg", "image/png":
		req.Attachments = []llm.Attachment{{Data: data, MIME: mime}}
	case "application/pdf":
		atts, err := h.pdfToAttachments(ctx, data)
		if err != nil {
			return nil, err
		}
		req.Attachments = atts
	default:
		return nil, fmt.Errorf("unsupported mime %q", mime)
	}
	req.Submission = "(attached)"
	return h.GradeSubmission(ctx, req)
}

func (h *Handle) pdfToAttachments(ctx context.Context, data []byte) ([]llm.Attachment, error) {
	if h.Conv == nil {
		return nil, fmt.Errorf("pdf uploads are not enabled")
	}
	tmp, err := os.MkdirTemp("", "gradewise-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	pdfPath := filepath.Join(tmp, "upload.pdf")
	if err := os.WriteFile(pdfPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}
	pages, err := h.Conv.PDFToImages(ctx, pdfPath, filepath.Join(tmp, "pages"))
	if err != nil {
		return nil, err
	}

	atts := make([]llm.Attachment, 0, len(pages))
	for _, p := range pages {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read page image %s: %w", p, err)
		}
		atts = append(atts, llm.Attachment{Data: b, MIME: "image/jpeg"})
	}
	return atts, nil
}
