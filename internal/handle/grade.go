package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"gradewise/internal/llm"
	"gradewise/internal/prompt"
	"gradewise/internal/store"
	"gradewise/internal/util"
)

// --- GRADE ------------------------------------------------------------------

type GradeRequest struct {
	Submission  string `json:"submission"`
	StudentName string `json:"student_name"`
	GradeLevel  int    `json:"grade_level"`
	Subject     string `json:"subject"`
	LLMName     string `json:"llm_name"`

	// Set by the upload path instead of Submission.
	Attachments []llm.Attachment `json:"-"`
}

type GradeResult struct {
	PDFURL   string `json:"pdf_url"`
	Filename string `json:"filename"`
	Subject  string `json:"subject"`
	Engine   string `json:"engine"`
	Model    string `json:"model"`
}

func (h *Handle) Grade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Submission) == "" {
		http.Error(w, "submission is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestDeadline(r))
	defer cancel()

	res, err := h.GradeSubmission(ctx, req)
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

// GradeSubmission runs the full pipeline: classify subject when absent,
// build the grading prompt, call the engine chain, normalize the text
// to ASCII, render the PDF, store it, and record history. Shared by the
// HTTP handler and the Telegram bot.
func (h *Handle) GradeSubmission(ctx context.Context, req GradeRequest) (*GradeResult, error) {
	start := time.Now()

	subject := strings.ToLower(strings.TrimSpace(req.Subject))
	if subject == "" {
		subject = h.classifySubject(ctx, req.LLMName, req.Submission, req.Attachments)
	}

	set, err := h.Standards.Load(req.GradeLevel)
	if err != nil {
		return nil, fmt.Errorf("load standards: %w", err)
	}

	system, user := prompt.Grading(prompt.GradingInput{
		Submission:     req.Submission,
		StudentName:    req.StudentName,
		GradeLevel:     req.GradeLevel,
		Subject:        subject,
		Components:     h.Rubric.Components(subject),
		Standards:      set.ForSubject(subject),
		HasAttachments: len(req.Attachments) > 0,
	})

	gen, err := h.Chain.Generate(ctx, req.LLMName, system, user, req.Attachments)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	filename := newFilename("grade")
	url, err := h.Gen.Generate(ctx, filename, util.StripNonASCII(gen.Text))
	if err != nil {
		return nil, err
	}

	reqJSON, _ := json.Marshal(req)
	h.recordHistory(ctx, store.Document{
		Kind:     "grade",
		Subject:  subject,
		Engine:   gen.Engine,
		Model:    gen.Model,
		Filename: filename,
		URL:      url,
		Request:  reqJSON,
	})

	h.Log.Info("graded submission",
		zap.String("subject", subject),
		zap.String("engine", gen.Engine),
		zap.String("filename", filename),
		zap.Duration("took", time.Since(start)))
	rendersTotal.WithLabelValues("grade").Inc()

	return &GradeResult{
		PDFURL:   url,
		Filename: filename,
		Subject:  subject,
		Engine:   gen.Engine,
		Model:    gen.Model,
	}, nil
}
