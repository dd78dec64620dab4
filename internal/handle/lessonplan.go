package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"gradewise/internal/prompt"
	"gradewise/internal/store"
	"gradewise/internal/util"
)

// --- LESSON PLAN ------------------------------------------------------------

type lessonPlanReq struct {
	Topic           string `json:"topic"`
	GradeLevel      int    `json:"grade_level"`
	DurationMinutes int    `json:"duration_minutes"`
	LLMName         string `json:"llm_name"`
}

func (h *Handle) LessonPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req lessonPlanReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}
	if req.GradeLevel <= 0 {
		http.Error(w, "grade_level is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestDeadline(r))
	defer cancel()

	system, user := prompt.LessonPlan(req.Topic, req.GradeLevel, req.DurationMinutes)
	res, err := h.generateDocument(ctx, "lessonplan", req.LLMName, system, user, req)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			http.Error(w, "lessonplan error: "+err.Error(), http.StatusBadGateway)
		} else {
			http.Error(w, "lessonplan error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// generateDocument is the shared generate-render-store tail for the
// lesson-plan and assignment endpoints.
func (h *Handle) generateDocument(ctx context.Context, kind, llmName, system, user string, echo any) (*GradeResult, error) {
	gen, err := h.Chain.Generate(ctx, llmName, system, user, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	filename := newFilename(kind)
	url, err := h.Gen.Generate(ctx, filename, util.StripNonASCII(gen.Text))
	if err != nil {
		return nil, err
	}

	reqJSON, _ := json.Marshal(echo)
	h.recordHistory(ctx, store.Document{
		Kind:     kind,
		Engine:   gen.Engine,
		Model:    gen.Model,
		Filename: filename,
		URL:      url,
		Request:  reqJSON,
	})

	h.Log.Info("generated document",
		zap.String("kind", kind),
		zap.String("engine", gen.Engine),
		zap.String("filename", filename))
	rendersTotal.WithLabelValues(kind).Inc()

	return &GradeResult{
		PDFURL:   url,
		Filename: filename,
		Engine:   gen.Engine,
		Model:    gen.Model,
	}, nil
}
