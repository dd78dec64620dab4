package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gradewise/internal/prompt"
)

// --- ASSIGNMENT -------------------------------------------------------------

type assignmentReq struct {
	Subject       string `json:"subject"`
	Topic         string `json:"topic"`
	GradeLevel    int    `json:"grade_level"`
	QuestionCount int    `json:"question_count"`
	LLMName       string `json:"llm_name"`
}

func (h *Handle) Assignment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req assignmentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Topic) == "" {
		http.Error(w, "subject and topic are required", http.StatusBadRequest)
		return
	}
	if req.GradeLevel <= 0 {
		http.Error(w, "grade_level is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestDeadline(r))
	defer cancel()

	system, user := prompt.Assignment(req.Subject, req.Topic, req.GradeLevel, req.QuestionCount)
	res, err := h.generateDocument(ctx, "assignment", req.LLMName, system, user, req)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			http.Error(w, "assignment error: "+err.Error(), http.StatusBadGateway)
		} else {
			http.Error(w, "assignment error: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}
	res.Subject = strings.ToLower(req.Subject)
	writeJSON(w, http.StatusOK, res)
}
