package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gradewise/internal/convert"
	"gradewise/internal/llm"
	"gradewise/internal/prompt"
	"gradewise/internal/report"
	"gradewise/internal/rubric"
	"gradewise/internal/standards"
	"gradewise/internal/store"
	"gradewise/internal/util"
)

// ErrUpstream marks a failure of the third-party LLM call, so the HTTP
// layer can answer 502 instead of 500.
var ErrUpstream = errors.New("llm upstream failed")

type Handle struct {
	Chain     *llm.Chain
	Gen       *report.Generator
	Rubric    *rubric.Rubric
	Standards *standards.Dir
	Repo      *store.HistoryRepo // nil when history is disabled
	Conv      *convert.Converter
	Log       *zap.Logger
	MaxUpload int64 // bytes
}

func New(chain *llm.Chain, gen *report.Generator, rub *rubric.Rubric, std *standards.Dir, log *zap.Logger) *Handle {
	return &Handle{
		Chain:     chain,
		Gen:       gen,
		Rubric:    rub,
		Standards: std,
		Log:       log,
		MaxUpload: 10 << 20,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// requestDeadline honors the X-Request-Timeout header or timeoutSec
// query parameter, defaulting to 180s.
func requestDeadline(r *http.Request) time.Duration {
	deadline := 180 * time.Second
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	return deadline
}

func newFilename(kind string) string {
	return kind + "-" + uuid.NewString() + ".pdf"
}

// classifySubject asks the model which subject a submission belongs
// to. Any failure falls back to the general rubric.
func (h *Handle) classifySubject(ctx context.Context, llmName, submission string, atts []llm.Attachment) string {
	system, user := prompt.Classify(submission)
	res, err := h.Chain.Generate(ctx, llmName, system, user, atts)
	if err != nil {
		h.Log.Warn("subject classification failed", zap.Error(err))
		return "general"
	}
	var out struct {
		Subject string `json:"subject"`
	}
	if err := json.Unmarshal([]byte(util.StripCodeFences(res.Text)), &out); err != nil || out.Subject == "" {
		h.Log.Warn("subject classification returned bad JSON", zap.String("raw", res.Text))
		return "general"
	}
	return strings.ToLower(strings.TrimSpace(out.Subject))
}

// recordHistory writes a history row when the DB is configured.
// History is best-effort: a storage-side failure here does not fail the
// request that already produced its artifact.
func (h *Handle) recordHistory(ctx context.Context, d store.Document) {
	if h.Repo == nil {
		return
	}
	if err := h.Repo.Insert(ctx, d); err != nil {
		h.Log.Warn("history insert failed", zap.String("filename", d.Filename), zap.Error(err))
	}
}
