package handle

import (
	"net/http"
	"strconv"
	"time"
)

// --- HISTORY ----------------------------------------------------------------

type historyItem struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Kind      string    `json:"kind"`
	Subject   string    `json:"subject,omitempty"`
	Engine    string    `json:"engine"`
	Model     string    `json:"model"`
	Filename  string    `json:"filename"`
	PDFURL    string    `json:"pdf_url"`
}

func (h *Handle) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	if h.Repo == nil {
		http.Error(w, "history disabled", http.StatusServiceUnavailable)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	docs, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		http.Error(w, "history error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	items := make([]historyItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, historyItem{
			ID:        d.ID,
			CreatedAt: d.CreatedAt,
			Kind:      d.Kind,
			Subject:   d.Subject,
			Engine:    d.Engine,
			Model:     d.Model,
			Filename:  d.Filename,
			PDFURL:    d.URL,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": items})
}
