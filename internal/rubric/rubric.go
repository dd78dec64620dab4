// Package rubric loads the grading rubric document. Each component is
// a named criterion with its distinguished-level descriptor; prompts
// quote components verbatim.
package rubric

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const fallbackSubject = "general"

type Component struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Distinguished string `json:"distinguished"`
}

type Rubric struct {
	subjects map[string][]Component
}

// Load reads and validates the rubric JSON. It fails fast on malformed
// input so a bad deploy is caught at startup, not per request.
func Load(path string) (*Rubric, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric %s: %w", path, err)
	}
	var subjects map[string][]Component
	if err := json.Unmarshal(b, &subjects); err != nil {
		return nil, fmt.Errorf("parse rubric %s: %w", path, err)
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("rubric %s: no subjects", path)
	}
	for subj, comps := range subjects {
		for i, c := range comps {
			if c.Code == "" || c.Name == "" {
				return nil, fmt.Errorf("rubric %s: subject %q component %d missing code or name", path, subj, i)
			}
		}
	}
	return &Rubric{subjects: subjects}, nil
}

// Components returns the components for a subject, falling back to the
// general rubric when the subject is unknown.
func (r *Rubric) Components(subject string) []Component {
	if comps, ok := r.subjects[strings.ToLower(strings.TrimSpace(subject))]; ok {
		return comps
	}
	return r.subjects[fallbackSubject]
}

// Subjects lists the subjects the rubric covers.
func (r *Rubric) Subjects() []string {
	out := make([]string, 0, len(r.subjects))
	for s := range r.subjects {
		out = append(out, s)
	}
	return out
}
