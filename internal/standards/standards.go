// Package standards loads grade-level curriculum standards documents.
// Standards are optional: a missing file for a grade simply means the
// grading prompt carries no standards section.
package standards

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Standard struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type Set struct {
	Grade    int                   `json:"grade"`
	Subjects map[string][]Standard `json:"subjects"`
}

// Dir resolves standards documents under a directory laid out as
// grade_<N>.json.
type Dir struct {
	Path string
}

// Load returns the standards for a grade, or (nil, nil) when no
// document exists for it.
func (d *Dir) Load(grade int) (*Set, error) {
	if grade <= 0 {
		return nil, nil
	}
	p := filepath.Join(d.Path, fmt.Sprintf("grade_%d.json", grade))
	b, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read standards %s: %w", p, err)
	}
	var s Set
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse standards %s: %w", p, err)
	}
	return &s, nil
}

// ForSubject returns the standards for a subject, or nil.
func (s *Set) ForSubject(subject string) []Standard {
	if s == nil {
		return nil
	}
	return s.Subjects[strings.ToLower(strings.TrimSpace(subject))]
}
