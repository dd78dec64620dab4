package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gradewise/internal/rubric"
	"gradewise/internal/standards"
)

func TestGrading(t *testing.T) {
	system, user := Grading(GradingInput{
		Submission:  "My essay.",
		StudentName: "Ada",
		GradeLevel:  5,
		Subject:     "english",
		Components: []rubric.Component{
			{Code: "W1", Name: "Thesis", Distinguished: "Thesis is arguable."},
		},
		Standards: []standards.Standard{
			{Code: "W.5.1", Text: "Write opinion pieces."},
		},
	})

	assert.Contains(t, system, "W1 - Thesis")
	assert.Contains(t, system, "W.5.1")
	assert.Contains(t, system, "Table of Analysis")
	assert.Contains(t, user, "My essay.")
	assert.Contains(t, user, "Ada")
}

func TestGradingNoStandards(t *testing.T) {
	system, _ := Grading(GradingInput{Submission: "x"})
	assert.NotContains(t, system, "curriculum standards")
}

func TestGradingAttachments(t *testing.T) {
	_, user := Grading(GradingInput{HasAttachments: true})
	assert.Contains(t, user, "attached image")
	assert.False(t, strings.Contains(user, "\n\n"))
}

func TestLessonPlanDefaults(t *testing.T) {
	_, user := LessonPlan("fractions", 5, 0)
	assert.Contains(t, user, "45-minute")
}

func TestAssignmentDefaults(t *testing.T) {
	_, user := Assignment("math", "linear equations", 8, 0)
	assert.Contains(t, user, "5 questions")
}

func TestClassifyStrictJSON(t *testing.T) {
	system, user := Classify("essay text")
	assert.Contains(t, system, `{"subject"`)
	assert.Contains(t, user, "essay text")
}
