// Package prompt assembles the system and user prompts for each
// generation kind. The grading prompt instructs the model to emit
// exactly the line syntax the PDF renderer recognizes, so the prompt's
// output contract and the renderer's input contract are the same
// format.
package prompt

import (
	"fmt"
	"strings"

	"gradewise/internal/rubric"
	"gradewise/internal/standards"
)

// formatContract is appended to every generation prompt so the output
// can be laid out by the report renderer.
const formatContract = `Format the output as plain ASCII text using only these conventions:
- Section headers fully wrapped in ** markers, alone on their line, e.g. **Grading Report**
- A line with only --- as a section divider
- Rubric component headings as "CODE - name", e.g. "A1 - Clarity"
- Labeled fields at line start: "Explanation:", "Evidence:", "Suggestions:"
- Exactly one section starting with the literal line "Table of Analysis",
  followed by pipe-delimited rows with three cells: | a | b | c |
  The first row is the column header row. No separator row of dashes.
- Everything else as short plain paragraphs.
Do not use any other markdown. Do not use non-ASCII characters.`

// Classify builds the subject-classification prompt. The response must
// be strict JSON.
func Classify(submission string) (system, user string) {
	system = `You classify a student submission by school subject.
Return only JSON of the form {"subject": "<subject>"} where <subject> is one of:
english, math, science, history, general. Any text outside the JSON is an error.`
	user = "Classify this submission:\n\n" + submission
	return system, user
}

// GradingInput carries everything the grading prompt is built from.
type GradingInput struct {
	Submission  string
	StudentName string
	GradeLevel  int
	Subject     string
	Components  []rubric.Component
	Standards   []standards.Standard
	// HasAttachments is set when the submission arrives as images
	// instead of text.
	HasAttachments bool
}

// Grading builds the grading prompt from the rubric plus optional
// grade-level standards.
func Grading(in GradingInput) (system, user string) {
	var sys strings.Builder
	sys.WriteString("You are an experienced teacher grading a student submission.\n")
	sys.WriteString("Evaluate the submission against each rubric component below. ")
	sys.WriteString("For every component give an Explanation, Evidence, and Suggestions field. ")
	sys.WriteString("Close with a Table of Analysis whose rows cite specific lines or passages.\n\n")

	sys.WriteString("Rubric components:\n")
	for _, c := range in.Components {
		fmt.Fprintf(&sys, "%s - %s. Distinguished level: %s\n", c.Code, c.Name, c.Distinguished)
	}
	if len(in.Standards) > 0 {
		fmt.Fprintf(&sys, "\nGrade %d curriculum standards to weigh:\n", in.GradeLevel)
		for _, s := range in.Standards {
			fmt.Fprintf(&sys, "%s: %s\n", s.Code, s.Text)
		}
	}
	sys.WriteString("\n" + formatContract)

	var usr strings.Builder
	usr.WriteString("Grade this submission.")
	if in.StudentName != "" {
		fmt.Fprintf(&usr, " Student: %s.", in.StudentName)
	}
	if in.Subject != "" {
		fmt.Fprintf(&usr, " Subject: %s.", in.Subject)
	}
	if in.GradeLevel > 0 {
		fmt.Fprintf(&usr, " Grade level: %d.", in.GradeLevel)
	}
	if in.HasAttachments {
		usr.WriteString("\nThe submission is in the attached image(s).")
	} else {
		usr.WriteString("\n\n" + in.Submission)
	}
	return sys.String(), usr.String()
}

// LessonPlan builds the lesson-plan prompt.
func LessonPlan(topic string, gradeLevel, durationMinutes int) (system, user string) {
	system = `You are an experienced teacher writing a lesson plan.
Structure it with objectives, materials, a timed activity sequence, and an assessment.
Include a Table of Analysis section mapping each activity to its objective and timing.

` + formatContract
	if durationMinutes <= 0 {
		durationMinutes = 45
	}
	user = fmt.Sprintf("Write a %d-minute lesson plan on %q for grade %d.", durationMinutes, topic, gradeLevel)
	return system, user
}

// Assignment builds the assignment-generation prompt.
func Assignment(subject, topic string, gradeLevel, questionCount int) (system, user string) {
	system = `You are an experienced teacher writing an assignment for students.
Give clear instructions, the questions, and a grading note per question.
Include a Table of Analysis section mapping each question to the skill it assesses and its point value.

` + formatContract
	if questionCount <= 0 {
		questionCount = 5
	}
	user = fmt.Sprintf("Write a %s assignment with %d questions on %q for grade %d.",
		subject, questionCount, topic, gradeLevel)
	return system, user
}
