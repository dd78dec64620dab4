package report

import (
	"regexp"
	"strings"
)

// lineKind tags the classification of one source line.
type lineKind int

const (
	lineBlank lineKind = iota
	lineRule
	lineHeader
	lineTableStart
	lineTableRow
	lineTableEnd
	lineCodeLabel
	lineFieldLabel
	linePlain
)

// lineClass is the tagged result of classifying one line. Which fields
// are set depends on kind: text for Header/TableEnd/Plain, cells for
// TableRow, code+label for CodeLabel, field+rest for FieldLabel.
type lineClass struct {
	kind  lineKind
	text  string
	cells []string
	code  string
	label string
	field string
	rest  string
}

const tableMarker = "Table of Analysis"

var (
	// **Title** alone on a line.
	reHeader = regexp.MustCompile(`^\*\*(.+)\*\*$`)
	// Rubric-code label: optional leading dash, a letter-prefixed
	// numeric code (optionally dotted, e.g. A1, W2.3, RL10.1), a
	// dash or colon separator, then the label text.
	reCodeLabel = regexp.MustCompile(`^(?:-\s*)?([A-Z]{1,3}\d+(?:\.\d+)*)\s*[-:]\s*(\S.*)$`)
	// Field label: optional leading dash, one of a fixed vocabulary,
	// then a colon. Case-insensitive.
	reFieldLabel = regexp.MustCompile(`(?i)^(?:-\s*)?(Explanation|Evidence|Suggestions)\s*:\s*(.*)$`)
)

// classifyLine decides the rendering action for one line. Match order
// is significant because the patterns overlap: a pipe row is only a row
// while a table is open, a blank line inside a table does not close it,
// and anything unmatched is plain text. There is no error case.
func classifyLine(line string, inTable bool) lineClass {
	t := strings.TrimSpace(line)

	if t == "" {
		return lineClass{kind: lineBlank}
	}
	if t == "---" {
		return lineClass{kind: lineRule}
	}
	if m := reHeader.FindStringSubmatch(t); m != nil {
		return lineClass{kind: lineHeader, text: m[1]}
	}
	if strings.HasPrefix(t, tableMarker) {
		return lineClass{kind: lineTableStart}
	}
	if inTable {
		if strings.HasPrefix(t, "|") {
			return lineClass{kind: lineTableRow, cells: splitRow(t)}
		}
		// A non-row line ends the table; it is rendered as plain
		// body text afterwards, not re-classified.
		return lineClass{kind: lineTableEnd, text: t}
	}
	if m := reCodeLabel.FindStringSubmatch(t); m != nil {
		return lineClass{kind: lineCodeLabel, code: m[1], label: strings.TrimSpace(m[2])}
	}
	if m := reFieldLabel.FindStringSubmatch(t); m != nil {
		return lineClass{kind: lineFieldLabel, field: m[1], rest: strings.TrimSpace(m[2])}
	}
	return lineClass{kind: linePlain, text: t}
}

// splitRow parses "| a | b | c |" into trimmed cells. The empty
// segments produced by the outer delimiters are discarded; inner empty
// cells are kept.
func splitRow(t string) []string {
	parts := strings.Split(t, "|")
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}
