package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCanvas records every drawing call so tests can assert on the
// document structure without a real PDF backend. Geometry matches the
// production canvas: 792pt page, 72pt margins.
type fakeCanvas struct {
	ops   []fakeOp
	y     float64
	pages int
}

type fakeOp struct {
	kind  string // "page", "line", "span", "rect", "cell"
	text  string
	rest  string
	style string
	x, y  float64
	w, h  float64
	size  float64
	page  int
}

const (
	fakePageH  = 792.0
	fakeMargin = 72.0
)

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{y: fakeMargin, pages: 1}
}

func (f *fakeCanvas) AddPage() {
	f.pages++
	f.y = fakeMargin
	f.ops = append(f.ops, fakeOp{kind: "page", page: f.pages})
}

func (f *fakeCanvas) Y() float64       { return f.y }
func (f *fakeCanvas) SetY(y float64)   { f.y = y }
func (f *fakeCanvas) MoveY(dy float64) { f.y += dy }

func (f *fakeCanvas) PageHeight() float64 { return fakePageH }
func (f *fakeCanvas) Margins() (float64, float64, float64, float64) {
	return fakeMargin, fakeMargin, fakeMargin, fakeMargin
}

func (f *fakeCanvas) WriteLine(s string, style Style, size float64) {
	f.ops = append(f.ops, fakeOp{kind: "line", text: s, style: string(style), y: f.y, size: size, page: f.pages})
	f.y += lineHeight
}

func (f *fakeCanvas) WriteSpan(bold, rest string, boldSize, restSize float64) {
	f.ops = append(f.ops, fakeOp{kind: "span", text: bold, rest: rest, y: f.y, size: boldSize, page: f.pages})
	f.y += lineHeight
}

func (f *fakeCanvas) Rect(x, y, w, h float64, style string) {
	f.ops = append(f.ops, fakeOp{kind: "rect", style: style, x: x, y: y, w: w, h: h, page: f.pages})
}

func (f *fakeCanvas) CellText(x, y float64, s string, size float64) {
	f.ops = append(f.ops, fakeOp{kind: "cell", text: s, x: x, y: y, size: size, page: f.pages})
}

func (f *fakeCanvas) StringWidth(s string, size float64) float64 {
	return float64(len(s)) * size * 0.5
}

func (f *fakeCanvas) lines() []fakeOp { return f.byKind("line") }
func (f *fakeCanvas) cells() []fakeOp { return f.byKind("cell") }
func (f *fakeCanvas) rects() []fakeOp { return f.byKind("rect") }

func (f *fakeCanvas) byKind(kind string) []fakeOp {
	var out []fakeOp
	for _, op := range f.ops {
		if op.kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func TestRenderPlainLines(t *testing.T) {
	c := newFakeCanvas()
	Render(c, "The thesis is clear.\nParagraphs flow logically.")

	lines := c.lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "The thesis is clear.", lines[0].text)
	assert.Equal(t, "", lines[0].style)
	assert.Equal(t, bodySize, lines[0].size)
	assert.Equal(t, "Paragraphs flow logically.", lines[1].text)
}

func TestRenderBlankAndRuleAdvanceOnly(t *testing.T) {
	c := newFakeCanvas()
	Render(c, "a\n\n---\nb")

	lines := c.lines()
	require.Len(t, lines, 2)
	// a at top margin; then blank (half line) + rule (0.7 line)
	// between the two text lines.
	assert.Equal(t, fakeMargin, lines[0].y)
	assert.InDelta(t, fakeMargin+lineHeight+lineHeight/2+0.7*lineHeight, lines[1].y, 0.001)
}

func TestRenderHeader(t *testing.T) {
	c := newFakeCanvas()
	Render(c, "**Grading Report**")

	lines := c.lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Grading Report", lines[0].text)
	assert.Equal(t, "B", lines[0].style)
	assert.Equal(t, headerSize, lines[0].size)
	// Cursor advances one line before the header is drawn.
	assert.Equal(t, fakeMargin+lineHeight, lines[0].y)
}

func TestRenderCodeLabel(t *testing.T) {
	c := newFakeCanvas()
	Render(c, "A1 - Clarity")

	lines := c.lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "A1 - Clarity", lines[0].text)
	assert.Equal(t, "B", lines[0].style)
	assert.Equal(t, labelSize, lines[0].size)
}

func TestRenderFieldLabel(t *testing.T) {
	c := newFakeCanvas()
	Render(c, "Explanation: Good use of evidence.")

	spans := c.byKind("span")
	require.Len(t, spans, 1)
	assert.Equal(t, "Explanation: ", spans[0].text)
	assert.Equal(t, "Good use of evidence.", spans[0].rest)
}

func TestRenderTable(t *testing.T) {
	c := newFakeCanvas()
	Render(c, strings.Join([]string{
		"Table of Analysis",
		"| Line | Judgement | Note |",
		"| p.1 | strong | clear |",
		"| p.2 | weak | vague |",
	}, "\n"))

	// Forced page break plus bold section title.
	pages := c.byKind("page")
	require.Len(t, pages, 1)
	lines := c.lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Table of Analysis", lines[0].text)
	assert.Equal(t, "B", lines[0].style)

	// 3 rows x 3 fixed columns of borders; header row filled.
	rects := c.rects()
	require.Len(t, rects, 9)
	for i, r := range rects {
		assert.Equal(t, colWidth, r.w)
		assert.Equal(t, rowHeight, r.h)
		if i < 3 {
			assert.Equal(t, "FD", r.style, "header row rect %d", i)
		} else {
			assert.Equal(t, "D", r.style, "body row rect %d", i)
		}
	}

	var texts []string
	for _, op := range c.cells() {
		texts = append(texts, op.text)
	}
	assert.Equal(t, []string{
		"Line", "Judgement", "Note",
		"p.1", "strong", "clear",
		"p.2", "weak", "vague",
	}, texts)
}

func TestRenderTableFlushedByHeader(t *testing.T) {
	c := newFakeCanvas()
	Render(c, strings.Join([]string{
		"Table of Analysis",
		"| a | b | c |",
		"| d | e | f |",
		"**Summary**",
		"All good.",
	}, "\n"))

	// Two accumulated rows must be drawn before the header line.
	var order []string
	for _, op := range c.ops {
		if op.kind == "line" || op.kind == "cell" {
			order = append(order, op.kind+":"+op.text)
		}
	}
	assert.Equal(t, []string{
		"line:Table of Analysis",
		"cell:a", "cell:b", "cell:c",
		"cell:d", "cell:e", "cell:f",
		"line:Summary",
		"line:All good.",
	}, order)
	assert.Len(t, c.rects(), 6)
}

func TestRenderTableEndedByPlainLine(t *testing.T) {
	c := newFakeCanvas()
	Render(c, strings.Join([]string{
		"Table of Analysis",
		"| a | b | c |",
		"Overall a solid draft.",
	}, "\n"))

	assert.Len(t, c.rects(), 3)
	lines := c.lines()
	require.Len(t, lines, 2)
	// The terminating line renders as plain body text after the flush.
	assert.Equal(t, "Overall a solid draft.", lines[1].text)
	assert.Equal(t, "", lines[1].style)
}

func TestRenderTableRowCellCountMismatch(t *testing.T) {
	c := newFakeCanvas()
	Render(c, strings.Join([]string{
		"Table of Analysis",
		"| a | b | c | d | e |",
		"| f |",
	}, "\n"))

	var texts []string
	for _, op := range c.cells() {
		texts = append(texts, op.text)
	}
	// Excess cells dropped, missing cells left blank. The border grid
	// is still 3 columns per row.
	assert.Equal(t, []string{"a", "b", "c", "f"}, texts)
	assert.Len(t, c.rects(), 6)
}

func TestRenderTableCellTruncation(t *testing.T) {
	c := newFakeCanvas()
	long := strings.Repeat("x", 120)
	Render(c, "Table of Analysis\n| "+long+" | b | c |")

	cells := c.cells()
	require.Len(t, cells, 3)
	got := cells[0].text
	assert.True(t, strings.HasSuffix(got, "..."), "got %q", got)
	assert.LessOrEqual(t, c.StringWidth(got, cellFontSize), colWidth-2*cellPad)
	assert.True(t, strings.HasPrefix(got, "xxx"))
}

func TestRenderTablePagination(t *testing.T) {
	const rows = 40
	var b strings.Builder
	b.WriteString("Table of Analysis\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "| r%d | a | b |\n", i)
	}

	c := newFakeCanvas()
	Render(c, b.String())

	// The forced break for the section plus at least one continuation
	// page for the grid.
	assert.GreaterOrEqual(t, len(c.byKind("page")), 2)
	// Every input row is rendered.
	assert.Len(t, c.rects(), rows*3)
	// No row crosses the printable area.
	for _, r := range c.rects() {
		assert.LessOrEqual(t, r.y+r.h, fakePageH-fakeMargin)
		assert.GreaterOrEqual(t, r.y, fakeMargin)
	}
	// Continuation pages keep the same column x positions.
	for _, r := range c.rects() {
		rel := (r.x - fakeMargin) / colWidth
		assert.Contains(t, []float64{0, 1, 2}, rel)
	}
}

func TestRenderTableOpenAtEOFIsFlushed(t *testing.T) {
	c := newFakeCanvas()
	Render(c, "Table of Analysis\n| a | b | c |")
	assert.Len(t, c.rects(), 3)
}

func TestRenderEmptyTableFlushIsNoop(t *testing.T) {
	c := newFakeCanvas()
	Render(c, "Table of Analysis\nNo rows here.")
	assert.Empty(t, c.rects())
}

func TestRenderIdempotent(t *testing.T) {
	text := strings.Join([]string{
		"**Report**",
		"Body line.",
		"Table of Analysis",
		"| a | b | c |",
		"| d | e | f |",
		"Done.",
	}, "\n")

	c1 := newFakeCanvas()
	Render(c1, text)
	c2 := newFakeCanvas()
	Render(c2, text)
	assert.Equal(t, c1.ops, c2.ops)
}

func TestRenderEndToEnd(t *testing.T) {
	input := "**Grading Report**\n" +
		"\n" +
		"A1 - Clarity\n" +
		"Explanation: Good use of evidence.\n" +
		"---\n" +
		"Table of Analysis\n" +
		"| Line | Judgement | Note |\n" +
		"| p.1 | strong | clear |\n"

	c := newFakeCanvas()
	Render(c, input)

	var got []string
	for _, op := range c.ops {
		switch op.kind {
		case "page":
			got = append(got, "page")
		case "line":
			got = append(got, fmt.Sprintf("line[%s]:%s", op.style, op.text))
		case "span":
			got = append(got, "span:"+op.text+op.rest)
		case "cell":
			got = append(got, "cell:"+op.text)
		case "rect":
			got = append(got, "rect:"+op.style)
		}
	}
	assert.Equal(t, []string{
		"line[B]:Grading Report",
		"line[B]:A1 - Clarity",
		"span:Explanation: Good use of evidence.",
		"page",
		"line[B]:Table of Analysis",
		"rect:FD", "cell:Line",
		"rect:FD", "cell:Judgement",
		"rect:FD", "cell:Note",
		"rect:D", "cell:p.1",
		"rect:D", "cell:strong",
		"rect:D", "cell:clear",
	}, got)
}
