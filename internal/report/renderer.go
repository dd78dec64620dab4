package report

import "strings"

// Layout geometry. Points, US Letter pages with 1" margins; the values
// here and in NewPDFCanvas together fix the page grid, so identical
// input text always produces an identical page/row structure.
const (
	fontFamily = "Helvetica"

	lineHeight     = 16.0
	bodySize       = 11.0
	labelSize      = 12.0
	headerSize     = 16.0
	tableTitleSize = 14.0

	// The grid is always laid out as three fixed-width columns, no
	// matter how many cells a row actually carries. Rows with fewer
	// cells leave the tail columns empty; extra cells are dropped.
	tableCols    = 3
	colWidth     = 156.0
	rowHeight    = 22.0
	cellPad      = 4.0
	cellFontSize = 10.0
)

// renderer walks the source text one line at a time and draws it onto a
// Canvas. State is one bool and the pending-row accumulator; both live
// only for a single Render call.
type renderer struct {
	c       Canvas
	inTable bool
	rows    [][]string
}

// Render lays out the whole text block. A table still open when the
// input runs out is flushed.
func Render(c Canvas, text string) {
	r := &renderer{c: c}
	for _, line := range strings.Split(text, "\n") {
		r.renderLine(line)
	}
	if r.inTable {
		r.flushTable()
	}
}

func (r *renderer) renderLine(line string) {
	cl := classifyLine(line, r.inTable)
	switch cl.kind {
	case lineBlank:
		r.c.MoveY(lineHeight / 2)
	case lineRule:
		r.c.MoveY(0.7 * lineHeight)
	case lineHeader:
		if r.inTable {
			r.flushTable()
			r.inTable = false
		}
		r.c.MoveY(lineHeight)
		r.c.WriteLine(cl.text, StyleBold, headerSize)
	case lineTableStart:
		if r.inTable {
			r.flushTable()
		}
		r.c.AddPage()
		r.c.WriteLine(tableMarker, StyleBold, tableTitleSize)
		r.inTable = true
	case lineTableRow:
		r.rows = append(r.rows, cl.cells)
	case lineTableEnd:
		r.flushTable()
		r.inTable = false
		r.c.WriteLine(cl.text, StyleNormal, bodySize)
	case lineCodeLabel:
		r.c.WriteLine(cl.code+" - "+cl.label, StyleBold, labelSize)
	case lineFieldLabel:
		r.c.WriteSpan(cl.field+": ", cl.rest, labelSize, bodySize)
	case linePlain:
		r.c.WriteLine(cl.text, StyleNormal, bodySize)
	}
}

// flushTable commits the accumulated rows as a bordered grid. Row 0 is
// drawn shaded, the rest outline only. The pagination check runs per
// row, so one table may continue across pages.
func (r *renderer) flushTable() {
	rows := r.rows
	r.rows = nil
	if len(rows) == 0 {
		return
	}

	left, top, _, bottom := r.c.Margins()
	limit := r.c.PageHeight() - bottom

	for i, row := range rows {
		if r.c.Y()+rowHeight > limit {
			r.c.AddPage()
			r.c.SetY(top)
		}
		y := r.c.Y()
		style := "D"
		if i == 0 {
			style = "FD"
		}
		for j := 0; j < tableCols; j++ {
			x := left + float64(j)*colWidth
			r.c.Rect(x, y, colWidth, rowHeight, style)
			if j < len(row) && row[j] != "" {
				s := r.fitCell(row[j], colWidth-2*cellPad)
				r.c.CellText(x+cellPad, y+cellPad, s, cellFontSize)
			}
		}
		r.c.SetY(y + rowHeight)
	}
	r.c.MoveY(2 * lineHeight)
}

// fitCell truncates s with an ellipsis so it fits in maxW. Input is
// ASCII, so byte slicing is safe.
func (r *renderer) fitCell(s string, maxW float64) string {
	if r.c.StringWidth(s, cellFontSize) <= maxW {
		return s
	}
	const ell = "..."
	for len(s) > 0 {
		s = s[:len(s)-1]
		if r.c.StringWidth(s+ell, cellFontSize) <= maxW {
			return s + ell
		}
	}
	return ell
}
