package report

// Style selects the font weight for a drawing call.
type Style string

const (
	StyleNormal Style = ""
	StyleBold   Style = "B"
)

// Canvas is the drawing primitive the renderer lays a document onto.
// It owns the page stack and the vertical cursor; the renderer reads and
// advances the cursor and asks for explicit page breaks when pagination
// rules require them. Implicit breaks on line overflow are the canvas's
// own business.
type Canvas interface {
	// AddPage starts a new page and puts the cursor at the top margin.
	AddPage()

	Y() float64
	SetY(y float64)
	MoveY(dy float64)

	PageHeight() float64
	Margins() (left, top, right, bottom float64)

	// WriteLine draws s as a full line at the cursor and advances it.
	WriteLine(s string, style Style, size float64)
	// WriteSpan draws a bold lead-in followed by a normal-weight
	// remainder on the same line, then advances the cursor.
	WriteSpan(bold, rest string, boldSize, restSize float64)

	// Rect draws a rectangle; style is "D" for outline only or "FD"
	// for filled and outlined.
	Rect(x, y, w, h float64, style string)
	// CellText draws s with its top-left corner at (x, y) without
	// touching the cursor. Used inside table cells.
	CellText(x, y float64, s string, size float64)

	StringWidth(s string, size float64) float64
}
