package report

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pageMargin = 72.0

// PDFCanvas is the production Canvas, backed by gofpdf. Drawing errors
// accumulate inside the Fpdf instance and surface once, from Output.
type PDFCanvas struct {
	pdf  *gofpdf.Fpdf
	left float64
}

// NewPDFCanvas opens a US Letter portrait document with 1" margins and
// the first page already added.
func NewPDFCanvas() *PDFCanvas {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(0, 0, 0)
	pdf.AddPage()
	return &PDFCanvas{pdf: pdf, left: pageMargin}
}

func (c *PDFCanvas) AddPage() { c.pdf.AddPage() }

func (c *PDFCanvas) Y() float64     { return c.pdf.GetY() }
func (c *PDFCanvas) SetY(y float64) { c.pdf.SetY(y) }
func (c *PDFCanvas) MoveY(dy float64) {
	c.pdf.SetY(c.pdf.GetY() + dy)
}

func (c *PDFCanvas) PageHeight() float64 {
	_, h := c.pdf.GetPageSize()
	return h
}

func (c *PDFCanvas) Margins() (left, top, right, bottom float64) {
	return c.pdf.GetMargins()
}

func (c *PDFCanvas) WriteLine(s string, style Style, size float64) {
	c.pdf.SetFont(fontFamily, string(style), size)
	c.pdf.SetX(c.left)
	c.pdf.CellFormat(0, lineHeight, s, "", 1, "L", false, 0, "")
}

func (c *PDFCanvas) WriteSpan(bold, rest string, boldSize, restSize float64) {
	c.pdf.SetX(c.left)
	c.pdf.SetFont(fontFamily, "B", boldSize)
	c.pdf.CellFormat(c.pdf.GetStringWidth(bold), lineHeight, bold, "", 0, "L", false, 0, "")
	c.pdf.SetFont(fontFamily, "", restSize)
	c.pdf.CellFormat(0, lineHeight, rest, "", 1, "L", false, 0, "")
}

func (c *PDFCanvas) Rect(x, y, w, h float64, style string) {
	c.pdf.Rect(x, y, w, h, style)
}

func (c *PDFCanvas) CellText(x, y float64, s string, size float64) {
	c.pdf.SetFont(fontFamily, "", size)
	// Text positions by baseline; offset by the font size to get a
	// top-left anchor.
	c.pdf.Text(x, y+size, s)
}

func (c *PDFCanvas) StringWidth(s string, size float64) float64 {
	c.pdf.SetFont(fontFamily, "", size)
	return c.pdf.GetStringWidth(s)
}

// Output writes the finished PDF and reports any error accumulated
// during drawing.
func (c *PDFCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
