package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin      = 14
	tableBottomEdge = 28
	cellPadding     = 1.5
	tableFontSize   = 10
	lineSpacing     = 1.15
	pointToMM       = 25.4 / 72
	fontFamily      = "Helvetica"
)

// Relative widths of the ID, Product Names, Number of Items, Amount and Status columns.
var columnWeights = []float64{0.24, 0.32, 0.14, 0.12, 0.18}

// PDFCanvas draws on an A4 portrait page using millimetres.
type PDFCanvas struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
}

func NewPDFCanvas() *PDFCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(fontFamily, "", bodyFontSize)
	pdf.AddPage()
	return &PDFCanvas{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *PDFCanvas) PageSize() PageSize {
	width, height := c.pdf.GetPageSize()
	return PageSize{
		Width:  width,
		Height: height,
	}
}

func (c *PDFCanvas) PageCount() int {
	return c.pdf.PageCount()
}

func (c *PDFCanvas) Text(block TextBlock) {
	c.pdf.SetFont(fontFamily, "", block.FontSize)
	txt := c.translate(block.Text)
	x := block.X
	switch block.Align {
	case AlignCenter:
		x -= c.pdf.GetStringWidth(txt) / 2
	case AlignRight:
		x -= c.pdf.GetStringWidth(txt)
	}
	c.pdf.Text(x, block.Y, txt)
}

func (c *PDFCanvas) Table(table Table, didDrawPage func(page int)) error {
	if didDrawPage == nil {
		didDrawPage = func(int) {}
	}
	width, height := c.pdf.GetPageSize()
	widths := columnWidths(width - 2*pageMargin)
	bottom := height - tableBottomEdge

	page := 1
	y := table.StartY
	y = c.drawRow(table.Head, widths, y, true, false)
	rowsOnPage := 0
	for i, row := range table.Body {
		cells := row.Cells()
		if y+c.rowHeight(cells, widths) > bottom && rowsOnPage > 0 {
			didDrawPage(page)
			c.pdf.AddPage()
			page++
			y = c.drawRow(table.Head, widths, pageMargin, true, false)
			rowsOnPage = 0
		}
		y = c.drawRow(cells, widths, y, false, i%2 == 1)
		rowsOnPage++
	}
	didDrawPage(page)

	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("pdf drawing failed: %w", err)
	}
	return nil
}

func (c *PDFCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w) //nolint:wrapcheck // unnecessary
}

func (c *PDFCanvas) rowHeight(cells []string, widths []float64) float64 {
	c.pdf.SetFont(fontFamily, "", tableFontSize)
	return c.measure(cells, widths)
}

func (c *PDFCanvas) measure(cells []string, widths []float64) float64 {
	maxLines := 1
	for i, cell := range cells {
		lines := c.wrap(c.translate(cell), widths[i]-2*cellPadding)
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	return float64(maxLines)*lineHeight() + 2*cellPadding
}

func (c *PDFCanvas) drawRow(cells []string, widths []float64, y float64, head, striped bool) float64 {
	style := ""
	if head {
		style = "B"
	}
	c.pdf.SetFont(fontFamily, style, tableFontSize)
	h := c.measure(cells, widths)

	switch {
	case head:
		c.pdf.SetFillColor(41, 128, 185)
		c.pdf.SetTextColor(255, 255, 255)
	case striped:
		c.pdf.SetFillColor(245, 245, 245)
		c.pdf.SetTextColor(0, 0, 0)
	default:
		c.pdf.SetFillColor(255, 255, 255)
		c.pdf.SetTextColor(0, 0, 0)
	}
	c.pdf.SetDrawColor(200, 200, 200)

	x := float64(pageMargin)
	for i, cell := range cells {
		c.pdf.Rect(x, y, widths[i], h, "FD")
		lines := c.wrap(c.translate(cell), widths[i]-2*cellPadding)
		for n, line := range lines {
			baseline := y + cellPadding + float64(n)*lineHeight() + tableFontSize*pointToMM
			c.pdf.Text(x+cellPadding, baseline, line)
		}
		x += widths[i]
	}

	c.pdf.SetTextColor(0, 0, 0)
	return y + h
}

// wrap breaks single-byte encoded text into lines no wider than width,
// splitting on spaces and, for overlong words, between bytes.
func (c *PDFCanvas) wrap(txt string, width float64) []string {
	lines := make([]string, 0, 1)
	current := ""
	for _, word := range strings.Fields(txt) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if c.pdf.GetStringWidth(candidate) <= width {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		for c.pdf.GetStringWidth(word) > width && len(word) > 1 {
			cut := len(word) - 1
			for cut > 1 && c.pdf.GetStringWidth(word[:cut]) > width {
				cut--
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func columnWidths(total float64) []float64 {
	widths := make([]float64, len(columnWeights))
	for i, weight := range columnWeights {
		widths[i] = total * weight
	}
	return widths
}

func lineHeight() float64 {
	return tableFontSize * pointToMM * lineSpacing
}
