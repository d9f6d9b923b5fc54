package docs

import (
	"bytes"

	"github.com/phpdave11/gofpdf"
)

const (
	pageMargin = 15.0
	rowHeight  = 6.0
	labelWidth = 50.0
)

// Brand palette.
var (
	primaryGreen = [3]int{0, 106, 78}
	darkText     = [3]int{40, 40, 40}
	mutedText    = [3]int{120, 120, 120}
	lightBg      = [3]int{240, 247, 244}
)

// Render walks the layout's blocks onto an A4 page stream and returns the PDF
// bytes. Output is deterministic for a fixed layout.
func Render(l Layout) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(l.Title, false)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin

	for _, blk := range l.Blocks {
		switch b := blk.(type) {
		case HeaderBand:
			pdf.SetFillColor(primaryGreen[0], primaryGreen[1], primaryGreen[2])
			pdf.Rect(0, 0, pageWidth, 40, "F")
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Helvetica", "B", 22)
			pdf.SetXY(pageMargin, 10)
			pdf.Cell(0, 10, b.Company)
			pdf.SetFont("Helvetica", "", 12)
			pdf.SetXY(pageMargin, 24)
			pdf.Cell(0, 8, b.Subtitle)
			if b.DateStamp != "" {
				pdf.SetFont("Helvetica", "", 9)
				pdf.SetXY(pageMargin, 24)
				pdf.CellFormat(contentWidth, 8, b.DateStamp, "", 0, "R", false, 0, "")
			}
			pdf.SetY(48)

		case ContactBlock:
			pdf.SetX(pageMargin)
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(mutedText[0], mutedText[1], mutedText[2])
			pdf.Cell(0, 4, b.Heading)
			pdf.Ln(5)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
			for _, line := range b.Lines {
				pdf.SetX(pageMargin)
				pdf.Cell(0, 4, line)
				pdf.Ln(5)
			}
			pdf.Ln(2)

		case SectionTitle:
			pdf.Ln(2)
			pdf.SetX(pageMargin)
			pdf.SetFont("Helvetica", "B", 11)
			pdf.SetTextColor(primaryGreen[0], primaryGreen[1], primaryGreen[2])
			pdf.Cell(0, 6, b.Text)
			pdf.Ln(8)

		case FieldRows:
			if b.Boxed {
				height := float64(len(b.Rows))*rowHeight + 6
				pdf.SetFillColor(lightBg[0], lightBg[1], lightBg[2])
				pdf.RoundedRect(pageMargin, pdf.GetY()-2, contentWidth, height, 2, "1234", "F")
				pdf.SetY(pdf.GetY() + 1)
			}
			pdf.SetFont("Helvetica", "", 9)
			for _, row := range b.Rows {
				x := pageMargin
				if b.Boxed {
					x += 5
				}
				pdf.SetX(x)
				pdf.SetFont("Helvetica", "B", 9)
				pdf.SetTextColor(mutedText[0], mutedText[1], mutedText[2])
				pdf.Cell(labelWidth, rowHeight, row.Label)
				pdf.SetFont("Helvetica", "", 9)
				pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
				pdf.Cell(0, rowHeight, row.Value)
				pdf.Ln(rowHeight)
			}
			if b.Boxed {
				pdf.Ln(4)
			} else {
				pdf.Ln(2)
			}

		case TotalRow:
			pdf.Ln(2)
			pdf.SetFillColor(primaryGreen[0], primaryGreen[1], primaryGreen[2])
			pdf.Rect(pageMargin, pdf.GetY(), contentWidth, 12, "F")
			pdf.SetTextColor(255, 255, 255)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetXY(pageMargin+5, pdf.GetY()+3)
			pdf.Cell(labelWidth, rowHeight, b.Label)
			pdf.SetX(pageMargin)
			pdf.CellFormat(contentWidth-5, rowHeight, b.Value, "", 0, "R", false, 0, "")
			pdf.Ln(12)

		case TextBlock:
			if b.Title != "" {
				pdf.SetX(pageMargin)
				pdf.SetFont("Helvetica", "B", 10)
				pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
				pdf.Cell(0, 6, b.Title)
				pdf.Ln(7)
			}
			pdf.SetX(pageMargin)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(darkText[0], darkText[1], darkText[2])
			pdf.MultiCell(contentWidth, 5, b.Text, "", "L", false)
			pdf.Ln(2)

		case Divider:
			pdf.SetDrawColor(primaryGreen[0], primaryGreen[1], primaryGreen[2])
			pdf.SetLineWidth(0.5)
			pdf.Line(pageMargin, pdf.GetY(), pageWidth-pageMargin, pdf.GetY())
			pdf.Ln(6)

		case Footer:
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(mutedText[0], mutedText[1], mutedText[2])
			for _, line := range b.Lines {
				pdf.SetX(pageMargin)
				pdf.CellFormat(contentWidth, 5, line, "", 0, "C", false, 0, "")
				pdf.Ln(5)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
