package export

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
)

// pdfStyle agrupa os blocos visuais comuns dos relatórios em PDF.
type pdfStyle struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPDFStyle(pdf *gofpdf.Fpdf, tr func(string) string) *pdfStyle {
	return &pdfStyle{pdf: pdf, tr: tr}
}

func (s *pdfStyle) header(title, subtitle string) {
	pdf := s.pdf
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	pdf.CellFormat(0, 12, s.tr(fmt.Sprintf("  %s", title)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, s.tr(fmt.Sprintf("  %s", subtitle)), "", 1, "L", true, 0, "")
	pdf.Ln(10)
}

func (s *pdfStyle) sectionTitle(title string) {
	pdf := s.pdf
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
	pdf.Cell(0, 8, s.tr(title))
	pdf.Ln(7)

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
}

// drawSection ignora seções sem conteúdo.
func (s *pdfStyle) drawSection(title, content string) {
	if content == "" {
		return
	}
	s.sectionTitle(title)
	s.pdf.SetFont("Arial", "", 10)
	s.pdf.MultiCell(190, 5, s.tr(content), "", "L", false)
	s.pdf.Ln(8)
}

func (s *pdfStyle) tableHeader(widths []float64, columns ...string) {
	s.pdf.SetFont("Arial", "B", 10)
	for i, col := range columns {
		ln := 0
		if i == len(columns)-1 {
			ln = 1
		}
		s.pdf.CellFormat(widths[i], 7, s.tr(col), "B", ln, "L", false, 0, "")
	}
}

func (s *pdfStyle) tableRow(widths []float64, cells ...string) {
	s.pdf.SetFont("Arial", "", 10)
	for i, cell := range cells {
		ln := 0
		if i == len(cells)-1 {
			ln = 1
		}
		s.pdf.CellFormat(widths[i], 6, s.tr(cell), "", ln, "L", false, 0, "")
	}
}

func (s *pdfStyle) footer(now time.Time, page int) {
	pdf := s.pdf
	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by cloudcost | %s", now.Format("2006-01-02"))
	pdf.CellFormat(0, 10, s.tr(footerText), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, s.tr(fmt.Sprintf("Page %d", page)), "", 0, "R", false, 0, "")
}
