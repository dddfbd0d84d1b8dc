package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFont     = "Helvetica"
	pdfLineH    = 6.0
	pdfCreator  = "vowelstat"
	pageNoAlias = "{nb}"
)

// ExportPDF сохраняет отчет в PDF по пути path.
func ExportPDF(r *Report, path string) error {
	return writeAtomic(path, func(w io.Writer) error {
		return renderPDF(r, w)
	})
}

// renderPDF раскладывает разделы отчета по страницам A4.
// Каждая строка отчета выводится отдельной ячейкой.
func renderPDF(r *Report, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Title, true)
	pdf.SetCreator(pdfCreator, true)
	pdf.AliasNbPages(pageNoAlias)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/%s", pdf.PageNo(), pageNoAlias), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(r.Title), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, sec := range r.Sections {
		pdf.SetFont(pdfFont, "B", 13)
		pdf.CellFormat(0, 8, tr(sec.Title), "B", 1, "L", false, 0, "")
		pdf.Ln(1)

		pdf.SetFont(pdfFont, "", 11)
		if len(sec.Rows) == 0 {
			pdf.MultiCell(0, pdfLineH, noneValue, "", "L", false)
		}
		for _, row := range sec.Rows {
			// Длинные значения переносятся
			pdf.MultiCell(0, pdfLineH, tr(row.String()), "", "L", false)
		}
		pdf.Ln(4)
	}

	return pdf.Output(w)
}
