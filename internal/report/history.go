// Package report renders the monthly purchase history as a PDF.
package report

import (
	"bytes"
	"fmt"

	"github.com/dukerupert/dispensa/internal/ledger"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/jung-kurt/gofpdf"
)

// HistoryPDF renders the month's purchases, their total and the budget
// summary on A4 pages.
func HistoryPDF(summary ledger.Summary, items []model.HistoryItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; the translator maps accented Italian letters.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("Storico acquisti "+summary.Month, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Storico acquisti "+summary.Month))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Budget: EUR %s", summary.Amount.StringFixed(2)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Speso: EUR %s (%d%%)", summary.Used.StringFixed(2), summary.Percentage))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Rimanente: EUR %s", summary.Remaining.StringFixed(2)))
	pdf.Ln(12)

	drawHistoryTable(pdf, tr, items)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Totale acquisti: EUR %s", ledger.HistoryTotal(items).StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawHistoryTable(pdf *gofpdf.Fpdf, tr func(string) string, items []model.HistoryItem) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(25, 7, "Data", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 7, "Prodotto", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, tr("Quantità"), "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, "Categoria", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Prezzo", "1", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(items) == 0 {
		pdf.CellFormat(180, 7, "Nessun acquisto registrato", "1", 1, "C", false, 0, "")
		return
	}
	for _, it := range items {
		pdf.CellFormat(25, 6, it.Date.Format("02/01/2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, tr(it.Product), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, tr(it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, tr(string(it.Category)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, it.Price.StringFixed(2), "1", 1, "R", false, 0, "")
	}
}
