// Package report renders and stores the PDF valuation report (laudo).
package report

import (
	"bytes"
	"fmt"
	"time"

	"consultoc-api/internal/money"

	"github.com/go-pdf/fpdf"
)

// Data is everything printed on a report.
type Data struct {
	ValuationID string
	Address     string
	Value       float64
	Currency    string
	GeneratedAt time.Time
}

var saoPaulo = mustLocation("America/Sao_Paulo")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Render lays out the fixed report template and returns the PDF bytes.
func Render(d Data) ([]byte, error) {
	cur := d.Currency
	if cur == "" {
		cur = "brl"
	}
	generated := d.GeneratedAt.In(saoPaulo).Format("02/01/2006 15:04")

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Laudo de Avaliação "+d.ValuationID, true)
	pdf.SetCreator("Consultoc", true)
	pdf.SetCreationDate(d.GeneratedAt)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr("Gerado em "+generated+" - Consultoc"), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Laudo de Avaliação Imobiliária"), "B", 1, "C", false, 0, "")
	pdf.Ln(8)

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 8, tr(value), "", "L", false)
	}
	field("Avaliação:", d.ValuationID)
	field("Endereço:", d.Address)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Valor estimado de mercado"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, tr(money.Format(d.Value, cur)), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr("Estimativa calculada a partir da área útil, número de quartos e padrão de acabamento "+
		"informados. Não substitui vistoria presencial."), "", "J", false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return buf.Bytes(), nil
}
