// Package receipt renders reservation receipts as PDF documents.
package receipt

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/iliyamo/karting-reservation/internal/model"
	"github.com/iliyamo/karting-reservation/internal/service"
)

var columns = []struct {
	title string
	width float64
}{
	{"Cliente", 40},
	{"Tarifa Base", 22},
	{"Descuento Grupo", 26},
	{"Descuento Promoción", 30},
	{"Monto Final", 24},
	{"IVA", 20},
	{"Total con IVA", 28},
}

// Renderer draws the receipt with the core Helvetica font.  Text is
// translated to cp1252 so accented Spanish labels print correctly.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// Render returns the PDF bytes of r's receipt: a header block with the
// reservation data and tax-inclusive total, then one table row per
// customer.  Each row shows the reservation's final price.
func (Renderer) Render(r model.Reservation) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(fmt.Sprintf("Comprobante de Reserva %d", r.ID)), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Comprobante de Reserva"))
	pdf.Ln(12)

	tax := roundTax(r.FinalPrice)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Código de Reserva: %d", r.ID),
		"Fecha: " + dateText(r.Date),
		"Hora: " + timeText(r.StartTime),
		fmt.Sprintf("Número de Vueltas: %d", r.Laps),
		fmt.Sprintf("Precio Base: $%d", r.BasePrice),
		fmt.Sprintf("IVA (19%%): $%d", tax),
		fmt.Sprintf("Precio Final con IVA: $%d", service.WithTax(r.FinalPrice)),
	} {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, tr(col.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, c := range r.Customers {
		cells := []string{
			c.Name,
			fmt.Sprintf("$%d", r.BasePrice),
			fmt.Sprintf("%d%%", r.GroupDiscount),
			fmt.Sprintf("%d%%", r.VisitDiscount+r.BirthdayDiscount),
			fmt.Sprintf("$%d", r.FinalPrice),
			fmt.Sprintf("$%d", tax),
			fmt.Sprintf("$%d", service.WithTax(r.FinalPrice)),
		}
		for i, col := range columns {
			pdf.CellFormat(col.width, 7, tr(cells[i]), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func roundTax(price int) int {
	return int(math.Round(float64(price) * service.TaxRate))
}

func dateText(d *model.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func timeText(t *model.TimeOfDay) string {
	if t == nil {
		return "-"
	}
	return t.String()[:5]
}
