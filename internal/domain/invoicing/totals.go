package invoicing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/money"
)

// Totals montos calculados de una factura.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// CalculateTotals agrega las líneas y aplica impuesto y descuento:
//
//	subtotal  = Σ lineTotal
//	taxAmount = round_half_up(subtotal × taxRate / 100) a scale decimales
//	total     = subtotal + taxAmount − discount
//
// El total puede quedar negativo si el descuento supera subtotal + impuesto; no se recorta a cero.
func CalculateTotals(items []*entity.InvoiceLineItem, taxRate, discount decimal.Decimal, scale int32) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	tax := money.PercentOf(subtotal, taxRate, scale)
	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax).Sub(discount),
	}
}

// Apply copia los totales a la factura.
func (t Totals) Apply(inv *entity.Invoice) {
	inv.Subtotal = t.Subtotal
	inv.TaxAmount = t.TaxAmount
	inv.TotalAmount = t.TotalAmount
}
