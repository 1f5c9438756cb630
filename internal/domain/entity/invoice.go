package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de la factura.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"     // Recién creada; totales calculados
	InvoiceStatusSent      InvoiceStatus = "SENT"      // Enviada al cliente
	InvoiceStatusPaid      InvoiceStatus = "PAID"      // Pagada
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"   // Vencida sin pago
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED" // Anulada
)

// Invoice representa la cabecera de una factura.
// Subtotal, TaxAmount y TotalAmount son siempre calculados, nunca enviados por el cliente.
type Invoice struct {
	ID            string
	InvoiceNumber string // asignado una sola vez al crear
	Currency      string // ISO-4217
	Status        InvoiceStatus
	CustomerID    string
	SenderID      string // vacío = sin emisor
	IssueDate     time.Time
	DueDate       time.Time
	TaxRate       decimal.Decimal // porcentaje, >= 0
	Discount      decimal.Decimal // monto, >= 0
	Notes         string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasSender indica si la factura tiene emisor asociado.
func (i *Invoice) HasSender() bool { return i.SenderID != "" }

// InvoiceSummary proyección para listados (factura + nombre del cliente).
type InvoiceSummary struct {
	ID            string
	InvoiceNumber string
	CustomerName  string
	Currency      string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Status        InvoiceStatus
	IssueDate     time.Time
	DueDate       time.Time
}
