package dto

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
)

// MaxNotesLength longitud máxima de las notas de una factura.
const MaxNotesLength = 1000

// Límites de los montos: las columnas guardan NUMERIC(19,4) y tax_rate NUMERIC(7,4).
const MaxDecimalPlaces = 4

var (
	// MaxTaxRate porcentaje máximo (999.9999).
	MaxTaxRate = decimal.RequireFromString("999.9999")
	// MaxAmount valor máximo de precio unitario y descuento.
	MaxAmount = decimal.RequireFromString("99999999999.9999")
)

// CreateInvoiceRequest body para POST /api/v1/invoices y PUT /api/v1/invoices/:id.
// SenderID es opcional; si no resuelve, la factura queda sin emisor.
type CreateInvoiceRequest struct {
	CustomerID string                   `json:"customer_id" validate:"required,uuid_rfc4122"`
	SenderID   string                   `json:"sender_id,omitempty" validate:"omitempty,uuid_rfc4122"`
	IssueDate  *Date                    `json:"issue_date"`
	DueDate    *Date                    `json:"due_date"`
	Currency   string                   `json:"currency" validate:"required,len=3"`
	TaxRate    decimal.Decimal          `json:"tax_rate"`
	Discount   decimal.Decimal          `json:"discount"`
	Notes      string                   `json:"notes,omitempty" validate:"max=1000"`
	LineItems  []InvoiceLineItemRequest `json:"line_items" validate:"required,min=1,dive"`
}

// InvoiceLineItemRequest línea de factura en la solicitud.
type InvoiceLineItemRequest struct {
	Description string          `json:"description" validate:"required,notblank"`
	Quantity    int             `json:"quantity" validate:"min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Validate reúne todos los campos inválidos: primero los tags, luego las reglas explícitas
// (fechas, montos no negativos y moneda en la tabla ISO-4217).
func (r *CreateInvoiceRequest) Validate(v *validation.Validator) error {
	verr := v.Struct(r)

	if r.IssueDate == nil {
		verr.Add("issue_date", "es requerido")
	}
	if r.DueDate == nil {
		verr.Add("due_date", "es requerido")
	}
	if r.IssueDate != nil && r.DueDate != nil && !validation.DateRange(r.IssueDate.Time, r.DueDate.Time) {
		verr.Add("due_date", "no puede ser anterior a issue_date")
	}

	if len(r.Currency) == 3 && !v.Currency(r.Currency) {
		verr.Add("currency", "no es un código ISO-4217 válido")
	}
	checkAmount(verr, "tax_rate", r.TaxRate, MaxTaxRate)
	checkAmount(verr, "discount", r.Discount, MaxAmount)
	for i, it := range r.LineItems {
		checkAmount(verr, lineField(i, "unit_price"), it.UnitPrice, MaxAmount)
	}
	return verr.OrNil()
}

// checkAmount no negativo, como mucho MaxDecimalPlaces decimales y sin superar limit.
func checkAmount(verr *domain.ValidationError, field string, d, limit decimal.Decimal) {
	switch {
	case d.IsNegative():
		verr.Add(field, "no puede ser negativo")
	case decimalPlaces(d) > MaxDecimalPlaces:
		verr.Add(field, "admite como máximo "+strconv.Itoa(MaxDecimalPlaces)+" decimales")
	case d.GreaterThan(limit):
		verr.Add(field, "no puede superar "+limit.String())
	}
}

// decimalPlaces decimales significativos: 1.50 cuenta como 1.
func decimalPlaces(d decimal.Decimal) int32 {
	if d.IsZero() {
		return 0
	}
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return int32(len(s) - i - 1)
	}
	return 0
}

func lineField(i int, name string) string {
	return "line_items[" + strconv.Itoa(i) + "]." + name
}

// ToInvoice copia los campos editables de la solicitud a la factura (no toca número, estado ni totales).
func (r *CreateInvoiceRequest) ToInvoice(inv *entity.Invoice) {
	inv.Currency = strings.ToUpper(r.Currency)
	if r.IssueDate != nil {
		inv.IssueDate = r.IssueDate.Time
	}
	if r.DueDate != nil {
		inv.DueDate = r.DueDate.Time
	}
	inv.TaxRate = r.TaxRate
	inv.Discount = r.Discount
	inv.Notes = r.Notes
}

// InvoiceSummaryResponse factura en listados y como respuesta de creación/actualización.
type InvoiceSummaryResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	IssueDate     Date            `json:"issue_date"`
	DueDate       Date            `json:"due_date"`
}

// ToInvoiceSummaryResponse mapea la proyección de listado.
func ToInvoiceSummaryResponse(s *entity.InvoiceSummary) *InvoiceSummaryResponse {
	return &InvoiceSummaryResponse{
		ID:            s.ID,
		InvoiceNumber: s.InvoiceNumber,
		CustomerName:  s.CustomerName,
		Currency:      s.Currency,
		Subtotal:      s.Subtotal,
		TaxAmount:     s.TaxAmount,
		TotalAmount:   s.TotalAmount,
		Status:        string(s.Status),
		IssueDate:     NewDate(s.IssueDate),
		DueDate:       NewDate(s.DueDate),
	}
}

// SummaryFromInvoice arma el resumen con la factura recién guardada y el nombre del cliente.
func SummaryFromInvoice(inv *entity.Invoice, customerName string) *InvoiceSummaryResponse {
	return ToInvoiceSummaryResponse(&entity.InvoiceSummary{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  customerName,
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
	})
}

// InvoiceLineItemResponse línea de factura en respuestas.
type InvoiceLineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ToLineItemResponses mapea las líneas conservando el orden.
func ToLineItemResponses(items []*entity.InvoiceLineItem) []InvoiceLineItemResponse {
	return lo.Map(items, func(it *entity.InvoiceLineItem, _ int) InvoiceLineItemResponse {
		return InvoiceLineItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		}
	})
}

// InvoiceDetailResponse factura completa para GET /api/v1/invoices/:id.
type InvoiceDetailResponse struct {
	ID            string                    `json:"id"`
	InvoiceNumber string                    `json:"invoice_number"`
	Status        string                    `json:"status"`
	IssueDate     Date                      `json:"issue_date"`
	DueDate       Date                      `json:"due_date"`
	Currency      string                    `json:"currency"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	TaxRate       decimal.Decimal           `json:"tax_rate"`
	TaxAmount     decimal.Decimal           `json:"tax_amount"`
	Discount      decimal.Decimal           `json:"discount"`
	TotalAmount   decimal.Decimal           `json:"total_amount"`
	Notes         string                    `json:"notes,omitempty"`
	Customer      *CustomerResponse         `json:"customer"`
	Sender        *SenderResponse           `json:"sender"`
	LineItems     []InvoiceLineItemResponse `json:"line_items"`
}

// ToInvoiceDetailResponse arma el detalle; sender puede ser nil.
func ToInvoiceDetailResponse(inv *entity.Invoice, customer *entity.Customer, sender *entity.Sender, items []*entity.InvoiceLineItem) *InvoiceDetailResponse {
	out := &InvoiceDetailResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        string(inv.Status),
		IssueDate:     NewDate(inv.IssueDate),
		DueDate:       NewDate(inv.DueDate),
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal,
		TaxRate:       inv.TaxRate,
		TaxAmount:     inv.TaxAmount,
		Discount:      inv.Discount,
		TotalAmount:   inv.TotalAmount,
		Notes:         inv.Notes,
		LineItems:     ToLineItemResponses(items),
	}
	if customer != nil {
		out.Customer = ToCustomerResponse(customer)
	}
	if sender != nil {
		out.Sender = ToSenderResponse(sender)
	}
	return out
}
