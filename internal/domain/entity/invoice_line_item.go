package entity

import "github.com/shopspring/decimal"

// InvoiceLineItem una línea facturable; pertenece exclusivamente a una factura.
type InvoiceLineItem struct {
	ID          string
	InvoiceID   string
	Position    int // orden de inserción dentro de la factura
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal // UnitPrice × Quantity
}
