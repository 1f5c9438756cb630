package repository

import (
	"context"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Los getters devuelven (nil, nil) cuando el registro no existe.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update sobrescribe todos los campos editables y los totales de la factura.
	Update(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Exists(ctx context.Context, id string) (bool, error)
	// Delete elimina la factura; las líneas caen en cascada.
	Delete(ctx context.Context, id string) error
	// List devuelve la proyección con el nombre del cliente, ordenada por número de factura.
	List(ctx context.Context, limit, offset int) ([]*entity.InvoiceSummary, error)
	Count(ctx context.Context) (int, error)
	GetSummary(ctx context.Context, id string) (*entity.InvoiceSummary, error)

	CreateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error
	DeleteLineItems(ctx context.Context, invoiceID string) error
	// GetLineItems devuelve las líneas en el orden en que se guardaron.
	GetLineItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error)
}
