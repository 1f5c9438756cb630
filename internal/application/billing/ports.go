package billing

import (
	"context"

	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con los repos de facturación.
// Si fn retorna error se hace rollback de todo lo escrito; si no, commit.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
		senderRepo repository.SenderRepository,
	) error) error
}
