package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invoice-builder-api/internal/domain/invoicing"
)

var _ invoicing.NumberGenerator = (*InvoiceNumberSequence)(nil)

// InvoiceNumberSequence numera facturas con la secuencia invoice_number_seq de PostgreSQL:
// única entre instancias y reinicios. nextval no es transaccional, un rollback deja huecos.
type InvoiceNumberSequence struct {
	q   Querier
	now func() time.Time
}

// NewInvoiceNumberSequence construye el generador sobre el pool.
func NewInvoiceNumberSequence(q Querier) *InvoiceNumberSequence {
	return &InvoiceNumberSequence{q: q, now: time.Now}
}

// Next toma el siguiente valor de la secuencia y lo formatea como INV-YYYYMMDD-NNNN.
func (s *InvoiceNumberSequence) Next(ctx context.Context) (string, error) {
	var seq int64
	if err := s.q.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&seq); err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return invoicing.FormatNumber(s.now(), seq), nil
}
