package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, invoice_number, currency, status, customer_id, sender_id, issue_date, due_date,
	tax_rate, discount, notes, subtotal, tax_amount, total_amount, created_at, updated_at`

const summaryQuery = `
	SELECT i.id, i.invoice_number, c.name, i.currency, i.subtotal, i.tax_amount, i.total_amount,
	       i.status, i.issue_date, i.due_date
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.Currency, inv.Status, inv.CustomerID, nullIfEmpty(inv.SenderID),
		inv.IssueDate, inv.DueDate, inv.TaxRate, inv.Discount, inv.Notes,
		inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert invoice", err)
	}
	return nil
}

// Update sobrescribe los campos editables y los totales. El número de factura no cambia.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET currency     = $2,
		    status       = $3,
		    customer_id  = $4,
		    sender_id    = $5,
		    issue_date   = $6,
		    due_date     = $7,
		    tax_rate     = $8,
		    discount     = $9,
		    notes        = $10,
		    subtotal     = $11,
		    tax_amount   = $12,
		    total_amount = $13,
		    updated_at   = $14
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Currency, inv.Status, inv.CustomerID, nullIfEmpty(inv.SenderID),
		inv.IssueDate, inv.DueDate, inv.TaxRate, inv.Discount, inv.Notes,
		inv.Subtotal, inv.TaxAmount, inv.TotalAmount, inv.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update invoice", err)
	}
	return nil
}

// GetByID obtiene la cabecera por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	var senderID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Currency, &inv.Status, &inv.CustomerID, &senderID,
		&inv.IssueDate, &inv.DueDate, &inv.TaxRate, &inv.Discount, &inv.Notes,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if senderID != nil {
		inv.SenderID = *senderID
	}
	return &inv, nil
}

// Exists indica si hay una factura con ese ID.
func (r *InvoiceRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists invoice: %w", err)
	}
	return ok, nil
}

// Delete elimina la factura; invoice_line_items cae por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// List página de facturas con el nombre del cliente.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.InvoiceSummary, error) {
	query := summaryQuery + ` ORDER BY i.invoice_number LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Count total de facturas.
func (r *InvoiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// GetSummary proyección de una sola factura.
func (r *InvoiceRepo) GetSummary(ctx context.Context, id string) (*entity.InvoiceSummary, error) {
	s, err := scanSummary(r.q.QueryRow(ctx, summaryQuery+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

// CreateLineItem persiste una línea; position conserva el orden de la solicitud.
func (r *InvoiceRepo) CreateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error {
	query := `
		INSERT INTO invoice_line_items (id, invoice_id, position, description, quantity, unit_price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InvoiceID, item.Position, item.Description, item.Quantity, item.UnitPrice, item.LineTotal,
	)
	if err != nil {
		return mapWriteError("insert invoice line item", err)
	}
	return nil
}

// DeleteLineItems elimina todas las líneas de la factura.
func (r *InvoiceRepo) DeleteLineItems(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice line items: %w", err)
	}
	return nil
}

// GetLineItems líneas de la factura en orden de inserción.
func (r *InvoiceRepo) GetLineItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error) {
	query := `
		SELECT id, invoice_id, position, description, quantity, unit_price, line_total
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice line items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLineItem
	for rows.Next() {
		var it entity.InvoiceLineItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func scanSummary(row pgx.Row) (*entity.InvoiceSummary, error) {
	var s entity.InvoiceSummary
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.CustomerName, &s.Currency, &s.Subtotal, &s.TaxAmount, &s.TotalAmount,
		&s.Status, &s.IssueDate, &s.DueDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan invoice summary: %w", err)
	}
	return &s, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
