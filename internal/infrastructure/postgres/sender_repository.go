package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
)

var _ repository.SenderRepository = (*SenderRepo)(nil)

// SenderRepo implementación de SenderRepository (usable con pool o tx).
// senders.email tiene índice único sobre lower(email).
type SenderRepo struct {
	q Querier
}

// NewSenderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSenderRepository(q Querier) *SenderRepo {
	return &SenderRepo{q: q}
}

// Create persiste un nuevo emisor. Email repetido -> domain.ErrDuplicate.
func (r *SenderRepo) Create(ctx context.Context, s *entity.Sender) error {
	query := `
		INSERT INTO senders (id, name, email, phone_number, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Email, s.PhoneNumber, s.Address, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return mapWriteError("insert sender", err)
	}
	return nil
}

// GetByID obtiene un emisor por ID.
func (r *SenderRepo) GetByID(ctx context.Context, id string) (*entity.Sender, error) {
	query := `
		SELECT id, name, email, phone_number, address, created_at, updated_at
		FROM senders WHERE id = $1`
	var s entity.Sender
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.Address, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sender: %w", err)
	}
	return &s, nil
}

// ExistsByEmail indica si el email ya está registrado (sin distinguir mayúsculas).
func (r *SenderRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM senders WHERE lower(email) = lower($1))`, email).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists sender email: %w", err)
	}
	return ok, nil
}

// List lista emisores por nombre con paginación.
func (r *SenderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sender, error) {
	query := `
		SELECT id, name, email, phone_number, address, created_at, updated_at
		FROM senders ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list senders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sender
	for rows.Next() {
		var s entity.Sender
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sender: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count total de emisores.
func (r *SenderRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM senders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count senders: %w", err)
	}
	return n, nil
}

// Update sobrescribe los datos del emisor.
func (r *SenderRepo) Update(ctx context.Context, s *entity.Sender) error {
	query := `
		UPDATE senders
		SET name = $2, email = $3, phone_number = $4, address = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Email, s.PhoneNumber, s.Address, s.UpdatedAt)
	if err != nil {
		return mapWriteError("update sender", err)
	}
	return nil
}

// Exists indica si hay un emisor con ese ID.
func (r *SenderRepo) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM senders WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists sender: %w", err)
	}
	return ok, nil
}

// Delete elimina el emisor; invoices.sender_id queda en NULL (ON DELETE SET NULL).
func (r *SenderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM senders WHERE id = $1`, id); err != nil {
		return mapWriteError("delete sender", err)
	}
	return nil
}
