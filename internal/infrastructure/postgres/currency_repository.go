package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
)

var _ repository.CurrencyRepository = (*CurrencyRepo)(nil)

// CurrencyRepo lectura de la tabla currencies (sembrada por migración).
type CurrencyRepo struct {
	q Querier
}

// NewCurrencyRepository construye el adaptador.
func NewCurrencyRepository(q Querier) *CurrencyRepo {
	return &CurrencyRepo{q: q}
}

// List todas las monedas ordenadas por código.
func (r *CurrencyRepo) List(ctx context.Context) ([]*entity.Currency, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name FROM currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Currency
	for rows.Next() {
		var c entity.Currency
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// GetByCode obtiene una moneda por código ISO-4217.
func (r *CurrencyRepo) GetByCode(ctx context.Context, code string) (*entity.Currency, error) {
	var c entity.Currency
	err := r.q.QueryRow(ctx, `SELECT code, name FROM currencies WHERE code = $1`, code).Scan(&c.Code, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return &c, nil
}
