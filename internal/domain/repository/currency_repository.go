package repository

import (
	"context"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
)

// CurrencyRepository lectura de la tabla currencies.
type CurrencyRepository interface {
	List(ctx context.Context) ([]*entity.Currency, error)
	GetByCode(ctx context.Context, code string) (*entity.Currency, error)
}
