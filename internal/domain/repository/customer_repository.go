package repository

import (
	"context"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Exists(ctx context.Context, id string) (bool, error)
	// Delete elimina el cliente y, en cascada, sus facturas.
	Delete(ctx context.Context, id string) error
}
