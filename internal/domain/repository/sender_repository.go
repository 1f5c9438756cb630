package repository

import (
	"context"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
)

// SenderRepository define el puerto de persistencia para Sender.
type SenderRepository interface {
	Create(ctx context.Context, sender *entity.Sender) error
	GetByID(ctx context.Context, id string) (*entity.Sender, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Sender, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, sender *entity.Sender) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
