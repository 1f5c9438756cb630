package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
	"github.com/jhoicas/invoice-builder-api/pkg/logger"
)

// CustomerUseCase casos de uso para clientes (receptores de facturas).
type CustomerUseCase struct {
	repo      repository.CustomerRepository
	validator *validation.Validator
	log       *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, validator *validation.Validator, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, validator: validator, log: log.Component("customers")}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := in.Validate(uc.validator); err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Country:     in.Country,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", customer.ID).Msg("cliente creado")
	return dto.ToCustomerResponse(customer), nil
}

// GetByID devuelve el cliente o NotFound.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("Customer", "id", id)
	}
	return dto.ToCustomerResponse(c), nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PageResponse[*dto.CustomerResponse], error) {
	page.Normalize()
	list, err := uc.repo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ToCustomerResponse(c))
	}
	return dto.NewPage(out, page, total), nil
}

// Update sobrescribe los datos del cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := in.Validate(uc.validator); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("Customer", "id", id)
	}
	c.Name = in.Name
	c.Email = in.Email
	c.PhoneNumber = in.PhoneNumber
	c.Address = in.Address
	c.Country = in.Country
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.ToCustomerResponse(c), nil
}

// Delete elimina el cliente; sus facturas se eliminan en cascada.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	exists, err := uc.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("Customer", "id", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("customer_id", id).Msg("cliente eliminado")
	return nil
}
