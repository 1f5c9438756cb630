package billing

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
)

// CurrencyUseCase consulta de la tabla currencies.
type CurrencyUseCase struct {
	repo repository.CurrencyRepository
}

// NewCurrencyUseCase construye el caso de uso.
func NewCurrencyUseCase(repo repository.CurrencyRepository) *CurrencyUseCase {
	return &CurrencyUseCase{repo: repo}
}

// List todas las monedas ordenadas por código.
func (uc *CurrencyUseCase) List(ctx context.Context) ([]*dto.CurrencyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(c *entity.Currency, _ int) *dto.CurrencyResponse {
		return dto.ToCurrencyResponse(c)
	}), nil
}

// GetByCode devuelve la moneda o NotFound.
func (uc *CurrencyUseCase) GetByCode(ctx context.Context, code string) (*dto.CurrencyResponse, error) {
	code = strings.ToUpper(code)
	c, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewNotFound("Currency", "code", code)
	}
	return dto.ToCurrencyResponse(c), nil
}
