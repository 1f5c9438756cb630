package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
)

// CurrencyService consulta de monedas.
type CurrencyService interface {
	List(ctx context.Context) ([]*dto.CurrencyResponse, error)
	GetByCode(ctx context.Context, code string) (*dto.CurrencyResponse, error)
}

// CurrencyHandler maneja GET /api/v1/currencies.
type CurrencyHandler struct {
	uc CurrencyService
}

// NewCurrencyHandler construye el handler.
func NewCurrencyHandler(uc CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{uc: uc}
}

// List todas las monedas.
// GET /api/v1/currencies
func (h *CurrencyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByCode una moneda por código ISO-4217.
// GET /api/v1/currencies/:code
func (h *CurrencyHandler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
