package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
)

// CustomerService lo que el handler necesita del caso de uso de clientes.
type CustomerService interface {
	Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.PageResponse[*dto.CustomerResponse], error)
	Update(ctx context.Context, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc CustomerService
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc CustomerService) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create crea un cliente.
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista clientes paginados.
// GET /api/v1/customers?page=&size=
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID obtiene un cliente.
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update sobrescribe un cliente.
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var in dto.CreateCustomerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete elimina un cliente y sus facturas.
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
