package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
)

// SenderService lo que el handler necesita del caso de uso de emisores.
type SenderService interface {
	Create(ctx context.Context, in dto.CreateSenderRequest) (*dto.SenderResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SenderResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.PageResponse[*dto.SenderResponse], error)
	Update(ctx context.Context, id string, in dto.CreateSenderRequest) (*dto.SenderResponse, error)
	Delete(ctx context.Context, id string) error
}

// SenderHandler maneja las peticiones HTTP de emisores.
type SenderHandler struct {
	uc SenderService
}

// NewSenderHandler construye el handler.
func NewSenderHandler(uc SenderService) *SenderHandler {
	return &SenderHandler{uc: uc}
}

// Create crea un emisor; 409 si el email ya existe.
// POST /api/v1/senders
func (h *SenderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSenderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista emisores paginados.
// GET /api/v1/senders?page=&size=
func (h *SenderHandler) List(c *fiber.Ctx) error {
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

// GetByID obtiene un emisor.
// GET /api/v1/senders/:id
func (h *SenderHandler) GetByID(c *fiber.Ctx) error {
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

// Update sobrescribe un emisor.
// PUT /api/v1/senders/:id
func (h *SenderHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var in dto.CreateSenderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete elimina un emisor; sus facturas quedan sin emisor.
// DELETE /api/v1/senders/:id
func (h *SenderHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
