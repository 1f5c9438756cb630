package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
)

// InvoiceService lo que el handler necesita del caso de uso de facturas.
type InvoiceService interface {
	Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceSummaryResponse, error)
	Update(ctx context.Context, id string, in dto.CreateInvoiceRequest) (*dto.InvoiceSummaryResponse, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*dto.InvoiceDetailResponse, error)
	List(ctx context.Context, page dto.PageRequest) (*dto.PageResponse[*dto.InvoiceSummaryResponse], error)
	GetLineItems(ctx context.Context, id string) ([]dto.InvoiceLineItemResponse, error)
}

// InvoiceHandler maneja las peticiones HTTP de facturas.
type InvoiceHandler struct {
	uc InvoiceService
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Create crea una factura con sus líneas y totales calculados.
// @Summary Crear factura
// @Tags invoices
// @Accept json
// @Produce json
// @Param body body dto.CreateInvoiceRequest true "Factura"
// @Success 201 {object} dto.InvoiceSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista facturas paginadas.
// @Summary Listar facturas
// @Tags invoices
// @Produce json
// @Param page query int false "Página (desde 0)"
// @Param size query int false "Tamaño (por defecto 10)"
// @Success 200 {object} dto.PageResponse[dto.InvoiceSummaryResponse]
// @Router /api/v1/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
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

// GetByID detalle de una factura.
// @Summary Obtener factura
// @Tags invoices
// @Produce json
// @Param id path string true "ID de la factura"
// @Success 200 {object} dto.InvoiceDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
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

// Update reemplaza la factura y todas sus líneas.
// @Summary Actualizar factura
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "ID de la factura"
// @Param body body dto.CreateInvoiceRequest true "Factura"
// @Success 200 {object} dto.InvoiceSummaryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete elimina la factura y sus líneas.
// @Summary Eliminar factura
// @Tags invoices
// @Param id path string true "ID de la factura"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetLineItems líneas de la factura en orden.
// @Summary Líneas de una factura
// @Tags invoices
// @Produce json
// @Param id path string true "ID de la factura"
// @Success 200 {array} dto.InvoiceLineItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/invoices/{id}/line-items [get]
func (h *InvoiceHandler) GetLineItems(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	out, err := h.uc.GetLineItems(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
