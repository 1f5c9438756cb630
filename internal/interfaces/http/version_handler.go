package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
)

// VersionHandler responde GET /api/v1/{recurso}/version.
type VersionHandler struct {
	cfg VersionConfig
}

// NewVersionHandler construye el handler.
func NewVersionHandler(cfg VersionConfig) *VersionHandler {
	return &VersionHandler{cfg: cfg}
}

// Info devuelve la versión resuelta para la petición. resource solo cambia la descripción.
func (h *VersionHandler) Info(resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := GetAPIVersion(c)
		if v == "" {
			v = h.cfg.Default
		}
		return c.JSON(dto.VersionInfo{
			CurrentVersion:    v,
			SupportedVersions: h.cfg.Supported,
			IsDefault:         v == h.cfg.Default,
			Description:       "API de " + resource + " " + v,
		})
	}
}
