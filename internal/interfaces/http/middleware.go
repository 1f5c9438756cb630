package http

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/pkg/logger"
)

// Headers y locals del versionado.
const (
	HeaderAPIVersion         = "API-Version"
	HeaderSupportedVersions  = "API-Supported-Versions"
	HeaderXSupportedVersions = "X-Supported-Versions"
	QueryVersion             = "version"
	LocalAPIVersion          = "api_version"
)

var pathVersion = regexp.MustCompile(`^/api/(v\d+)(?:/|$)`)

// VersionConfig versiones aceptadas y la usada cuando la petición no indica ninguna.
type VersionConfig struct {
	Default   string
	Supported []string
}

// IsSupported indica si v está en la lista.
func (vc VersionConfig) IsSupported(v string) bool {
	return slices.Contains(vc.Supported, v)
}

// Resolve elige la versión: header API-Version, luego ?version=, luego /api/vN (si está soportada), luego la por defecto.
func (vc VersionConfig) Resolve(header, query, path string) string {
	if v := strings.TrimSpace(header); v != "" {
		return v
	}
	if v := strings.TrimSpace(query); v != "" {
		return v
	}
	if m := pathVersion.FindStringSubmatch(path); m != nil && vc.IsSupported(m[1]) {
		return m[1]
	}
	return vc.Default
}

// APIVersion resuelve la versión de la petición. Si no está soportada responde 404 con X-Supported-Versions;
// si lo está, la deja en c.Locals y la anuncia en los headers de respuesta.
func APIVersion(vc VersionConfig) fiber.Handler {
	supported := strings.Join(vc.Supported, ", ")
	return func(c *fiber.Ctx) error {
		v := vc.Resolve(c.Get(HeaderAPIVersion), c.Query(QueryVersion), c.Path())
		if !vc.IsSupported(v) {
			c.Set(HeaderXSupportedVersions, supported)
			return fmt.Errorf("%w: '%s'", domain.ErrUnsupportedVersion, v)
		}
		c.Locals(LocalAPIVersion, v)
		c.Set(HeaderAPIVersion, v)
		c.Set(HeaderSupportedVersions, supported)
		return c.Next()
	}
}

// GetAPIVersion devuelve la versión resuelta (después del middleware APIVersion).
func GetAPIVersion(c *fiber.Ctx) string {
	v := c.Locals(LocalAPIVersion)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// RequestLogger registra método, ruta, status y latencia de cada petición.
// Invoca el ErrorHandler de la app para que el status registrado sea el definitivo.
func RequestLogger(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		evt := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = log.Error()
		case status >= fiber.StatusBadRequest:
			evt = log.Warn()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("api_version", GetAPIVersion(c)).
			Msg("petición HTTP")
		return nil
	}
}
