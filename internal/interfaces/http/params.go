package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
)

// uuidParam lee un parámetro de ruta que debe ser UUID.
func uuidParam(c *fiber.Ctx, name string) (string, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", typeMismatch(name, raw, "un UUID")
	}
	return id.String(), nil
}

// pageParams lee ?page=&size=; valores no numéricos son TYPE_MISMATCH. La normalización la hace el caso de uso.
func pageParams(c *fiber.Ctx) (dto.PageRequest, error) {
	var p dto.PageRequest
	for _, q := range []struct {
		name string
		dst  *int
	}{{"page", &p.Page}, {"size", &p.Size}} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, typeMismatch(q.name, raw, "un entero")
		}
		*q.dst = n
	}
	return p, nil
}

// parseBody decodifica el JSON del cuerpo.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return invalidBody()
	}
	return nil
}
