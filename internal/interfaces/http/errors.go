package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/pkg/logger"
)

// apiError error de la capa HTTP con status y código propios (cuerpo o parámetros mal formados).
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func invalidBody() error {
	return &apiError{Status: fiber.StatusBadRequest, Code: "INVALID_BODY", Message: "cuerpo JSON inválido"}
}

func typeMismatch(param, value, expected string) error {
	return &apiError{
		Status:  fiber.StatusBadRequest,
		Code:    "TYPE_MISMATCH",
		Message: "el parámetro '" + param + "' con valor '" + value + "' debe ser " + expected,
	}
}

// ErrorHandler traduce los errores de dominio a respuestas HTTP.
// Los errores no clasificados responden 500 con un mensaje genérico; la causa solo va al log.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	log = log.Component("http")
	return func(c *fiber.Ctx, err error) error {
		status, body := classify(err)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error inesperado")
		}
		return c.Status(status).JSON(body)
	}
}

func classify(err error) (int, dto.ErrorResponse) {
	var (
		apiErr   *apiError
		valErr   *domain.ValidationError
		nfErr    *domain.NotFoundError
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Status, dto.ErrorResponse{Code: apiErr.Code, Message: apiErr.Message}
	case errors.As(err, &valErr):
		fields := make([]string, 0, len(valErr.Fields))
		for _, f := range valErr.Fields {
			fields = append(fields, f.String())
		}
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: domain.ErrValidation.Error(),
			Errors:  fields,
		}
	case errors.As(err, &nfErr):
		return fiber.StatusNotFound, dto.ErrorResponse{
			Code:     "NOT_FOUND",
			Message:  nfErr.Error(),
			Resource: nfErr.Resource,
			Field:    nfErr.Field,
			Value:    nfErr.Value,
		}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrUnsupportedVersion):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "UNSUPPORTED_VERSION", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.ErrorResponse{Code: statusCode(fiberErr.Code), Message: fiberErr.Message}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: "ocurrió un error inesperado",
		}
	}
}

// statusCode "Method Not Allowed" -> "METHOD_NOT_ALLOWED".
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(status), " ", "_"))
}
