package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrValidation         = errors.New("la validación de la solicitud falló")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnsupportedVersion = errors.New("versión de API no soportada")
)

// NotFoundError identifica el recurso, campo y valor que no se pudo resolver.
// errors.Is(err, ErrNotFound) es verdadero.
type NotFoundError struct {
	Resource string
	Field    string
	Value    string
}

// NewNotFound construye un NotFoundError.
func NewNotFound(resource, field, value string) *NotFoundError {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s con %s '%s' no existe", e.Resource, e.Field, e.Value)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// FieldError un campo del cuerpo que no cumple sus restricciones.
type FieldError struct {
	Field   string
	Message string
}

func (f FieldError) String() string { return f.Field + ": " + f.Message }

// ValidationError agrupa todos los campos inválidos de una solicitud.
// errors.Is(err, ErrValidation) es verdadero.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Add registra un campo inválido.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil devuelve nil si no hay campos inválidos (evita el nil tipado en interfaces error).
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}
