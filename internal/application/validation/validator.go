// Package validation reúne las validaciones de solicitudes: restricciones por tags
// (go-playground/validator) y reglas explícitas que no requieren reflexión.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/currency"
)

// Validator envuelve validator.Validate y la tabla de monedas inyectada.
type Validator struct {
	v       *validator.Validate
	catalog *currency.Catalog
}

// New construye el validador. Los campos se reportan con su nombre JSON.
func New(catalog *currency.Catalog) *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	// "required" acepta "   "; notblank exige algo más que espacios.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{v: v, catalog: catalog}
}

// Struct valida los tags de s y devuelve los campos inválidos (nunca nil).
func (x *Validator) Struct(s any) *domain.ValidationError {
	out := &domain.ValidationError{}
	err := x.v.Struct(s)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("body", err.Error())
		return out
	}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// Currency indica si el código está en la tabla ISO-4217 inyectada.
func (x *Validator) Currency(code string) bool {
	return x.catalog.IsValid(code)
}

// DateRange la fecha de vencimiento no puede ser anterior a la de emisión.
func DateRange(issue, due time.Time) bool {
	return !due.Before(issue)
}

// fieldPath quita el nombre del struct raíz: "CreateInvoiceRequest.line_items[0].quantity" -> "line_items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "notblank":
		return "no puede estar en blanco"
	case "email":
		return "debe ser un email válido"
	case "uuid", "uuid4", "uuid_rfc4122":
		return "debe ser un UUID válido"
	case "len":
		return fmt.Sprintf("debe tener %s caracteres", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array {
			return fmt.Sprintf("debe tener al menos %s elemento(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("no puede superar %s caracteres", fe.Param())
		}
		return fmt.Sprintf("no puede superar %s", fe.Param())
	default:
		return fmt.Sprintf("no cumple la regla %s", fe.Tag())
	}
}
