package dto

import (
	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
)

// CreateCustomerRequest body para POST/PUT /api/v1/customers.
type CreateCustomerRequest struct {
	Name        string `json:"name" validate:"required,notblank"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Validate aplica las restricciones del cuerpo.
func (r *CreateCustomerRequest) Validate(v *validation.Validator) error {
	return v.Struct(r).OrNil()
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	Country     string `json:"country,omitempty"`
}

// ToCustomerResponse mapea la entidad.
func ToCustomerResponse(c *entity.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Country:     c.Country,
	}
}
