package dto

import (
	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
)

// CreateSenderRequest body para POST/PUT /api/v1/senders. El email debe ser único entre emisores.
type CreateSenderRequest struct {
	Name        string `json:"name" validate:"required,notblank"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Validate aplica las restricciones del cuerpo.
func (r *CreateSenderRequest) Validate(v *validation.Validator) error {
	return v.Struct(r).OrNil()
}

// SenderResponse emisor en respuestas.
type SenderResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ToSenderResponse mapea la entidad.
func ToSenderResponse(s *entity.Sender) *SenderResponse {
	return &SenderResponse{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		Address:     s.Address,
	}
}
