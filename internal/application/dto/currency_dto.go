package dto

import "github.com/jhoicas/invoice-builder-api/internal/domain/entity"

// CurrencyResponse moneda de la tabla currencies.
type CurrencyResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ToCurrencyResponse mapea la entidad.
func ToCurrencyResponse(c *entity.Currency) *CurrencyResponse {
	return &CurrencyResponse{Code: c.Code, Name: c.Name}
}
