package invoicing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/money"
)

// EvaluateLineItem construye una línea con LineTotal = unitPrice × quantity.
// No asigna la factura dueña; eso lo hace el caso de uso.
func EvaluateLineItem(description string, quantity int, unitPrice decimal.Decimal) (*entity.InvoiceLineItem, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: descripción vacía", domain.ErrInvalidInput)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("%w: cantidad %d menor que 1", domain.ErrInvalidInput, quantity)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio unitario negativo %s", domain.ErrInvalidInput, unitPrice)
	}
	return &entity.InvoiceLineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   money.LineTotal(unitPrice, quantity),
	}, nil
}
