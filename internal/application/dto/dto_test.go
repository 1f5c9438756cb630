package dto_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/currency"
)

func newValidator() *validation.Validator {
	return validation.New(currency.NewCatalog(map[string]int32{"USD": 2, "EUR": 2, "JPY": 0}))
}

func validInvoiceJSON() string {
	return `{
		"customer_id": "2b1f0c1e-6f1a-4d3c-9a57-0c7f0b7f8e11",
		"issue_date": "2024-01-15",
		"due_date": "2024-02-15",
		"currency": "USD",
		"tax_rate": 10,
		"discount": "5.00",
		"line_items": [{"description": "Consultoría", "quantity": 2, "unit_price": 50.00}]
	}`
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, fue %v", err)
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// ─── CreateInvoiceRequest.Validate ────────────────────────────────────────────

func TestCreateInvoiceRequest_Valida(t *testing.T) {
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))

	assert.NoError(t, req.Validate(newValidator()))
	assert.True(t, req.TaxRate.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "2024-01-15", req.IssueDate.Format(dto.DateLayout))
}

func TestCreateInvoiceRequest_ReportaTodosLosCampos(t *testing.T) {
	body := `{
		"customer_id": "no-uuid",
		"due_date": "2024-01-01",
		"currency": "XYZ",
		"tax_rate": -1,
		"discount": -2,
		"line_items": [
			{"description": "   ", "quantity": 0, "unit_price": -3}
		]
	}`
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	err := req.Validate(newValidator())

	assert.ErrorIs(t, err, domain.ErrValidation)
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "customer_id")
	assert.Equal(t, "es requerido", fields["issue_date"])
	assert.Equal(t, "no es un código ISO-4217 válido", fields["currency"])
	assert.Equal(t, "no puede ser negativo", fields["tax_rate"])
	assert.Equal(t, "no puede ser negativo", fields["discount"])
	assert.Equal(t, "no puede estar en blanco", fields["line_items[0].description"])
	assert.Contains(t, fields, "line_items[0].quantity")
	assert.Equal(t, "no puede ser negativo", fields["line_items[0].unit_price"])
}

func TestCreateInvoiceRequest_VencimientoAnteriorAEmision(t *testing.T) {
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-14"`), &req.DueDate))

	fields := fieldsOf(t, req.Validate(newValidator()))

	assert.Equal(t, "no puede ser anterior a issue_date", fields["due_date"])
}

func TestCreateInvoiceRequest_SinLineas(t *testing.T) {
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.LineItems = nil

	fields := fieldsOf(t, req.Validate(newValidator()))

	assert.Equal(t, "es requerido", fields["line_items"])
}

func TestCreateInvoiceRequest_NotasDemasiadoLargas(t *testing.T) {
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.Notes = string(make([]byte, dto.MaxNotesLength+1))

	fields := fieldsOf(t, req.Validate(newValidator()))

	assert.Contains(t, fields, "notes")
}

func TestCreateSenderRequest_EmailInvalido(t *testing.T) {
	req := dto.CreateSenderRequest{Name: "ACME", Email: "acme"}

	fields := fieldsOf(t, req.Validate(newValidator()))

	assert.Equal(t, "debe ser un email válido", fields["email"])
}

func TestPartyRequests_NombreEnBlanco(t *testing.T) {
	v := newValidator()

	customer := dto.CreateCustomerRequest{Name: "   ", Email: "a@b.co"}
	assert.Equal(t, "no puede estar en blanco", fieldsOf(t, customer.Validate(v))["name"])

	sender := dto.CreateSenderRequest{Name: "\t", Email: "a@b.co"}
	assert.Equal(t, "no puede estar en blanco", fieldsOf(t, sender.Validate(v))["name"])

	empty := dto.CreateCustomerRequest{Email: "a@b.co"}
	assert.Equal(t, "es requerido", fieldsOf(t, empty.Validate(v))["name"])
}

func TestCreateInvoiceRequest_MasDeCuatroDecimales(t *testing.T) {
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.TaxRate = decimal.RequireFromString("8.12345")
	req.Discount = decimal.RequireFromString("0.00001")
	req.LineItems[0].UnitPrice = decimal.RequireFromString("0.00004")

	fields := fieldsOf(t, req.Validate(newValidator()))

	assert.Equal(t, "admite como máximo 4 decimales", fields["tax_rate"])
	assert.Equal(t, "admite como máximo 4 decimales", fields["discount"])
	assert.Equal(t, "admite como máximo 4 decimales", fields["line_items[0].unit_price"])
}

func TestCreateInvoiceRequest_CerosFinalesNoCuentanComoDecimales(t *testing.T) {
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.TaxRate = decimal.RequireFromString("8.2500000")
	req.LineItems[0].UnitPrice = decimal.RequireFromString("0.0001")

	assert.NoError(t, req.Validate(newValidator()))
}

func TestCreateInvoiceRequest_MontosSobreElLimite(t *testing.T) {
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.TaxRate = decimal.NewFromInt(1000)
	req.Discount = decimal.RequireFromString("100000000000")
	req.LineItems[0].UnitPrice = decimal.RequireFromString("100000000000")

	fields := fieldsOf(t, req.Validate(newValidator()))

	assert.Equal(t, "no puede superar 999.9999", fields["tax_rate"])
	assert.Equal(t, "no puede superar 99999999999.9999", fields["discount"])
	assert.Equal(t, "no puede superar 99999999999.9999", fields["line_items[0].unit_price"])

	req.TaxRate = dto.MaxTaxRate
	req.Discount = decimal.Zero
	req.LineItems[0].UnitPrice = dto.MaxAmount
	assert.NoError(t, req.Validate(newValidator()))
}

func TestCreateInvoiceRequest_AceptaUUIDEnMayusculas(t *testing.T) {
	var req dto.CreateInvoiceRequest
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.CustomerID = "2B1F0C1E-6F1A-4D3C-9A57-0C7F0B7F8E11"

	assert.NoError(t, req.Validate(newValidator()))
}

// ─── Date ─────────────────────────────────────────────────────────────────────

func TestDate_JSON(t *testing.T) {
	var d dto.Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-15"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"15/01/2024"`), &d))

	out, err = json.Marshal(dto.Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

// ─── Paginación ───────────────────────────────────────────────────────────────

func TestPageRequest_Normalize(t *testing.T) {
	cases := []struct {
		name             string
		in               dto.PageRequest
		wantPage, wantSz int
	}{
		{"valores por defecto", dto.PageRequest{}, 0, 10},
		{"size cero", dto.PageRequest{Page: 2, Size: 0}, 2, 10},
		{"página negativa", dto.PageRequest{Page: -3, Size: 5}, 0, 5},
		{"size excede el tope", dto.PageRequest{Size: 1000}, 0, dto.MaxPageSize},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Normalize()
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantSz, p.Size)
		})
	}
}

func TestNewPage(t *testing.T) {
	req := dto.PageRequest{Page: 1, Size: 10}

	page := dto.NewPage([]string{"a"}, req, 21)

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 21, page.TotalElements)
	assert.Equal(t, 10, req.Offset())

	empty := dto.NewPage[string](nil, req, 0)
	assert.NotNil(t, empty.Content)
	assert.Equal(t, 0, empty.TotalPages)
}
