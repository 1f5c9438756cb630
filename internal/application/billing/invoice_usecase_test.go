package billing_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-builder-api/internal/application/billing"
	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/currency"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/invoicing"
	"github.com/jhoicas/invoice-builder-api/pkg/logger"
)

const (
	customerID      = "2b1f0c1e-6f1a-4d3c-9a57-0c7f0b7f8e11"
	otherCustomerID = "7d9c3f52-1b8e-4a0e-8f0a-3c2d1e0f9a88"
	missingID       = "00000000-0000-4000-8000-000000000000"
	senderID        = "5a6b7c8d-9e0f-4a1b-8c2d-3e4f5a6b7c8d"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store *memStore
	uc    *billing.InvoiceUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	store.customers[customerID] = entity.Customer{ID: customerID, Name: "ACME Corp", Email: "pagos@acme.test"}
	store.customers[otherCustomerID] = entity.Customer{ID: otherCustomerID, Name: "Globex", Email: "ap@globex.test"}
	store.senders[senderID] = entity.Sender{ID: senderID, Name: "Mi Empresa", Email: "facturas@miempresa.test"}

	catalog := currency.NewCatalog(map[string]int32{"USD": 2, "EUR": 2, "JPY": 0})
	day := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	numbers := invoicing.NewSequenceCounter(func() time.Time { return day })

	uc := billing.NewInvoiceUseCase(
		store,
		memInvoiceRepo{store}, memCustomerRepo{store}, memSenderRepo{store},
		numbers, catalog, validation.New(catalog), logger.Nop(),
	)
	return &fixture{store: store, uc: uc}
}

func item(desc string, qty int, price string) dto.InvoiceLineItemRequest {
	return dto.InvoiceLineItemRequest{Description: desc, Quantity: qty, UnitPrice: dec(price)}
}

func request(items ...dto.InvoiceLineItemRequest) dto.CreateInvoiceRequest {
	issue := dto.NewDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	due := dto.NewDate(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	return dto.CreateInvoiceRequest{
		CustomerID: customerID,
		IssueDate:  &issue,
		DueDate:    &due,
		Currency:   "USD",
		TaxRate:    dec("10"),
		Discount:   dec("5"),
		LineItems:  items,
	}
}

// ─── Create ───────────────────────────────────────────────────────────────────

func TestCreate_EjemploDeExtremoAExtremo(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), request(item("A", 2, "50.00")))
	require.NoError(t, err)

	assert.Equal(t, "INV-20240115-0001", out.InvoiceNumber)
	assert.Equal(t, "ACME Corp", out.CustomerName)
	assert.Equal(t, "DRAFT", out.Status)
	assert.True(t, out.Subtotal.Equal(dec("100.00")), "subtotal %s", out.Subtotal)
	assert.True(t, out.TaxAmount.Equal(dec("10.00")), "tax %s", out.TaxAmount)
	assert.True(t, out.TotalAmount.Equal(dec("105.00")), "total %s", out.TotalAmount)

	stored := f.store.invoices[out.ID]
	assert.Equal(t, customerID, stored.CustomerID)
	assert.True(t, stored.TotalAmount.Equal(dec("105.00")), "los totales se persisten")
	assert.Equal(t, 1, f.store.lineItemCount())
}

func TestCreate_NumerosConsecutivos(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.Create(context.Background(), request(item("A", 1, "1")))
	require.NoError(t, err)
	second, err := f.uc.Create(context.Background(), request(item("B", 1, "1")))
	require.NoError(t, err)

	assert.Equal(t, "INV-20240115-0001", first.InvoiceNumber)
	assert.Equal(t, "INV-20240115-0002", second.InvoiceNumber)
}

func TestCreate_ClienteInexistenteNoPersisteNada(t *testing.T) {
	f := newFixture(t)
	req := request(item("A", 1, "10"))
	req.CustomerID = missingID

	_, err := f.uc.Create(context.Background(), req)

	require.ErrorIs(t, err, domain.ErrNotFound)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Customer", nf.Resource)
	assert.Equal(t, "id", nf.Field)
	assert.Equal(t, missingID, nf.Value)
	assert.Zero(t, f.store.invoiceCount())
	assert.Zero(t, f.store.lineItemCount())
}

func TestCreate_EmisorInexistenteQuedaSinEmisor(t *testing.T) {
	f := newFixture(t)
	req := request(item("A", 1, "10"))
	req.SenderID = missingID

	out, err := f.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Empty(t, f.store.invoices[out.ID].SenderID)
}

func TestCreate_ConEmisor(t *testing.T) {
	f := newFixture(t)
	req := request(item("A", 1, "10"))
	req.SenderID = senderID

	out, err := f.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, senderID, f.store.invoices[out.ID].SenderID)
}

func TestCreate_FalloAlGuardarLineasRevierteLaCabecera(t *testing.T) {
	f := newFixture(t)
	f.store.failCreateLineItem = errors.New("conexión perdida")

	_, err := f.uc.Create(context.Background(), request(item("A", 1, "10"), item("B", 1, "5")))

	require.Error(t, err)
	assert.Zero(t, f.store.invoiceCount(), "la cabecera no debe quedar huérfana")
	assert.Zero(t, f.store.lineItemCount())
}

func TestCreate_SolicitudInvalidaNoConsumeNumero(t *testing.T) {
	f := newFixture(t)
	bad := request()
	bad.Currency = "ZZZ"

	_, err := f.uc.Create(context.Background(), bad)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, f.store.invoiceCount())

	out, err := f.uc.Create(context.Background(), request(item("A", 1, "1")))
	require.NoError(t, err)
	assert.Equal(t, "INV-20240115-0001", out.InvoiceNumber)
}

func TestCreate_TotalNegativoPermitido(t *testing.T) {
	f := newFixture(t)
	req := request(item("A", 2, "50.00"))
	req.Discount = dec("200")

	out, err := f.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(dec("-90.00")), "total %s", out.TotalAmount)
}

func TestCreate_RedondeaALaEscalaDeLaMoneda(t *testing.T) {
	f := newFixture(t)
	req := request(item("Servicio", 1, "1000"))
	req.Currency = "jpy"
	req.TaxRate = dec("8.25")
	req.Discount = decimal.Zero

	out, err := f.uc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "JPY", out.Currency)
	assert.True(t, out.TaxAmount.Equal(dec("83")), "82.5 redondea a 83 con escala 0, fue %s", out.TaxAmount)
}

// ─── Update ───────────────────────────────────────────────────────────────────

func TestUpdate_ReemplazaTodasLasLineas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, request(item("A", 2, "50.00"), item("B", 1, "30.00")))
	require.NoError(t, err)

	upd := request(item("C", 3, "10.00"))
	upd.Discount = decimal.Zero
	out, err := f.uc.Update(ctx, created.ID, upd)
	require.NoError(t, err)

	items, err := f.uc.GetLineItems(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "C", items[0].Description)
	assert.True(t, out.Subtotal.Equal(dec("30.00")))
	assert.True(t, out.TaxAmount.Equal(dec("3.00")))
	assert.True(t, out.TotalAmount.Equal(dec("33.00")))
	assert.Equal(t, created.InvoiceNumber, out.InvoiceNumber, "el número no se recalcula")
	assert.Equal(t, 1, f.store.lineItemCount())
}

func TestUpdate_FacturaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Update(context.Background(), missingID, request(item("A", 1, "1")))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_NuevoClienteInexistenteRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, request(item("A", 2, "50.00")))
	require.NoError(t, err)

	upd := request(item("Z", 9, "9.00"))
	upd.CustomerID = missingID
	_, err = f.uc.Update(ctx, created.ID, upd)

	require.ErrorIs(t, err, domain.ErrNotFound)
	items, err := f.uc.GetLineItems(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Description)
	assert.Equal(t, customerID, f.store.invoices[created.ID].CustomerID)
}

func TestUpdate_CambiaDeCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, request(item("A", 1, "1")))
	require.NoError(t, err)

	upd := request(item("A", 1, "1"))
	upd.CustomerID = otherCustomerID
	out, err := f.uc.Update(ctx, created.ID, upd)

	require.NoError(t, err)
	assert.Equal(t, "Globex", out.CustomerName)
}

func TestUpdate_MismoClienteEnMayusculasNoSeVuelveAResolver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, request(item("A", 1, "1")))
	require.NoError(t, err)
	lookups := f.store.customerLookups

	upd := request(item("B", 2, "3"))
	upd.CustomerID = strings.ToUpper(customerID)
	out, err := f.uc.Update(ctx, created.ID, upd)

	require.NoError(t, err)
	assert.Equal(t, lookups, f.store.customerLookups)
	assert.Equal(t, "ACME Corp", out.CustomerName)
	assert.Equal(t, customerID, f.store.invoices[created.ID].CustomerID)
}

func TestCreate_IDsEnMayusculasSeNormalizan(t *testing.T) {
	f := newFixture(t)
	req := request(item("A", 1, "1"))
	req.CustomerID = strings.ToUpper(customerID)
	req.SenderID = strings.ToUpper(senderID)

	out, err := f.uc.Create(context.Background(), req)

	require.NoError(t, err)
	stored := f.store.invoices[out.ID]
	assert.Equal(t, customerID, stored.CustomerID)
	assert.Equal(t, senderID, stored.SenderID)
}

func TestCreate_MontosFueraDePrecisionNoPersistenNada(t *testing.T) {
	f := newFixture(t)
	req := request(item("A", 2, "0.00004"))
	req.TaxRate = dec("1000")

	_, err := f.uc.Create(context.Background(), req)

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.store.invoices)
	assert.Empty(t, f.store.items)
}

func TestUpdate_Emisor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := request(item("A", 1, "1"))
	req.SenderID = senderID
	created, err := f.uc.Create(ctx, req)
	require.NoError(t, err)

	// sin sender_id se conserva el emisor actual
	_, err = f.uc.Update(ctx, created.ID, request(item("A", 1, "1")))
	require.NoError(t, err)
	assert.Equal(t, senderID, f.store.invoices[created.ID].SenderID)

	// un sender_id que no resuelve desasocia
	upd := request(item("A", 1, "1"))
	upd.SenderID = missingID
	_, err = f.uc.Update(ctx, created.ID, upd)
	require.NoError(t, err)
	assert.Empty(t, f.store.invoices[created.ID].SenderID)
}

// ─── Delete / consultas ───────────────────────────────────────────────────────

func TestDelete_Inexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), request(item("A", 1, "1")))
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), missingID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, f.store.invoiceCount())
	assert.Equal(t, 1, f.store.lineItemCount())
}

func TestDelete_EliminaLineasEnCascada(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), request(item("A", 1, "1"), item("B", 2, "2")))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))

	assert.Zero(t, f.store.invoiceCount())
	assert.Zero(t, f.store.lineItemCount())
}

func TestGetLineItems_OrdenDePersistencia(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(),
		request(item("Primera", 1, "1"), item("Segunda", 2, "2"), item("Tercera", 3, "3")))
	require.NoError(t, err)

	items, err := f.uc.GetLineItems(context.Background(), created.ID)

	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"Primera", "Segunda", "Tercera"},
		[]string{items[0].Description, items[1].Description, items[2].Description})
	assert.True(t, items[2].LineTotal.Equal(dec("9")))
}

func TestGetLineItems_FacturaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetLineItems(context.Background(), missingID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_Detalle(t *testing.T) {
	f := newFixture(t)
	req := request(item("A", 2, "50.00"))
	req.SenderID = senderID
	req.Notes = "Pago a 30 días"
	created, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)

	out, err := f.uc.GetByID(context.Background(), created.ID)

	require.NoError(t, err)
	assert.Equal(t, "ACME Corp", out.Customer.Name)
	require.NotNil(t, out.Sender)
	assert.Equal(t, "Mi Empresa", out.Sender.Name)
	assert.Equal(t, "Pago a 30 días", out.Notes)
	assert.Len(t, out.LineItems, 1)
	assert.True(t, out.TaxRate.Equal(dec("10")))

	_, err = f.uc.GetByID(context.Background(), missingID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_Paginado(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		_, err := f.uc.Create(context.Background(), request(item("A", 1, "1")))
		require.NoError(t, err)
	}

	page, err := f.uc.List(context.Background(), dto.PageRequest{Page: 1, Size: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "INV-20240115-0003", page.Content[0].InvoiceNumber)
	assert.Equal(t, "ACME Corp", page.Content[0].CustomerName)
}
