package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-builder-api/internal/application/dto"
	"github.com/jhoicas/invoice-builder-api/internal/application/validation"
	"github.com/jhoicas/invoice-builder-api/internal/domain"
	"github.com/jhoicas/invoice-builder-api/internal/domain/currency"
	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/invoicing"
	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
	"github.com/jhoicas/invoice-builder-api/pkg/logger"
)

// InvoiceUseCase ciclo de vida de facturas: crear, actualizar, eliminar y consultar.
// Crear y actualizar corren completos dentro de una transacción.
type InvoiceUseCase struct {
	txRunner     InvoiceTxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	senderRepo   repository.SenderRepository
	numbers      invoicing.NumberGenerator
	catalog      *currency.Catalog
	validator    *validation.Validator
	log          *logger.Logger
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. Los repos sueltos se usan para lecturas fuera de transacción.
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	senderRepo repository.SenderRepository,
	numbers invoicing.NumberGenerator,
	catalog *currency.Catalog,
	validator *validation.Validator,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		senderRepo:   senderRepo,
		numbers:      numbers,
		catalog:      catalog,
		validator:    validator,
		log:          log.Component("invoices"),
		now:          time.Now,
	}
}

// Create genera el número, guarda la cabecera en DRAFT, sus líneas y los totales calculados.
// Si el cliente no existe retorna NotFound y no queda nada persistido.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceSummaryResponse, error) {
	if err := in.Validate(uc.validator); err != nil {
		return nil, err
	}
	in.CustomerID, in.SenderID = normalizeID(in.CustomerID), normalizeID(in.SenderID)

	var out *dto.InvoiceSummaryResponse
	err := uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
		senderRepo repository.SenderRepository,
	) error {
		// 1) Número de factura
		number, err := uc.numbers.Next(ctx)
		if err != nil {
			return err
		}

		// 2) Cabecera en DRAFT
		now := uc.now()
		inv := &entity.Invoice{
			ID:            uuid.New().String(),
			InvoiceNumber: number,
			Status:        entity.InvoiceStatusDraft,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		in.ToInvoice(inv)

		// 3) Cliente (obligatorio) y emisor (opcional)
		customer, err := customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NewNotFound("Customer", "id", in.CustomerID)
		}
		inv.CustomerID = customer.ID

		sender, err := uc.resolveSender(ctx, senderRepo, in.SenderID)
		if err != nil {
			return err
		}
		if sender != nil {
			inv.SenderID = sender.ID
		}

		// 4) Cabecera, líneas y totales
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		items, err := uc.saveLineItems(ctx, invoiceRepo, inv.ID, in.LineItems)
		if err != nil {
			return err
		}
		invoicing.CalculateTotals(items, inv.TaxRate, inv.Discount, uc.catalog.Scale(inv.Currency)).Apply(inv)
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}

		out = dto.SummaryFromInvoice(inv, customer.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", out.ID).
		Str("invoice_number", out.InvoiceNumber).
		Str("total_amount", out.TotalAmount.String()).
		Msg("factura creada")
	return out, nil
}

// Update sobrescribe los campos editables y reemplaza TODAS las líneas por las de la solicitud.
// El cliente solo se vuelve a resolver si cambia; el emisor solo si viene sender_id.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.CreateInvoiceRequest) (*dto.InvoiceSummaryResponse, error) {
	if err := in.Validate(uc.validator); err != nil {
		return nil, err
	}
	in.CustomerID, in.SenderID = normalizeID(in.CustomerID), normalizeID(in.SenderID)

	var out *dto.InvoiceSummaryResponse
	err := uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		customerRepo repository.CustomerRepository,
		senderRepo repository.SenderRepository,
	) error {
		inv, err := invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.NewNotFound("Invoice", "id", id)
		}
		in.ToInvoice(inv)
		inv.UpdatedAt = uc.now()

		if in.CustomerID != inv.CustomerID {
			customer, err := customerRepo.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.NewNotFound("Customer", "id", in.CustomerID)
			}
			inv.CustomerID = customer.ID
		}

		if in.SenderID != "" {
			sender, err := uc.resolveSender(ctx, senderRepo, in.SenderID)
			if err != nil {
				return err
			}
			inv.SenderID = ""
			if sender != nil {
				inv.SenderID = sender.ID
			}
		}

		// Reemplazo completo de líneas, sin diff.
		if err := invoiceRepo.DeleteLineItems(ctx, inv.ID); err != nil {
			return err
		}
		items, err := uc.saveLineItems(ctx, invoiceRepo, inv.ID, in.LineItems)
		if err != nil {
			return err
		}
		invoicing.CalculateTotals(items, inv.TaxRate, inv.Discount, uc.catalog.Scale(inv.Currency)).Apply(inv)
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}

		summary, err := invoiceRepo.GetSummary(ctx, inv.ID)
		if err != nil {
			return err
		}
		if summary == nil {
			return domain.NewNotFound("Invoice", "id", id)
		}
		out = dto.ToInvoiceSummaryResponse(summary)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", out.ID).
		Str("invoice_number", out.InvoiceNumber).
		Int("line_items", len(in.LineItems)).
		Msg("factura actualizada")
	return out, nil
}

// Delete elimina la factura y sus líneas. NotFound si no existe.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	exists, err := uc.invoiceRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("Invoice", "id", id)
	}
	if err := uc.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// GetLineItems devuelve las líneas en el orden en que se guardaron. NotFound si la factura no existe.
func (uc *InvoiceUseCase) GetLineItems(ctx context.Context, id string) ([]dto.InvoiceLineItemResponse, error) {
	exists, err := uc.invoiceRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound("Invoice", "id", id)
	}
	items, err := uc.invoiceRepo.GetLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToLineItemResponses(items), nil
}

// GetByID devuelve la factura con cliente, emisor y líneas.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceDetailResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NewNotFound("Invoice", "id", id)
	}
	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil {
		return nil, err
	}
	var sender *entity.Sender
	if inv.HasSender() {
		if sender, err = uc.senderRepo.GetByID(ctx, inv.SenderID); err != nil {
			return nil, err
		}
	}
	items, err := uc.invoiceRepo.GetLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToInvoiceDetailResponse(inv, customer, sender, items), nil
}

// List página de facturas con el nombre del cliente.
func (uc *InvoiceUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PageResponse[*dto.InvoiceSummaryResponse], error) {
	page.Normalize()
	list, err := uc.invoiceRepo.List(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.invoiceRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.ToInvoiceSummaryResponse(s))
	}
	return dto.NewPage(out, page, total), nil
}

// normalizeID forma canónica del UUID (minúsculas con guiones); si no parsea se deja igual.
func normalizeID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

// resolveSender busca el emisor; un id vacío o inexistente da (nil, nil).
func (uc *InvoiceUseCase) resolveSender(ctx context.Context, repo repository.SenderRepository, id string) (*entity.Sender, error) {
	if id == "" {
		return nil, nil
	}
	sender, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		uc.log.Debug().Str("sender_id", id).Msg("emisor no encontrado; la factura queda sin emisor")
	}
	return sender, nil
}

// saveLineItems evalúa y guarda las líneas en orden contra la factura ya persistida.
func (uc *InvoiceUseCase) saveLineItems(ctx context.Context, repo repository.InvoiceRepository, invoiceID string, in []dto.InvoiceLineItemRequest) ([]*entity.InvoiceLineItem, error) {
	items := make([]*entity.InvoiceLineItem, 0, len(in))
	for i, req := range in {
		item, err := invoicing.EvaluateLineItem(req.Description, req.Quantity, req.UnitPrice)
		if err != nil {
			return nil, err
		}
		item.ID = uuid.New().String()
		item.InvoiceID = invoiceID
		item.Position = i
		if err := repo.CreateLineItem(ctx, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
