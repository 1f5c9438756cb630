package billing_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/invoice-builder-api/internal/domain/entity"
	"github.com/jhoicas/invoice-builder-api/internal/domain/repository"
)

// memStore almacén en memoria con transacciones por snapshot: RunInvoice copia el estado
// al empezar y lo restaura si la función retorna error.
type memStore struct {
	mu        sync.Mutex
	invoices  map[string]entity.Invoice
	items     map[string][]entity.InvoiceLineItem
	customers map[string]entity.Customer
	senders   map[string]entity.Sender
	currency  map[string]entity.Currency

	failCreateLineItem error // si no es nil, CreateLineItem falla con este error
	customerLookups    int   // llamadas a memCustomerRepo.GetByID
}

func newMemStore() *memStore {
	return &memStore{
		invoices:  map[string]entity.Invoice{},
		items:     map[string][]entity.InvoiceLineItem{},
		customers: map[string]entity.Customer{},
		senders:   map[string]entity.Sender{},
		currency:  map[string]entity.Currency{},
	}
}

type snapshot struct {
	invoices  map[string]entity.Invoice
	items     map[string][]entity.InvoiceLineItem
	customers map[string]entity.Customer
	senders   map[string]entity.Sender
}

func (s *memStore) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		invoices:  make(map[string]entity.Invoice, len(s.invoices)),
		items:     make(map[string][]entity.InvoiceLineItem, len(s.items)),
		customers: make(map[string]entity.Customer, len(s.customers)),
		senders:   make(map[string]entity.Sender, len(s.senders)),
	}
	for k, v := range s.invoices {
		snap.invoices[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = append([]entity.InvoiceLineItem(nil), v...)
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.senders {
		snap.senders[k] = v
	}
	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = snap.invoices
	s.items = snap.items
	s.customers = snap.customers
	s.senders = snap.senders
}

func (s *memStore) RunInvoice(_ context.Context, fn func(
	repository.InvoiceRepository,
	repository.CustomerRepository,
	repository.SenderRepository,
) error) error {
	snap := s.snapshot()
	if err := fn(memInvoiceRepo{s}, memCustomerRepo{s}, memSenderRepo{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *memStore) invoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

func (s *memStore) lineItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.items {
		n += len(v)
	}
	return n
}

// ─── Invoices ─────────────────────────────────────────────────────────────────

type memInvoiceRepo struct{ s *memStore }

func (r memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r memInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r memInvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r memInvoiceRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.invoices[id]
	return ok, nil
}

func (r memInvoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoices, id)
	delete(r.s.items, id)
	return nil
}

func (r memInvoiceRepo) summary(inv entity.Invoice) *entity.InvoiceSummary {
	return &entity.InvoiceSummary{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  r.s.customers[inv.CustomerID].Name,
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        inv.Status,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
	}
}

func (r memInvoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.InvoiceSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.InvoiceSummary, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		all = append(all, r.summary(inv))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].InvoiceNumber < all[j].InvoiceNumber })
	return page(all, limit, offset), nil
}

func (r memInvoiceRepo) Count(_ context.Context) (int, error) {
	return r.s.invoiceCount(), nil
}

func (r memInvoiceRepo) GetSummary(_ context.Context, id string) (*entity.InvoiceSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return r.summary(inv), nil
}

func (r memInvoiceRepo) CreateLineItem(_ context.Context, item *entity.InvoiceLineItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failCreateLineItem != nil {
		return r.s.failCreateLineItem
	}
	r.s.items[item.InvoiceID] = append(r.s.items[item.InvoiceID], *item)
	return nil
}

func (r memInvoiceRepo) DeleteLineItems(_ context.Context, invoiceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, invoiceID)
	return nil
}

func (r memInvoiceRepo) GetLineItems(_ context.Context, invoiceID string) ([]*entity.InvoiceLineItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.InvoiceLineItem, 0, len(r.s.items[invoiceID]))
	for _, it := range r.s.items[invoiceID] {
		it := it
		out = append(out, &it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

// ─── Customers ────────────────────────────────────────────────────────────────

type memCustomerRepo struct{ s *memStore }

func (r memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customerLookups++
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Customer, 0, len(r.s.customers))
	for _, c := range r.s.customers {
		c := c
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r memCustomerRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.customers), nil
}

func (r memCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return r.Create(ctx, c)
}

func (r memCustomerRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.customers[id]
	return ok, nil
}

func (r memCustomerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, id)
	for invID, inv := range r.s.invoices {
		if inv.CustomerID == id {
			delete(r.s.invoices, invID)
			delete(r.s.items, invID)
		}
	}
	return nil
}

// ─── Senders ──────────────────────────────────────────────────────────────────

type memSenderRepo struct{ s *memStore }

func (r memSenderRepo) Create(_ context.Context, snd *entity.Sender) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.senders[snd.ID] = *snd
	return nil
}

func (r memSenderRepo) GetByID(_ context.Context, id string) (*entity.Sender, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snd, ok := r.s.senders[id]
	if !ok {
		return nil, nil
	}
	return &snd, nil
}

func (r memSenderRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, snd := range r.s.senders {
		if strings.EqualFold(snd.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r memSenderRepo) List(_ context.Context, limit, offset int) ([]*entity.Sender, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Sender, 0, len(r.s.senders))
	for _, snd := range r.s.senders {
		snd := snd
		all = append(all, &snd)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

func (r memSenderRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.senders), nil
}

func (r memSenderRepo) Update(ctx context.Context, snd *entity.Sender) error {
	return r.Create(ctx, snd)
}

func (r memSenderRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.senders[id]
	return ok, nil
}

func (r memSenderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.senders, id)
	for invID, inv := range r.s.invoices {
		if inv.SenderID == id {
			inv.SenderID = ""
			r.s.invoices[invID] = inv
		}
	}
	return nil
}

// ─── Currencies ───────────────────────────────────────────────────────────────

type memCurrencyRepo struct{ s *memStore }

func (r memCurrencyRepo) List(_ context.Context) ([]*entity.Currency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Currency, 0, len(r.s.currency))
	for _, c := range r.s.currency {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r memCurrencyRepo) GetByCode(_ context.Context, code string) (*entity.Currency, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.currency[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
