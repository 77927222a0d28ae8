package invoice

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/qistonpe/invoice-dashboard/internal/shared"
)

const (
	idPrefix = "INV-"
	firstID  = 10001
)

// SnapshotStore is the persistence collaborator. Load returns the last
// saved collection, or nil when nothing was ever saved or the snapshot
// is unreadable. Save replaces the snapshot wholesale.
type SnapshotStore interface {
	Load(ctx context.Context) ([]Invoice, error)
	Save(ctx context.Context, invoices []Invoice) error
}

// FieldErrors maps input field names to validation messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "invalid invoice input"
}

// AddInvoiceInput carries the add-invoice form fields. Amount and
// InvoiceDate arrive as strings and are parsed during validation.
type AddInvoiceInput struct {
	CustomerName string `json:"customerName" validate:"required"`
	Amount       string `json:"amount" validate:"required"`
	InvoiceDate  string `json:"invoiceDate" validate:"required"`
	PaymentTerms int    `json:"paymentTerms" validate:"required,oneof=7 15 30 45 60"`
}

// Service owns the canonical invoice collection. It is the sole writer;
// readers receive copies. Every successful mutation re-persists the full
// collection through the snapshot store, best effort.
type Service struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	store    SnapshotStore
	audit    *shared.AuditLogger
	validate *validator.Validate
	invoices []Invoice
}

// NewService builds a Service instance. audit may be nil.
func NewService(logger *slog.Logger, store SnapshotStore, audit *shared.AuditLogger) *Service {
	return &Service{
		logger:   logger,
		store:    store,
		audit:    audit,
		validate: validator.New(),
	}
}

// Init populates the collection from the snapshot store, or seeds and
// persists the sample set when no snapshot exists. Load failures are
// treated as an absent snapshot.
func (s *Service) Init(ctx context.Context) {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("load snapshot", slog.Any("error", err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(loaded) > 0 {
		s.invoices = loaded
		return
	}
	s.invoices = SampleInvoices(Today(), nil)
	s.persistLocked(ctx)
}

// Invoices returns a copy of the collection, newest first.
func (s *Service) Invoices() []Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Invoice(nil), s.invoices...)
}

// Add validates the input and, on success, prepends a new unpaid
// invoice with the next sequential id and a due date derived from the
// payment terms. On failure it returns FieldErrors and mutates nothing.
func (s *Service) Add(ctx context.Context, input AddInvoiceInput) (*Invoice, error) {
	amount, invoiceDate, errs := s.parseInput(input)
	if len(errs) > 0 {
		return nil, errs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv := Invoice{
		ID:           s.nextIDLocked(),
		CustomerName: input.CustomerName,
		Amount:       amount.Round(2),
		InvoiceDate:  invoiceDate,
		DueDate:      DueDateFor(invoiceDate, input.PaymentTerms),
		PaymentTerms: input.PaymentTerms,
	}
	s.invoices = append([]Invoice{inv}, s.invoices...)
	s.persistLocked(ctx)
	s.audit.Record(ctx, "invoice.add", inv.ID, map[string]any{
		"customer": inv.CustomerName,
		"amount":   inv.Amount.StringFixed(2),
	})
	return &inv, nil
}

// MarkPaid records the payment date on the matching invoice and
// persists. An unknown id is a benign no-op; re-marking an already paid
// invoice overwrites the payment date. Returns whether an invoice was
// updated.
func (s *Service) MarkPaid(ctx context.Context, id string, paymentDate Date) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.markPaidLocked(id, paymentDate) {
		return false
	}
	s.persistLocked(ctx)
	s.audit.Record(ctx, "invoice.mark_paid", id, map[string]any{
		"paymentDate": paymentDate.String(),
	})
	return true
}

// BulkMarkPaid applies MarkPaid semantics to every matching id in one
// persisted transition. Returns the number of invoices updated.
func (s *Service) BulkMarkPaid(ctx context.Context, ids []string, paymentDate Date) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := 0
	for _, id := range ids {
		if s.markPaidLocked(id, paymentDate) {
			updated++
		}
	}
	if updated == 0 {
		return 0
	}
	s.persistLocked(ctx)
	s.audit.Record(ctx, "invoice.bulk_mark_paid", "bulk", map[string]any{
		"ids":         ids,
		"updated":     updated,
		"paymentDate": paymentDate.String(),
	})
	return updated
}

func (s *Service) markPaidLocked(id string, paymentDate Date) bool {
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			when := paymentDate
			s.invoices[i].PaymentDate = &when
			return true
		}
	}
	return false
}

// persistLocked saves the full snapshot. Failures are logged and
// swallowed; the in-memory collection stays the source of truth for the
// session.
func (s *Service) persistLocked(ctx context.Context) {
	if err := s.store.Save(ctx, append([]Invoice(nil), s.invoices...)); err != nil {
		s.logger.Warn("persist snapshot", slog.Any("error", err), slog.Int("invoices", len(s.invoices)))
	}
}

// nextIDLocked generates the next sequential id from the highest
// numeric suffix in the collection.
func (s *Service) nextIDLocked() string {
	next := firstID
	for _, inv := range s.invoices {
		suffix, ok := strings.CutPrefix(inv.ID, idPrefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return FormatID(next)
}

// FormatID renders a numeric sequence value as a zero-padded invoice id.
func FormatID(n int) string {
	return fmt.Sprintf("%s%05d", idPrefix, n)
}

func (s *Service) parseInput(input AddInvoiceInput) (decimal.Decimal, Date, FieldErrors) {
	errs := FieldErrors{}
	if err := s.validate.Struct(input); err != nil {
		for _, fieldErr := range err.(validator.ValidationErrors) {
			switch fieldErr.Field() {
			case "CustomerName":
				errs["customerName"] = "Customer name is required"
			case "Amount":
				errs["amount"] = "Amount must be greater than 0"
			case "InvoiceDate":
				errs["invoiceDate"] = "Invoice date is required"
			case "PaymentTerms":
				errs["paymentTerms"] = "Payment terms must be 7, 15, 30, 45 or 60 days"
			}
		}
	}

	if errs["customerName"] == "" && strings.TrimSpace(input.CustomerName) == "" {
		errs["customerName"] = "Customer name is required"
	}

	var amount decimal.Decimal
	if errs["amount"] == "" {
		parsed, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
		if err != nil || !parsed.IsPositive() {
			errs["amount"] = "Amount must be greater than 0"
		} else {
			amount = parsed
		}
	}

	var invoiceDate Date
	if errs["invoiceDate"] == "" {
		parsed, err := ParseDate(input.InvoiceDate)
		if err != nil {
			errs["invoiceDate"] = "Invoice date must be a valid date"
		} else {
			invoiceDate = parsed
		}
	}

	if len(errs) > 0 {
		return decimal.Decimal{}, Date{}, errs
	}
	return amount, invoiceDate, nil
}
