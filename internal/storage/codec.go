// Package storage persists invoice collection snapshots as opaque
// JSON blobs behind the invoice.SnapshotStore port.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/qistonpe/invoice-dashboard/internal/invoice"
)

// snapshotInvoice is the wire shape of one persisted invoice. Amounts
// travel as fixed two-decimal strings and dates as ISO calendar days.
type snapshotInvoice struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customerName"`
	Amount       string  `json:"amount"`
	InvoiceDate  string  `json:"invoiceDate"`
	DueDate      string  `json:"dueDate"`
	PaymentTerms int     `json:"paymentTerms"`
	PaymentDate  *string `json:"paymentDate"`
}

// Encode serializes the collection into a snapshot blob.
func Encode(invoices []invoice.Invoice) ([]byte, error) {
	records := make([]snapshotInvoice, 0, len(invoices))
	for _, inv := range invoices {
		record := snapshotInvoice{
			ID:           inv.ID,
			CustomerName: inv.CustomerName,
			Amount:       inv.Amount.StringFixed(2),
			InvoiceDate:  inv.InvoiceDate.String(),
			DueDate:      inv.DueDate.String(),
			PaymentTerms: inv.PaymentTerms,
		}
		if inv.PaymentDate != nil {
			paid := inv.PaymentDate.String()
			record.PaymentDate = &paid
		}
		records = append(records, record)
	}

	blob, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("storage: encode snapshot: %w", err)
	}
	return blob, nil
}

// Decode parses a snapshot blob back into the collection. Any malformed
// record fails the whole snapshot; callers treat that as absent data.
func Decode(blob []byte) ([]invoice.Invoice, error) {
	var records []snapshotInvoice
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, fmt.Errorf("storage: decode snapshot: %w", err)
	}

	invoices := make([]invoice.Invoice, 0, len(records))
	for _, record := range records {
		inv, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func decodeRecord(record snapshotInvoice) (invoice.Invoice, error) {
	amount, err := decimal.NewFromString(record.Amount)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("storage: decode amount %q: %w", record.Amount, err)
	}
	invoiceDate, err := invoice.ParseDate(record.InvoiceDate)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("storage: decode invoice date %q: %w", record.InvoiceDate, err)
	}
	dueDate, err := invoice.ParseDate(record.DueDate)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("storage: decode due date %q: %w", record.DueDate, err)
	}

	inv := invoice.Invoice{
		ID:           record.ID,
		CustomerName: record.CustomerName,
		Amount:       amount,
		InvoiceDate:  invoiceDate,
		DueDate:      dueDate,
		PaymentTerms: record.PaymentTerms,
	}
	if record.PaymentDate != nil {
		paymentDate, err := invoice.ParseDate(*record.PaymentDate)
		if err != nil {
			return invoice.Invoice{}, fmt.Errorf("storage: decode payment date %q: %w", *record.PaymentDate, err)
		}
		inv.PaymentDate = &paymentDate
	}
	return inv, nil
}
