package invoice

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

var sampleCustomers = []string{
	"Acme Corp", "TechStart Inc", "Global Traders", "Swift Solutions",
	"Prime Industries", "Digital Dynamics", "Metro Supplies", "Apex Ventures",
	"BlueSky Ltd", "Quantum Systems",
}

// SampleInvoices generates the seed collection used when no snapshot
// exists: ten invoices dated within the last sixty days, random terms
// and amounts, roughly 40% of them paid within -5..+14 days of their
// due date. rng may be nil.
func SampleInvoices(today Date, rng *rand.Rand) []Invoice {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	invoices := make([]Invoice, 0, len(sampleCustomers))
	for i, customer := range sampleCustomers {
		invoiceDate := today.AddDays(-rng.Intn(60))
		terms := PaymentTermChoices[rng.Intn(len(PaymentTermChoices))]
		dueDate := DueDateFor(invoiceDate, terms)

		inv := Invoice{
			ID:           FormatID(firstID + i),
			CustomerName: customer,
			Amount:       decimal.NewFromFloat(rng.Float64()*50000 + 5000).Round(2),
			InvoiceDate:  invoiceDate,
			DueDate:      dueDate,
			PaymentTerms: terms,
		}
		if rng.Float64() < 0.4 {
			paymentDate := dueDate.AddDays(rng.Intn(20) - 5)
			inv.PaymentDate = &paymentDate
		}
		invoices = append(invoices, inv)
	}
	return invoices
}
