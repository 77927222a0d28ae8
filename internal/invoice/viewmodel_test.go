package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewInvoiceViewUnpaid(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	inv := Invoice{
		ID:           "INV-10001",
		CustomerName: "Acme Corp",
		Amount:       decimal.RequireFromString("1234.5"),
		InvoiceDate:  NewDate(2024, time.June, 1),
		DueDate:      NewDate(2024, time.July, 1),
		PaymentTerms: 30,
	}

	view := NewInvoiceView(inv, today)

	require.Equal(t, "1234.50", view.Amount)
	require.Equal(t, "2024-06-01", view.InvoiceDate)
	require.Equal(t, "2024-07-01", view.DueDate)
	require.Nil(t, view.PaymentDate)
	require.Equal(t, "Pending", view.Status)
	require.Equal(t, "Due in 16 days", view.DaysInfo.Text)
	require.True(t, view.Selectable)
}

func TestNewInvoiceViewPaid(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	inv := Invoice{
		ID:          "INV-10002",
		Amount:      decimal.RequireFromString("100"),
		DueDate:     NewDate(2024, time.June, 10),
		PaymentDate: datePtr(NewDate(2024, time.June, 8)),
	}

	view := NewInvoiceView(inv, today)

	require.NotNil(t, view.PaymentDate)
	require.Equal(t, "2024-06-08", *view.PaymentDate)
	require.Equal(t, "Paid", view.Status)
	require.Equal(t, "Paid 2 days early", view.DaysInfo.Text)
	require.False(t, view.Selectable)
}

func TestFormatAmountUsesIndianGrouping(t *testing.T) {
	require.Equal(t, "₹1,23,456.79", FormatAmount(decimal.RequireFromString("123456.789")))
	require.Equal(t, "₹500.00", FormatAmount(decimal.RequireFromString("500")))
}

func TestNewSummaryView(t *testing.T) {
	invoices, today := summaryFixture()

	view := NewSummaryView(Summarize(invoices, today))

	require.Equal(t, "3500.50", view.TotalOutstanding)
	require.Equal(t, "2500.50", view.TotalOverdue)
	require.Equal(t, "3000.00", view.TotalPaidThisMonth)
	require.Equal(t, map[string]int{"Pending": 1, "Overdue": 1, "Paid": 2}, view.StatusCounts)
}
