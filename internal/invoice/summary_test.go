package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func summaryFixture() ([]Invoice, Date) {
	today := NewDate(2024, time.June, 15)
	return []Invoice{
		{
			ID:      "INV-10001",
			Amount:  decimal.RequireFromString("1000.00"),
			DueDate: NewDate(2024, time.June, 30), // pending
		},
		{
			ID:      "INV-10002",
			Amount:  decimal.RequireFromString("2500.50"),
			DueDate: NewDate(2024, time.June, 1), // overdue
		},
		{
			ID:          "INV-10003",
			Amount:      decimal.RequireFromString("3000.00"),
			DueDate:     NewDate(2024, time.June, 10),
			PaymentDate: datePtr(NewDate(2024, time.June, 12)), // paid this month, 2 late
		},
		{
			ID:          "INV-10004",
			Amount:      decimal.RequireFromString("4000.00"),
			DueDate:     NewDate(2024, time.May, 20),
			PaymentDate: datePtr(NewDate(2024, time.May, 17)), // paid last month, 3 early
		},
	}, today
}

func TestSummarizeTotals(t *testing.T) {
	invoices, today := summaryFixture()

	s := Summarize(invoices, today)

	require.Equal(t, "3500.50", s.TotalOutstanding.StringFixed(2))
	require.Equal(t, "2500.50", s.TotalOverdue.StringFixed(2))
	require.Equal(t, "3000.00", s.TotalPaidThisMonth.StringFixed(2))
	require.Equal(t, map[Status]int{
		StatusPending: 1,
		StatusOverdue: 1,
		StatusPaid:    2,
	}, s.StatusCounts)
}

func TestOutstandingIsPendingPlusOverdue(t *testing.T) {
	invoices, today := summaryFixture()

	outstanding := TotalOutstanding(invoices, today)
	overdue := TotalOverdue(invoices, today)

	require.True(t, overdue.LessThanOrEqual(outstanding))
	require.Equal(t, outstanding.StringFixed(2), Summarize(invoices, today).TotalOutstanding.StringFixed(2))
}

func TestPaidThisMonthUsesCalendarMonth(t *testing.T) {
	today := NewDate(2024, time.June, 1)
	invoices := []Invoice{
		{
			Amount:      decimal.RequireFromString("100.00"),
			DueDate:     NewDate(2024, time.May, 30),
			PaymentDate: datePtr(NewDate(2024, time.May, 31)), // one day ago, previous month
		},
		{
			Amount:      decimal.RequireFromString("200.00"),
			DueDate:     NewDate(2024, time.June, 20),
			PaymentDate: datePtr(NewDate(2024, time.June, 1)),
		},
	}

	require.Equal(t, "200.00", TotalPaidThisMonth(invoices, today).StringFixed(2))
}

func TestAveragePaymentDelayRoundsHalfUp(t *testing.T) {
	invoices := []Invoice{
		{DueDate: NewDate(2024, time.June, 10), PaymentDate: datePtr(NewDate(2024, time.June, 12))}, // +2
		{DueDate: NewDate(2024, time.June, 10), PaymentDate: datePtr(NewDate(2024, time.June, 11))}, // +1
	}
	// mean 1.5 rounds to 2
	require.Equal(t, 2, AveragePaymentDelay(invoices))
}

func TestAveragePaymentDelayNegativeMean(t *testing.T) {
	invoices := []Invoice{
		{DueDate: NewDate(2024, time.June, 10), PaymentDate: datePtr(NewDate(2024, time.June, 7))}, // -3
		{DueDate: NewDate(2024, time.June, 10), PaymentDate: datePtr(NewDate(2024, time.June, 8))}, // -2
		{DueDate: NewDate(2024, time.June, 10), PaymentDate: datePtr(NewDate(2024, time.June, 12))}, // +2
	}
	// mean -1 exactly
	require.Equal(t, -1, AveragePaymentDelay(invoices))
}

func TestAveragePaymentDelayEmpty(t *testing.T) {
	require.Equal(t, 0, AveragePaymentDelay(nil))
	require.Equal(t, 0, AveragePaymentDelay([]Invoice{{DueDate: NewDate(2024, time.June, 10)}}))
}

func TestSummarizeEmptyCollection(t *testing.T) {
	s := Summarize(nil, NewDate(2024, time.June, 15))

	require.Equal(t, "0.00", s.TotalOutstanding.StringFixed(2))
	require.Equal(t, "0.00", s.TotalOverdue.StringFixed(2))
	require.Equal(t, "0.00", s.TotalPaidThisMonth.StringFixed(2))
	require.Equal(t, 0, s.AveragePaymentDelay)
	require.Equal(t, 0, s.StatusCounts[StatusPending])
}
