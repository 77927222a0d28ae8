package invoice

import (
	"math"

	"github.com/shopspring/decimal"
)

// Summary bundles the portfolio-level aggregates shown on the
// dashboard cards and the status chart.
type Summary struct {
	TotalOutstanding    decimal.Decimal
	TotalOverdue        decimal.Decimal
	TotalPaidThisMonth  decimal.Decimal
	AveragePaymentDelay int
	StatusCounts        map[Status]int
}

// TotalOutstanding sums the amounts of all invoices that are Pending or
// Overdue as of today.
func TotalOutstanding(invoices []Invoice, today Date) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		switch inv.StatusOn(today) {
		case StatusPending, StatusOverdue:
			total = total.Add(inv.Amount)
		}
	}
	return total
}

// TotalOverdue sums the amounts of all invoices that are Overdue as of
// today.
func TotalOverdue(invoices []Invoice, today Date) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.StatusOn(today) == StatusOverdue {
			total = total.Add(inv.Amount)
		}
	}
	return total
}

// TotalPaidThisMonth sums the amounts of invoices paid within today's
// calendar month. The window is the calendar month, not a rolling 30
// days.
func TotalPaidThisMonth(invoices []Invoice, today Date) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Paid() && inv.PaymentDate.SameMonth(today) {
			total = total.Add(inv.Amount)
		}
	}
	return total
}

// AveragePaymentDelay returns the mean signed day delta between payment
// and due date over all paid invoices, rounded to the nearest integer.
// Positive means late, negative early. Zero when no invoice is paid.
func AveragePaymentDelay(invoices []Invoice) int {
	total := 0
	paid := 0
	for _, inv := range invoices {
		if !inv.Paid() {
			continue
		}
		total += daysBetween(*inv.PaymentDate, inv.DueDate)
		paid++
	}
	if paid == 0 {
		return 0
	}
	return int(math.Floor(float64(total)/float64(paid) + 0.5))
}

// Summarize computes all dashboard aggregates over the collection as of
// today.
func Summarize(invoices []Invoice, today Date) Summary {
	s := Summary{
		TotalOutstanding:    decimal.Zero,
		TotalOverdue:        decimal.Zero,
		TotalPaidThisMonth:  decimal.Zero,
		AveragePaymentDelay: AveragePaymentDelay(invoices),
		StatusCounts: map[Status]int{
			StatusPending: 0,
			StatusOverdue: 0,
			StatusPaid:    0,
		},
	}
	for _, inv := range invoices {
		status := inv.StatusOn(today)
		s.StatusCounts[status]++
		switch status {
		case StatusPending:
			s.TotalOutstanding = s.TotalOutstanding.Add(inv.Amount)
		case StatusOverdue:
			s.TotalOutstanding = s.TotalOutstanding.Add(inv.Amount)
			s.TotalOverdue = s.TotalOverdue.Add(inv.Amount)
		}
		if inv.Paid() && inv.PaymentDate.SameMonth(today) {
			s.TotalPaidThisMonth = s.TotalPaidThisMonth.Add(inv.Amount)
		}
	}
	return s
}
