// Package invoice implements the invoice domain model and derived-state
// engine for the dashboard: lifecycle status, due-date arithmetic,
// portfolio summaries and the filter/sort/paginate pipeline.
package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// PaymentTermChoices enumerates the allowed payment terms in days.
var PaymentTermChoices = []int{7, 15, 30, 45, 60}

// ValidTerms reports whether terms is one of the allowed payment terms.
func ValidTerms(terms int) bool {
	for _, t := range PaymentTermChoices {
		if t == terms {
			return true
		}
	}
	return false
}

// Date is a calendar day with no time-of-day component. The zero value
// is the zero time.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a date in yyyy-mm-dd form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invoice: parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// AddDays returns the date n calendar days later, rolling over month and
// year boundaries.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// SameMonth reports whether both dates fall in the same calendar month
// of the same year.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month()
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Invoice is a single receivable owned by the dashboard. All fields are
// immutable after creation except PaymentDate, which is set once when
// the invoice is marked paid.
type Invoice struct {
	ID           string
	CustomerName string
	Amount       decimal.Decimal
	InvoiceDate  Date
	DueDate      Date
	PaymentTerms int
	PaymentDate  *Date
}

// Paid reports whether a payment date has been recorded. The presence
// of PaymentDate is the sole source of truth for paid state.
func (inv Invoice) Paid() bool {
	return inv.PaymentDate != nil
}
