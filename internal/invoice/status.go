package invoice

import "fmt"

// Status enumerates invoice lifecycle states. Status is always derived
// from the invoice's dates at read time and never persisted.
type Status string

const (
	StatusPending Status = "Pending"
	StatusOverdue Status = "Overdue"
	StatusPaid    Status = "Paid"
)

// DaysCategory classifies a DaysInfo descriptor for display styling.
type DaysCategory string

const (
	DaysPaidEarly  DaysCategory = "paid-early"
	DaysPaidLate   DaysCategory = "paid-late"
	DaysPaidOnTime DaysCategory = "paid-on-time"
	DaysOverdue    DaysCategory = "overdue"
	DaysDue        DaysCategory = "due"
)

// DaysInfo is a human-readable day-delta descriptor for an invoice,
// relative to its status. Days holds the absolute delta behind Text.
type DaysInfo struct {
	Text     string
	Category DaysCategory
	Days     int
}

// StatusOn derives the invoice status as of the given day. A recorded
// payment date always wins, regardless of how late or early it was.
func (inv Invoice) StatusOn(today Date) Status {
	if inv.Paid() {
		return StatusPaid
	}
	if inv.DueDate.Before(today.Time) {
		return StatusOverdue
	}
	return StatusPending
}

// DaysInfoOn derives the day-delta descriptor as of the given day.
func (inv Invoice) DaysInfoOn(today Date) DaysInfo {
	switch inv.StatusOn(today) {
	case StatusPaid:
		delta := daysBetween(inv.DueDate, *inv.PaymentDate)
		switch {
		case delta > 0:
			return DaysInfo{Text: fmt.Sprintf("Paid %d days early", delta), Category: DaysPaidEarly, Days: delta}
		case delta < 0:
			return DaysInfo{Text: fmt.Sprintf("Paid %d days late", -delta), Category: DaysPaidLate, Days: -delta}
		default:
			return DaysInfo{Text: "Paid on time", Category: DaysPaidOnTime}
		}
	case StatusOverdue:
		days := daysBetween(today, inv.DueDate)
		return DaysInfo{Text: fmt.Sprintf("Overdue by %d days", days), Category: DaysOverdue, Days: days}
	default:
		days := daysBetween(inv.DueDate, today)
		return DaysInfo{Text: fmt.Sprintf("Due in %d days", days), Category: DaysDue, Days: days}
	}
}

// DueDateFor computes the due date as invoiceDate plus the payment
// terms in calendar days.
func DueDateFor(invoiceDate Date, terms int) Date {
	return invoiceDate.AddDays(terms)
}

const msPerDay = 24 * 60 * 60 * 1000

// daysBetween returns a minus b in whole days. Both dates are already
// midnight-aligned; the millisecond difference is divided by a day and
// rounded up, which keeps the delta stable across DST and fractional
// artifacts.
func daysBetween(a, b Date) int {
	diff := a.UnixMilli() - b.UnixMilli()
	if diff < 0 {
		// ceiling of a negative quotient rounds toward zero
		return -int(-diff / msPerDay)
	}
	return int((diff + msPerDay - 1) / msPerDay)
}
