package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func datePtr(d Date) *Date {
	return &d
}

func TestStatusPaidWinsOverDueDate(t *testing.T) {
	inv := Invoice{
		DueDate:     NewDate(2024, time.January, 31),
		PaymentDate: datePtr(NewDate(2024, time.March, 1)),
	}
	today := NewDate(2024, time.February, 5)

	require.Equal(t, StatusPaid, inv.StatusOn(today))
}

func TestStatusOverdueAfterDueDate(t *testing.T) {
	inv := Invoice{
		InvoiceDate: NewDate(2024, time.January, 1),
		DueDate:     DueDateFor(NewDate(2024, time.January, 1), 30),
	}
	require.Equal(t, NewDate(2024, time.January, 31), inv.DueDate)

	today := NewDate(2024, time.February, 5)
	require.Equal(t, StatusOverdue, inv.StatusOn(today))

	info := inv.DaysInfoOn(today)
	require.Equal(t, "Overdue by 5 days", info.Text)
	require.Equal(t, DaysOverdue, info.Category)
	require.Equal(t, 5, info.Days)
}

func TestStatusPendingOnDueDate(t *testing.T) {
	due := NewDate(2024, time.January, 31)
	inv := Invoice{DueDate: due}

	require.Equal(t, StatusPending, inv.StatusOn(due))

	info := inv.DaysInfoOn(due)
	require.Equal(t, "Due in 0 days", info.Text)
	require.Equal(t, DaysDue, info.Category)
}

func TestDaysInfoPaidEarly(t *testing.T) {
	inv := Invoice{
		DueDate:     NewDate(2024, time.January, 31),
		PaymentDate: datePtr(NewDate(2024, time.January, 25)),
	}

	info := inv.DaysInfoOn(NewDate(2024, time.February, 10))
	require.Equal(t, "Paid 6 days early", info.Text)
	require.Equal(t, DaysPaidEarly, info.Category)
	require.Equal(t, 6, info.Days)
}

func TestDaysInfoPaidLate(t *testing.T) {
	inv := Invoice{
		DueDate:     NewDate(2024, time.January, 31),
		PaymentDate: datePtr(NewDate(2024, time.February, 3)),
	}

	info := inv.DaysInfoOn(NewDate(2024, time.February, 10))
	require.Equal(t, "Paid 3 days late", info.Text)
	require.Equal(t, DaysPaidLate, info.Category)
}

func TestDaysInfoPaidOnTime(t *testing.T) {
	due := NewDate(2024, time.January, 31)
	inv := Invoice{
		DueDate:     due,
		PaymentDate: datePtr(due),
	}

	info := inv.DaysInfoOn(NewDate(2024, time.February, 10))
	require.Equal(t, "Paid on time", info.Text)
	require.Equal(t, DaysPaidOnTime, info.Category)
}

func TestDueInDaysMatchesTerms(t *testing.T) {
	for _, terms := range PaymentTermChoices {
		invoiceDate := NewDate(2024, time.June, 1)
		inv := Invoice{
			InvoiceDate:  invoiceDate,
			DueDate:      DueDateFor(invoiceDate, terms),
			PaymentTerms: terms,
		}

		info := inv.DaysInfoOn(invoiceDate)
		require.Equal(t, DaysDue, info.Category)
		require.Equal(t, terms, info.Days)
	}
}

func TestDueDateRollsOverYearBoundary(t *testing.T) {
	due := DueDateFor(NewDate(2024, time.December, 20), 30)
	require.Equal(t, NewDate(2025, time.January, 19), due)
}

func TestValidTerms(t *testing.T) {
	require.True(t, ValidTerms(30))
	require.False(t, ValidTerms(31))
	require.False(t, ValidTerms(0))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, NewDate(2024, time.February, 29), d)

	_, err = ParseDate("2024-13-01")
	require.Error(t, err)

	_, err = ParseDate("")
	require.Error(t, err)
}
