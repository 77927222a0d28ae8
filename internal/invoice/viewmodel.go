package invoice

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/qistonpe/invoice-dashboard/internal/shared"
)

// displayPrinter localizes display amounts the way the dashboard's
// users expect (Indian digit grouping).
var displayPrinter = message.NewPrinter(language.MustParse("en-IN"))

// DaysInfoView is the JSON shape of a DaysInfo descriptor.
type DaysInfoView struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// InvoiceView is the JSON shape of a single invoice row, including the
// derived fields the dashboard renders.
type InvoiceView struct {
	ID            string       `json:"id"`
	CustomerName  string       `json:"customerName"`
	Amount        string       `json:"amount"`
	AmountDisplay string       `json:"amountDisplay"`
	InvoiceDate   string       `json:"invoiceDate"`
	DueDate       string       `json:"dueDate"`
	PaymentTerms  int          `json:"paymentTerms"`
	PaymentDate   *string      `json:"paymentDate"`
	Status        string       `json:"status"`
	DaysInfo      DaysInfoView `json:"daysInfo"`
	Selectable    bool         `json:"selectable"`
}

// PageView is the JSON shape of one dashboard page.
type PageView struct {
	Invoices   []InvoiceView     `json:"invoices"`
	Pagination shared.Pagination `json:"pagination"`
}

// SummaryView is the JSON shape of the dashboard summary cards and the
// status chart.
type SummaryView struct {
	TotalOutstanding           string         `json:"totalOutstanding"`
	TotalOutstandingDisplay    string         `json:"totalOutstandingDisplay"`
	TotalOverdue               string         `json:"totalOverdue"`
	TotalOverdueDisplay        string         `json:"totalOverdueDisplay"`
	TotalPaidThisMonth         string         `json:"totalPaidThisMonth"`
	TotalPaidThisMonthDisplay  string         `json:"totalPaidThisMonthDisplay"`
	AveragePaymentDelay        int            `json:"averagePaymentDelay"`
	StatusCounts               map[string]int `json:"statusCounts"`
}

// NewInvoiceView derives the view model for one invoice as of today.
func NewInvoiceView(inv Invoice, today Date) InvoiceView {
	info := inv.DaysInfoOn(today)
	view := InvoiceView{
		ID:            inv.ID,
		CustomerName:  inv.CustomerName,
		Amount:        inv.Amount.StringFixed(2),
		AmountDisplay: FormatAmount(inv.Amount),
		InvoiceDate:   inv.InvoiceDate.String(),
		DueDate:       inv.DueDate.String(),
		PaymentTerms:  inv.PaymentTerms,
		Status:        string(inv.StatusOn(today)),
		DaysInfo:      DaysInfoView{Text: info.Text, Category: string(info.Category)},
		Selectable:    !inv.Paid(),
	}
	if inv.Paid() {
		s := inv.PaymentDate.String()
		view.PaymentDate = &s
	}
	return view
}

// NewPageView derives view models for a query result page.
func NewPageView(page Page, today Date) PageView {
	views := make([]InvoiceView, 0, len(page.Invoices))
	for _, inv := range page.Invoices {
		views = append(views, NewInvoiceView(inv, today))
	}
	return PageView{Invoices: views, Pagination: page.Pagination}
}

// NewSummaryView derives the view model for a portfolio summary.
func NewSummaryView(s Summary) SummaryView {
	counts := make(map[string]int, len(s.StatusCounts))
	for status, n := range s.StatusCounts {
		counts[string(status)] = n
	}
	return SummaryView{
		TotalOutstanding:          s.TotalOutstanding.StringFixed(2),
		TotalOutstandingDisplay:   FormatAmount(s.TotalOutstanding),
		TotalOverdue:              s.TotalOverdue.StringFixed(2),
		TotalOverdueDisplay:       FormatAmount(s.TotalOverdue),
		TotalPaidThisMonth:        s.TotalPaidThisMonth.StringFixed(2),
		TotalPaidThisMonthDisplay: FormatAmount(s.TotalPaidThisMonth),
		AveragePaymentDelay:       s.AveragePaymentDelay,
		StatusCounts:              counts,
	}
}

// FormatAmount renders an amount for display with the rupee sign and
// locale digit grouping.
func FormatAmount(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return displayPrinter.Sprintf("₹%.2f", f)
}
