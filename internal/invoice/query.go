package invoice

import (
	"sort"
	"strings"

	"github.com/qistonpe/invoice-dashboard/internal/shared"
)

// PageSize is the fixed number of invoices per dashboard page.
const PageSize = 15

// StatusFilter selects invoices by derived status. The zero value is
// treated as FilterAll.
type StatusFilter string

const (
	FilterAll     StatusFilter = "All"
	FilterPending StatusFilter = StatusFilter(StatusPending)
	FilterOverdue StatusFilter = StatusFilter(StatusOverdue)
	FilterPaid    StatusFilter = StatusFilter(StatusPaid)
)

// SortKey selects the ordering applied after filtering. SortNone keeps
// the collection's existing order.
type SortKey string

const (
	SortNone       SortKey = ""
	SortAmountAsc  SortKey = "amount-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortDateAsc    SortKey = "date-asc"
	SortDateDesc   SortKey = "date-desc"
	SortDueAsc     SortKey = "due-asc"
	SortDueDesc    SortKey = "due-desc"
)

// Query holds the user-supplied list parameters.
type Query struct {
	Status StatusFilter
	Search string
	Sort   SortKey
	Page   int
}

// Page is one bounded slice of the filtered and sorted collection.
type Page struct {
	Invoices   []Invoice
	Pagination shared.Pagination
}

// Filter keeps invoices matching the status filter and the free-text
// query. The text match is a case-insensitive substring test against
// the id or the customer name; a blank query keeps everything.
func Filter(invoices []Invoice, status StatusFilter, search string, today Date) []Invoice {
	result := make([]Invoice, 0, len(invoices))
	query := strings.ToLower(strings.TrimSpace(search))
	for _, inv := range invoices {
		if status != "" && status != FilterAll && inv.StatusOn(today) != Status(status) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(inv.ID), query) &&
			!strings.Contains(strings.ToLower(inv.CustomerName), query) {
			continue
		}
		result = append(result, inv)
	}
	return result
}

// Sort orders a copy of the invoices by the given key. The sort is
// stable; SortNone returns the copy unchanged.
func Sort(invoices []Invoice, key SortKey) []Invoice {
	result := append([]Invoice(nil), invoices...)
	var less func(a, b Invoice) bool
	switch key {
	case SortAmountAsc:
		less = func(a, b Invoice) bool { return a.Amount.LessThan(b.Amount) }
	case SortAmountDesc:
		less = func(a, b Invoice) bool { return b.Amount.LessThan(a.Amount) }
	case SortDateAsc:
		less = func(a, b Invoice) bool { return a.InvoiceDate.Before(b.InvoiceDate.Time) }
	case SortDateDesc:
		less = func(a, b Invoice) bool { return b.InvoiceDate.Before(a.InvoiceDate.Time) }
	case SortDueAsc:
		less = func(a, b Invoice) bool { return a.DueDate.Before(b.DueDate.Time) }
	case SortDueDesc:
		less = func(a, b Invoice) bool { return b.DueDate.Before(a.DueDate.Time) }
	default:
		return result
	}
	sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result
}

// Paginate slices the invoices to the requested page. Pages are
// 1-based; out-of-range pages yield an empty slice.
func Paginate(invoices []Invoice, page int) ([]Invoice, shared.Pagination) {
	meta := shared.NewPagination(page, PageSize, len(invoices))
	start := (meta.Page - 1) * meta.PerPage
	if start >= len(invoices) {
		return []Invoice{}, meta
	}
	end := start + meta.PerPage
	if end > len(invoices) {
		end = len(invoices)
	}
	return append([]Invoice(nil), invoices[start:end]...), meta
}

// Run applies the full pipeline in order: filter, then sort, then
// paginate.
func Run(invoices []Invoice, q Query, today Date) Page {
	filtered := Sort(Filter(invoices, q.Status, q.Search, today), q.Sort)
	pageInvoices, meta := Paginate(filtered, q.Page)
	return Page{Invoices: pageInvoices, Pagination: meta}
}
