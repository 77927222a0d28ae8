package invoice

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func queryFixture() ([]Invoice, Date) {
	today := NewDate(2024, time.June, 15)
	return []Invoice{
		{
			ID:           "INV-10003",
			CustomerName: "Acme Corp",
			Amount:       decimal.RequireFromString("300.00"),
			InvoiceDate:  NewDate(2024, time.June, 10),
			DueDate:      NewDate(2024, time.July, 10),
		},
		{
			ID:           "INV-10002",
			CustomerName: "Globex",
			Amount:       decimal.RequireFromString("100.00"),
			InvoiceDate:  NewDate(2024, time.May, 1),
			DueDate:      NewDate(2024, time.May, 31),
		},
		{
			ID:           "INV-10001",
			CustomerName: "Initech",
			Amount:       decimal.RequireFromString("200.00"),
			InvoiceDate:  NewDate(2024, time.April, 1),
			DueDate:      NewDate(2024, time.May, 1),
			PaymentDate:  datePtr(NewDate(2024, time.April, 28)),
		},
	}, today
}

func ids(invoices []Invoice) []string {
	out := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, inv.ID)
	}
	return out
}

func TestFilterByStatus(t *testing.T) {
	invoices, today := queryFixture()

	require.Equal(t, []string{"INV-10003"}, ids(Filter(invoices, FilterPending, "", today)))
	require.Equal(t, []string{"INV-10002"}, ids(Filter(invoices, FilterOverdue, "", today)))
	require.Equal(t, []string{"INV-10001"}, ids(Filter(invoices, FilterPaid, "", today)))
	require.Len(t, Filter(invoices, FilterAll, "", today), 3)
	require.Len(t, Filter(invoices, "", "", today), 3)
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	invoices, today := queryFixture()

	require.Equal(t, []string{"INV-10003"}, ids(Filter(invoices, FilterAll, "ACME", today)))
	require.Equal(t, []string{"INV-10002"}, ids(Filter(invoices, FilterAll, "glob", today)))
	require.Equal(t, []string{"INV-10001"}, ids(Filter(invoices, FilterAll, "10001", today)))
}

func TestFilterSearchTrimsWhitespace(t *testing.T) {
	invoices, today := queryFixture()

	require.Len(t, Filter(invoices, FilterAll, "   ", today), 3)
	require.Equal(t, []string{"INV-10003"}, ids(Filter(invoices, FilterAll, "  acme  ", today)))
}

func TestFilterCombinesStatusAndSearch(t *testing.T) {
	invoices, today := queryFixture()

	require.Empty(t, Filter(invoices, FilterOverdue, "acme", today))
	require.Equal(t, []string{"INV-10002"}, ids(Filter(invoices, FilterOverdue, "inv", today)))
}

func TestSortByAmount(t *testing.T) {
	invoices, _ := queryFixture()

	asc := Sort(invoices, SortAmountAsc)
	require.Equal(t, []string{"INV-10002", "INV-10001", "INV-10003"}, ids(asc))

	desc := Sort(invoices, SortAmountDesc)
	require.Equal(t, []string{"INV-10003", "INV-10001", "INV-10002"}, ids(desc))
}

func TestSortByDates(t *testing.T) {
	invoices, _ := queryFixture()

	require.Equal(t, []string{"INV-10001", "INV-10002", "INV-10003"}, ids(Sort(invoices, SortDateAsc)))
	require.Equal(t, []string{"INV-10003", "INV-10002", "INV-10001"}, ids(Sort(invoices, SortDateDesc)))
	require.Equal(t, []string{"INV-10001", "INV-10002", "INV-10003"}, ids(Sort(invoices, SortDueAsc)))
	require.Equal(t, []string{"INV-10003", "INV-10002", "INV-10001"}, ids(Sort(invoices, SortDueDesc)))
}

func TestSortIsStableAndNonDestructive(t *testing.T) {
	amount := decimal.RequireFromString("100.00")
	invoices := []Invoice{
		{ID: "INV-10003", Amount: amount},
		{ID: "INV-10001", Amount: amount},
		{ID: "INV-10002", Amount: amount},
	}

	sorted := Sort(invoices, SortAmountAsc)
	require.Equal(t, []string{"INV-10003", "INV-10001", "INV-10002"}, ids(sorted))
	// input order untouched
	require.Equal(t, []string{"INV-10003", "INV-10001", "INV-10002"}, ids(invoices))
}

func TestSortNoneKeepsOrder(t *testing.T) {
	invoices, _ := queryFixture()
	require.Equal(t, ids(invoices), ids(Sort(invoices, SortNone)))
	require.Equal(t, ids(invoices), ids(Sort(invoices, SortKey("bogus"))))
}

func TestPaginateBounds(t *testing.T) {
	invoices := make([]Invoice, 0, 20)
	for i := 0; i < 20; i++ {
		invoices = append(invoices, Invoice{ID: FormatID(firstID + i)})
	}

	page1, meta := Paginate(invoices, 1)
	require.Len(t, page1, PageSize)
	require.Equal(t, 1, meta.Page)
	require.Equal(t, PageSize, meta.PerPage)
	require.Equal(t, 20, meta.Total)
	require.Equal(t, 2, meta.TotalPages)

	page2, _ := Paginate(invoices, 2)
	require.Len(t, page2, 5)
	require.Equal(t, FormatID(firstID+15), page2[0].ID)

	page3, _ := Paginate(invoices, 3)
	require.Empty(t, page3)

	page0, meta := Paginate(invoices, 0)
	require.Len(t, page0, PageSize)
	require.Equal(t, 1, meta.Page)
}

func TestRunAppliesPipelineInOrder(t *testing.T) {
	today := NewDate(2024, time.June, 15)
	invoices := make([]Invoice, 0, 30)
	for i := 0; i < 30; i++ {
		inv := Invoice{
			ID:           FormatID(firstID + i),
			CustomerName: fmt.Sprintf("Customer %d", i),
			Amount:       decimal.NewFromInt(int64(1000 - i)),
			DueDate:      NewDate(2024, time.July, 1),
		}
		if i%2 == 0 {
			inv.PaymentDate = datePtr(NewDate(2024, time.June, 1))
		}
		invoices = append(invoices, inv)
	}

	page := Run(invoices, Query{Status: FilterPending, Sort: SortAmountAsc, Page: 1}, today)

	require.Equal(t, 15, page.Pagination.Total)
	require.Equal(t, 1, page.Pagination.TotalPages)
	require.Len(t, page.Invoices, 15)
	for i := 1; i < len(page.Invoices); i++ {
		require.False(t, page.Invoices[i].Amount.LessThan(page.Invoices[i-1].Amount))
	}
}
