package invoice

import "sort"

// TableState tracks the dashboard table's filter, sort, page and
// multi-select state. Changing any filter or sort parameter resets the
// page to 1 and clears the selection, so bulk actions never operate on
// rows that are no longer visible.
type TableState struct {
	query    Query
	selected map[string]struct{}
}

// NewTableState returns a table showing page 1 of all invoices.
func NewTableState() *TableState {
	return &TableState{
		query:    Query{Status: FilterAll, Page: 1},
		selected: make(map[string]struct{}),
	}
}

// Query returns the current list parameters.
func (s *TableState) Query() Query {
	return s.query
}

// SetStatusFilter switches the status filter, resetting page and
// selection.
func (s *TableState) SetStatusFilter(f StatusFilter) {
	if f == "" {
		f = FilterAll
	}
	if f == s.query.Status {
		return
	}
	s.query.Status = f
	s.reset()
}

// SetSearch replaces the free-text query, resetting page and selection.
func (s *TableState) SetSearch(q string) {
	if q == s.query.Search {
		return
	}
	s.query.Search = q
	s.reset()
}

// SetSort switches the sort key, resetting page and selection.
func (s *TableState) SetSort(k SortKey) {
	if k == s.query.Sort {
		return
	}
	s.query.Sort = k
	s.reset()
}

// SetPage moves to the given page without touching the selection.
func (s *TableState) SetPage(p int) {
	if p <= 0 {
		p = 1
	}
	s.query.Page = p
}

func (s *TableState) reset() {
	s.query.Page = 1
	s.ClearSelection()
}

// Toggle flips the selection of a single invoice. Paid invoices are
// never selectable.
func (s *TableState) Toggle(inv Invoice) {
	if inv.Paid() {
		return
	}
	if _, ok := s.selected[inv.ID]; ok {
		delete(s.selected, inv.ID)
		return
	}
	s.selected[inv.ID] = struct{}{}
}

// ToggleSelectAll operates on the unpaid invoices of the current page
// only: if every one of them is already selected it deselects them,
// otherwise it selects the remainder. A mixed selection therefore
// counts as "not all selected".
func (s *TableState) ToggleSelectAll(pageInvoices []Invoice) {
	unpaid := make([]string, 0, len(pageInvoices))
	for _, inv := range pageInvoices {
		if !inv.Paid() {
			unpaid = append(unpaid, inv.ID)
		}
	}
	if len(unpaid) == 0 {
		return
	}
	if s.allSelected(unpaid) {
		for _, id := range unpaid {
			delete(s.selected, id)
		}
		return
	}
	for _, id := range unpaid {
		s.selected[id] = struct{}{}
	}
}

// AllUnpaidSelected reports whether every unpaid invoice on the page is
// currently selected. False when the page has no unpaid invoices.
func (s *TableState) AllUnpaidSelected(pageInvoices []Invoice) bool {
	unpaid := make([]string, 0, len(pageInvoices))
	for _, inv := range pageInvoices {
		if !inv.Paid() {
			unpaid = append(unpaid, inv.ID)
		}
	}
	return len(unpaid) > 0 && s.allSelected(unpaid)
}

func (s *TableState) allSelected(ids []string) bool {
	for _, id := range ids {
		if _, ok := s.selected[id]; !ok {
			return false
		}
	}
	return true
}

// IsSelected reports whether the invoice id is selected.
func (s *TableState) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Selected returns the selected ids in lexical order.
func (s *TableState) Selected() []string {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectedCount returns the number of selected invoices.
func (s *TableState) SelectedCount() int {
	return len(s.selected)
}

// ClearSelection drops the entire selection, typically after a bulk
// action completes.
func (s *TableState) ClearSelection() {
	s.selected = make(map[string]struct{})
}
