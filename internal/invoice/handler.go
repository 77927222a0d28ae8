package invoice

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"golang.org/x/sync/singleflight"

	"github.com/qistonpe/invoice-dashboard/internal/observability"
	"github.com/qistonpe/invoice-dashboard/internal/platform/httpx"
)

// Handler exposes the dashboard's invoice endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
	metrics *observability.Metrics
	summary singleflight.Group
}

// NewHandler builds a Handler instance. metrics may be nil.
func NewHandler(logger *slog.Logger, service *Service, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, service: service, metrics: metrics}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/summary", h.showSummary)
	r.Post("/", h.create)
	r.Post("/bulk-pay", h.bulkPay)
	r.Post("/{id}/pay", h.markPaid)

	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/export.csv", h.exportCSV)
	})
}

// list returns one page of the filtered, sorted collection.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)
	today := Today()
	page := Run(h.service.Invoices(), q, today)
	httpx.JSON(w, http.StatusOK, NewPageView(page, today))
}

// showSummary returns the portfolio aggregates. Concurrent requests for
// the same day collapse into a single computation; the key carries the
// date so a day rollover never serves yesterday's result.
func (h *Handler) showSummary(w http.ResponseWriter, r *http.Request) {
	today := Today()
	result, err, _ := h.summary.Do("summary:"+today.String(), func() (any, error) {
		summary := Summarize(h.service.Invoices(), today)
		h.observePortfolio(summary)
		return NewSummaryView(summary), nil
	})
	if err != nil {
		h.logger.Error("compute summary", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

// create adds a new invoice from the submitted form fields.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var input AddInvoiceInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}

	inv, err := h.service.Add(r.Context(), input)
	if err != nil {
		var fieldErrs FieldErrors
		if errors.As(err, &fieldErrs) {
			httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
			return
		}
		h.logger.Error("add invoice", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, NewInvoiceView(*inv, Today()))
}

type payRequest struct {
	PaymentDate string `json:"paymentDate"`
}

// markPaid records a payment date on one invoice. An unknown id is a
// benign no-op, so the response is 204 either way.
func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req payRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	paymentDate, ok := h.parsePaymentDate(w, req.PaymentDate)
	if !ok {
		return
	}

	h.service.MarkPaid(r.Context(), id, paymentDate)
	w.WriteHeader(http.StatusNoContent)
}

type bulkPayRequest struct {
	IDs         []string `json:"ids"`
	PaymentDate string   `json:"paymentDate"`
}

// bulkPay marks every matching id paid in a single persisted
// transition.
func (h *Handler) bulkPay(w http.ResponseWriter, r *http.Request) {
	var req bulkPayRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	paymentDate, ok := h.parsePaymentDate(w, req.PaymentDate)
	if !ok {
		return
	}

	updated := h.service.BulkMarkPaid(r.Context(), req.IDs, paymentDate)
	httpx.JSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// exportCSV streams the filtered-but-unpaginated collection as a CSV
// download named with the current date.
func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	q := queryFromRequest(r)
	today := Today()
	filtered := Sort(Filter(h.service.Invoices(), q.Status, q.Search, today), q.Sort)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename(today)))
	if err := WriteCSV(w, filtered, today); err != nil {
		h.logger.Error("export csv", slog.Any("error", err))
	}
}

func (h *Handler) parsePaymentDate(w http.ResponseWriter, raw string) (Date, bool) {
	if raw == "" {
		return Today(), true
	}
	paymentDate, err := ParseDate(raw)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "paymentDate must be a valid date")
		return Date{}, false
	}
	return paymentDate, true
}

func (h *Handler) observePortfolio(summary Summary) {
	if h.metrics == nil {
		return
	}
	outstanding, _ := summary.TotalOutstanding.Float64()
	h.metrics.ObservePortfolio(summary.StatusCounts[StatusOverdue], outstanding)
}

func queryFromRequest(r *http.Request) Query {
	params := r.URL.Query()
	page, _ := strconv.Atoi(params.Get("page"))
	status := StatusFilter(params.Get("status"))
	if status == "" {
		status = FilterAll
	}
	return Query{
		Status: status,
		Search: params.Get("q"),
		Sort:   SortKey(params.Get("sort")),
		Page:   page,
	}
}
