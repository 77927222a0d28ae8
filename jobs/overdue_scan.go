package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"github.com/qistonpe/invoice-dashboard/internal/invoice"
	jobmetrics "github.com/qistonpe/invoice-dashboard/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// OverdueScanJob sweeps the stored collection and reports every invoice
// past its due date.
type OverdueScanJob struct {
	Store   invoice.SnapshotStore
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() invoice.Date
}

// NewOverdueScanJob initialises the overdue scan handler.
func NewOverdueScanJob(store invoice.SnapshotStore, logger *slog.Logger, metrics *jobmetrics.Metrics) *OverdueScanJob {
	return &OverdueScanJob{
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
		clock:   invoice.Today,
	}
}

// Handle executes the overdue scan logic.
func (j *OverdueScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("overdue scan: handler not configured")
	}
	var payload OverdueScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	asOf := j.today()
	if payload.AsOf != "" {
		parsed, err := invoice.ParseDate(payload.AsOf)
		if err != nil {
			return asynq.SkipRetry
		}
		asOf = parsed
	}

	start := time.Now()
	tracker := j.metrics().Track(TaskInvoiceOverdueScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("as_of", asOf.String()))
	logger.Info("starting overdue scan")

	report, err := j.scan(ctx, asOf)
	if err != nil {
		resultErr = err
		logger.Error("scan failed", slog.Any("error", err))
		return resultErr
	}

	for _, overdue := range report.Invoices {
		logger.Warn("invoice overdue",
			slog.String("id", overdue.ID),
			slog.String("customer", overdue.CustomerName),
			slog.String("amount", overdue.Amount.StringFixed(2)),
			slog.Int("days_overdue", overdue.DaysOverdue),
		)
	}
	j.metrics().AddOverdue(len(report.Invoices))

	logger.Info("completed overdue scan",
		slog.Int("scanned", report.Scanned),
		slog.Int("overdue", len(report.Invoices)),
		slog.String("overdue_amount", report.OverdueAmount.StringFixed(2)),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

type overdueInvoice struct {
	ID           string
	CustomerName string
	Amount       decimal.Decimal
	DaysOverdue  int
}

type overdueReport struct {
	Scanned       int
	Invoices      []overdueInvoice
	OverdueAmount decimal.Decimal
}

func (j *OverdueScanJob) scan(ctx context.Context, asOf invoice.Date) (overdueReport, error) {
	if j.Store == nil {
		return overdueReport{}, errors.New("overdue scan: store not configured")
	}
	invoices, err := j.Store.Load(ctx)
	if err != nil {
		return overdueReport{}, err
	}

	report := overdueReport{Scanned: len(invoices), OverdueAmount: decimal.Zero}
	for _, inv := range invoices {
		if inv.StatusOn(asOf) != invoice.StatusOverdue {
			continue
		}
		info := inv.DaysInfoOn(asOf)
		days := 0
		if info.Category == invoice.DaysOverdue {
			days = info.Days
		}
		report.Invoices = append(report.Invoices, overdueInvoice{
			ID:           inv.ID,
			CustomerName: inv.CustomerName,
			Amount:       inv.Amount,
			DaysOverdue:  days,
		})
		report.OverdueAmount = report.OverdueAmount.Add(inv.Amount)
	}
	return report, nil
}

func (j *OverdueScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskInvoiceOverdueScan))
	}
	return slog.Default().With(slog.String("job", TaskInvoiceOverdueScan))
}

func (j *OverdueScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *OverdueScanJob) today() invoice.Date {
	if j.clock != nil {
		return j.clock()
	}
	return invoice.Today()
}
