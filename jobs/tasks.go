// Package jobs contains the background worker, task definitions and the
// scheduled scans that run outside the request path.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskInvoiceOverdueScan is the task type for the daily overdue sweep.
	TaskInvoiceOverdueScan = "invoice:overdue_scan"
)

// OverdueScanPayload configures a single overdue sweep. AsOf overrides
// the evaluation date ("2006-01-02"); empty means today.
type OverdueScanPayload struct {
	AsOf string `json:"asOf,omitempty"`
}

// NewOverdueScanTask constructs an Asynq task.
func NewOverdueScanTask(payload OverdueScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoiceOverdueScan, data), nil
}
