// Package shared holds cross-cutting helpers used by the dashboard's
// handlers and services.
package shared

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	auditKey  = "qistonpe:audit"
	auditKeep = 1000
)

// AuditEvent captures a single dashboard mutation.
type AuditEvent struct {
	ID       string         `json:"id"`
	Action   string         `json:"action"`
	Entity   string         `json:"entity"`
	EntityID string         `json:"entityId"`
	Meta     map[string]any `json:"meta,omitempty"`
	At       time.Time      `json:"at"`
}

// AuditLogger records mutation events. Events are always logged; when a
// Redis client is configured they are additionally pushed onto a capped
// list so recent history survives restarts. Recording is best effort
// and never fails the mutation.
type AuditLogger struct {
	logger *slog.Logger
	client *redis.Client
}

// NewAuditLogger returns an AuditLogger. client may be nil.
func NewAuditLogger(logger *slog.Logger, client *redis.Client) *AuditLogger {
	return &AuditLogger{logger: logger, client: client}
}

// Record emits an audit event for an action on an invoice.
func (l *AuditLogger) Record(ctx context.Context, action, entityID string, meta map[string]any) {
	if l == nil {
		return
	}
	event := AuditEvent{
		ID:       uuid.NewString(),
		Action:   action,
		Entity:   "invoice",
		EntityID: entityID,
		Meta:     meta,
		At:       time.Now().UTC(),
	}
	if l.logger != nil {
		l.logger.Info("audit",
			slog.String("event_id", event.ID),
			slog.String("action", event.Action),
			slog.String("entity_id", event.EntityID),
		)
	}
	if l.client == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := l.client.LPush(ctx, auditKey, payload).Err(); err != nil {
		if l.logger != nil {
			l.logger.Warn("audit push", slog.Any("error", err))
		}
		return
	}
	_ = l.client.LTrim(ctx, auditKey, 0, auditKeep-1).Err()
}
