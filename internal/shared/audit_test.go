package shared

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestAuditLoggerPushesToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	audit := NewAuditLogger(logger, client)

	audit.Record(context.Background(), "invoice.add", "INV-10001", map[string]any{"amount": "100.00"})
	audit.Record(context.Background(), "invoice.mark_paid", "INV-10001", nil)

	entries, err := mr.List("qistonpe:audit")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// LPush puts the newest event first
	var event AuditEvent
	require.NoError(t, json.Unmarshal([]byte(entries[0]), &event))
	require.Equal(t, "invoice.mark_paid", event.Action)
	require.Equal(t, "invoice", event.Entity)
	require.Equal(t, "INV-10001", event.EntityID)
	require.NotEmpty(t, event.ID)
	require.False(t, event.At.IsZero())
}

func TestAuditLoggerWithoutRedis(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	audit := NewAuditLogger(logger, nil)

	audit.Record(context.Background(), "invoice.add", "INV-10001", nil)
}

func TestNilAuditLoggerIsSafe(t *testing.T) {
	var audit *AuditLogger
	audit.Record(context.Background(), "invoice.add", "INV-10001", nil)
}

func TestNewPagination(t *testing.T) {
	meta := NewPagination(2, 15, 31)
	require.Equal(t, 2, meta.Page)
	require.Equal(t, 15, meta.PerPage)
	require.Equal(t, 31, meta.Total)
	require.Equal(t, 3, meta.TotalPages)

	meta = NewPagination(0, 0, 0)
	require.Equal(t, 1, meta.Page)
	require.Equal(t, 15, meta.PerPage)
	require.Zero(t, meta.TotalPages)
}
