package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/qistonpe/invoice-dashboard/internal/invoice"
)

// FileStore keeps the snapshot blob in a single JSON file, written
// atomically via a temp file rename.
type FileStore struct {
	logger *slog.Logger
	path   string
	mu     sync.Mutex
}

// NewFileStore builds a FileStore writing to the given path.
func NewFileStore(logger *slog.Logger, path string) *FileStore {
	return &FileStore{logger: logger, path: path}
}

// Load reads the snapshot file. A missing file or an unreadable blob
// yields (nil, nil): the caller falls back to seeding a fresh
// collection.
func (s *FileStore) Load(_ context.Context) ([]invoice.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", s.path, err)
	}

	invoices, err := Decode(blob)
	if err != nil {
		s.logger.Warn("discarding unreadable snapshot", slog.Any("error", err))
		return nil, nil
	}
	return invoices, nil
}

// Save writes the snapshot file.
func (s *FileStore) Save(_ context.Context, invoices []invoice.Invoice) error {
	blob, err := Encode(invoices)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir for %s: %w", s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: rename %s: %w", tmp, err)
	}
	return nil
}
