// Package testutil provides test-only helpers, currently a slog handler
// that buffers records so tests can assert on emitted diagnostics.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log record.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler buffers log records for inspection.
type CaptureHandler struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLogger returns a logger writing into a fresh CaptureHandler.
func NewLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	t.Helper()
	h := &CaptureHandler{}
	return slog.New(h), h
}

// Handle implements slog.Handler.
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	return nil
}

// Enabled implements slog.Handler. Tests capture every level.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool { return true }

// WithAttrs implements slog.Handler.
func (h *CaptureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

// WithGroup implements slog.Handler.
func (h *CaptureHandler) WithGroup(string) slog.Handler { return h }

// Records returns a copy of the captured records.
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(h.records))
	copy(out, h.records)
	return out
}

// ContainsMessage reports whether any record's message contains substr.
func (h *CaptureHandler) ContainsMessage(substr string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if strings.Contains(r.Message, substr) {
			return true
		}
	}
	return false
}

// CountAtLevel returns the number of records at the given level.
func (h *CaptureHandler) CountAtLevel(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}
