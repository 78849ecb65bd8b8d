package eventmock

import (
	"context"
	"sync"

	domain "quote-workflow/internal/domain/quoteevent"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock. Without AppendFn it records appended
// events in Events so tests can assert on the audit trail.
type Repo struct {
	AppendFn        func(ctx context.Context, e *domain.QuoteEvent) error
	ListByQuoteIDFn func(ctx context.Context, quoteID string) ([]domain.QuoteEvent, error)

	mu     sync.Mutex
	Events []domain.QuoteEvent
}

func (m *Repo) Append(ctx context.Context, e *domain.QuoteEvent) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, *e)
	return nil
}

func (m *Repo) ListByQuoteID(ctx context.Context, quoteID string) ([]domain.QuoteEvent, error) {
	if m.ListByQuoteIDFn != nil {
		return m.ListByQuoteIDFn(ctx, quoteID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.QuoteEvent
	for _, e := range m.Events {
		if e.QuoteID == quoteID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Types returns the recorded event types in order.
func (m *Repo) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e.EventType)
	}
	return out
}
