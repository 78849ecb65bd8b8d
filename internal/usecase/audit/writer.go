package audit

import (
	"context"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/domain/quoteevent"
	"quote-workflow/internal/infrastructure/metrics"
	"quote-workflow/pkg/apperr"
	"quote-workflow/pkg/id"

	"github.com/rs/zerolog"
)

// Entry is one state transition to record.
type Entry struct {
	QuoteID       string
	EventType     string
	Actor         profile.RequestContext
	PreviousState string
	NewState      string
	Payload       map[string]any
}

type Writer struct {
	events  quoteevent.Repository
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewWriter(events quoteevent.Repository, m *metrics.Metrics, log zerolog.Logger) *Writer {
	return &Writer{events: events, metrics: m, log: log}
}

// Append records e. A failed write is logged and dropped; the transition it
// describes has already committed.
func (w *Writer) Append(ctx context.Context, e Entry) {
	payload := e.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	ev := &quoteevent.QuoteEvent{
		EventID:       id.NewEventID(),
		QuoteID:       e.QuoteID,
		EventType:     e.EventType,
		ActorID:       e.Actor.UserID,
		ActorRole:     string(e.Actor.Role),
		PreviousState: e.PreviousState,
		NewState:      e.NewState,
		Payload:       payload,
	}
	if err := w.events.Append(ctx, ev); err != nil {
		w.metrics.IncSideEffectFailure("audit")
		w.log.Warn().Err(err).
			Str("quote_id", e.QuoteID).
			Str("event_type", e.EventType).
			Msg("audit: failed to append quote event")
	}
}

// List returns the audit trail of a quote, oldest first.
func (w *Writer) List(ctx context.Context, quoteID string) ([]quoteevent.QuoteEvent, error) {
	events, err := w.events.ListByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if events == nil {
		events = []quoteevent.QuoteEvent{}
	}
	return events, nil
}
