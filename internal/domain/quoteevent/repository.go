package quoteevent

import "context"

type Repository interface {
	Append(ctx context.Context, e *QuoteEvent) error

	// ListByQuoteID returns events oldest-first.
	ListByQuoteID(ctx context.Context, quoteID string) ([]QuoteEvent, error)
}
