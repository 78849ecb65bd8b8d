package mysql

import (
	"context"

	eventDomain "quote-workflow/internal/domain/quoteevent"

	"gorm.io/gorm"
)

type QuoteEventRepository struct{ db *gorm.DB }

func NewQuoteEventRepository(db *gorm.DB) *QuoteEventRepository {
	return &QuoteEventRepository{db: db}
}

// Append is the only write; there is no update or delete path for events.
func (r *QuoteEventRepository) Append(ctx context.Context, e *eventDomain.QuoteEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *QuoteEventRepository) ListByQuoteID(ctx context.Context, quoteID string) ([]eventDomain.QuoteEvent, error) {
	var out []eventDomain.QuoteEvent
	err := r.db.WithContext(ctx).
		Where("quote_id = ?", quoteID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
