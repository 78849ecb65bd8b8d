package mysql

import (
	"context"
	"errors"
	"time"

	quoteDomain "quote-workflow/internal/domain/quote"

	"gorm.io/gorm"
)

// workflowColumns are the only columns this service ever writes on quotes.
var workflowColumns = []string{
	"owner_id", "admin_reviewer_id", "finance_reviewer_id",
	"workflow_state", "status",
	"admin_decision_status", "admin_decision_notes", "admin_decision_by", "admin_decision_at",
	"finance_decision_status", "finance_decision_notes", "finance_decision_by", "finance_decision_at",
	"finance_threshold_snapshot", "finance_margin_breached", "requires_finance_approval",
	"submitted_at", "submitted_by_email", "submitted_by_name",
	"updated_at",
}

var reviewerColumnByLane = map[quoteDomain.Lane]string{
	quoteDomain.LaneAdmin:   "admin_reviewer_id",
	quoteDomain.LaneFinance: "finance_reviewer_id",
}

type QuoteRepository struct{ db *gorm.DB }

func NewQuoteRepository(db *gorm.DB) *QuoteRepository { return &QuoteRepository{db: db} }

var _ quoteDomain.Repository = (*QuoteRepository)(nil)
var _ quoteDomain.LaneClaimer = (*QuoteRepository)(nil)

func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*quoteDomain.Quote, error) {
	var out quoteDomain.Quote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, quoteDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *QuoteRepository) UpdateFromState(ctx context.Context, q *quoteDomain.Quote, expected quoteDomain.State) error {
	if q.UpdatedAt.IsZero() {
		q.UpdatedAt = time.Now().UTC()
	}
	res := r.db.WithContext(ctx).
		Model(&quoteDomain.Quote{}).
		Where("id = ? AND workflow_state = ?", q.ID, expected).
		Select(workflowColumns).
		Updates(q)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrConflict(ctx, q.ID)
	}
	return nil
}

// ClaimLane is a single compare-and-swap UPDATE: the WHERE clause carries the
// claim precondition, so of two concurrent claimers only one matches a row.
func (r *QuoteRepository) ClaimLane(ctx context.Context, id string, lane quoteDomain.Lane, reviewerID string) (*quoteDomain.Quote, error) {
	rule, ok := quoteDomain.ClaimRuleFor(lane)
	if !ok {
		return nil, quoteDomain.ErrStateConflict
	}
	col := reviewerColumnByLane[lane]

	q := r.db.WithContext(ctx).
		Model(&quoteDomain.Quote{}).
		Where("id = ? AND workflow_state = ?", id, rule.From)
	if rule.ExclusiveOnReviewer {
		q = q.Where("("+col+" IS NULL OR "+col+" = ?)", reviewerID)
	}
	res := q.Updates(map[string]any{
		col:              reviewerID,
		"workflow_state": rule.To,
		// the claimed quote always has a reviewer on the lane being claimed
		"status":     quoteDomain.LegacyStatus(rule.To, lane == quoteDomain.LaneFinance),
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, r.missOrConflict(ctx, id)
	}
	return r.GetByID(ctx, id)
}

func (r *QuoteRepository) missOrConflict(ctx context.Context, id string) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&quoteDomain.Quote{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return quoteDomain.ErrNotFound
	}
	return quoteDomain.ErrStateConflict
}
