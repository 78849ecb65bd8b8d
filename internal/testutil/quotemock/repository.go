package quotemock

import (
	"context"

	domain "quote-workflow/internal/domain/quote"
)

var _ domain.Repository = (*Repo)(nil)
var _ domain.LaneClaimer = (*ClaimingRepo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository but NOT
// domain.LaneClaimer, so callers exercise the non-atomic claim path.
type Repo struct {
	GetByIDFn         func(ctx context.Context, id string) (*domain.Quote, error)
	UpdateFromStateFn func(ctx context.Context, q *domain.Quote, expected domain.State) error
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) UpdateFromState(ctx context.Context, q *domain.Quote, expected domain.State) error {
	if m.UpdateFromStateFn != nil {
		return m.UpdateFromStateFn(ctx, q, expected)
	}
	return nil
}

// ClaimingRepo adds the atomic claim primitive.
type ClaimingRepo struct {
	Repo
	ClaimLaneFn func(ctx context.Context, id string, lane domain.Lane, reviewerID string) (*domain.Quote, error)
}

func (m *ClaimingRepo) ClaimLane(ctx context.Context, id string, lane domain.Lane, reviewerID string) (*domain.Quote, error) {
	if m.ClaimLaneFn != nil {
		return m.ClaimLaneFn(ctx, id, lane, reviewerID)
	}
	return nil, context.Canceled
}
