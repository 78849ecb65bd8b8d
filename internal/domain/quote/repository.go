package quote

import "context"

type Repository interface {
	// GetByID returns ErrNotFound when no row matches.
	GetByID(ctx context.Context, id string) (*Quote, error)

	// UpdateFromState writes every workflow column of q, but only if the row
	// is still in expected. Returns ErrStateConflict when nothing matched.
	UpdateFromState(ctx context.Context, q *Quote, expected State) error
}

// LaneClaimer is implemented by stores that can claim a lane in a single
// conditional update. Stores without it get the non-exclusive fallback.
type LaneClaimer interface {
	// ClaimLane applies ClaimRuleFor(lane) atomically for reviewerID and
	// returns the updated row, or ErrStateConflict when the rule did not match.
	ClaimLane(ctx context.Context, id string, lane Lane, reviewerID string) (*Quote, error)
}
