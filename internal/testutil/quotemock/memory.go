package quotemock

import (
	"context"
	"sync"

	domain "quote-workflow/internal/domain/quote"
)

// Memory is an in-memory quote store with the same conditional-write
// semantics as the gorm repository. Rows are copied in and out.
type Memory struct {
	mu     sync.Mutex
	quotes map[string]domain.Quote
	Writes int
}

func NewMemory(quotes ...domain.Quote) *Memory {
	m := &Memory{quotes: map[string]domain.Quote{}}
	for _, q := range quotes {
		m.quotes[q.ID] = q
	}
	return m
}

var _ domain.Repository = (*Memory)(nil)
var _ domain.LaneClaimer = (*Memory)(nil)

func (m *Memory) GetByID(_ context.Context, id string) (*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &q, nil
}

func (m *Memory) UpdateFromState(_ context.Context, q *domain.Quote, expected domain.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.quotes[q.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.WorkflowState != expected {
		return domain.ErrStateConflict
	}
	m.quotes[q.ID] = *q
	m.Writes++
	return nil
}

func (m *Memory) ClaimLane(_ context.Context, id string, lane domain.Lane, reviewerID string) (*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rule, ok := domain.ClaimRuleFor(lane)
	if !ok {
		return nil, domain.ErrStateConflict
	}
	q, ok := m.quotes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if q.WorkflowState != rule.From {
		return nil, domain.ErrStateConflict
	}
	rev := reviewerID
	if lane == domain.LaneAdmin {
		q.AdminReviewerID = &rev
	} else {
		if q.FinanceReviewerID != nil && *q.FinanceReviewerID != reviewerID {
			return nil, domain.ErrStateConflict
		}
		q.FinanceReviewerID = &rev
	}
	q.SetState(rule.To)
	m.quotes[id] = q
	m.Writes++
	return &q, nil
}

// Get returns a copy of the stored row, for assertions.
func (m *Memory) Get(id string) domain.Quote {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.quotes[id]
}

// Fallback exposes the store without its ClaimLane method.
func (m *Memory) Fallback() domain.Repository { return plain{m} }

type plain struct{ m *Memory }

func (p plain) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	return p.m.GetByID(ctx, id)
}

func (p plain) UpdateFromState(ctx context.Context, q *domain.Quote, expected domain.State) error {
	return p.m.UpdateFromState(ctx, q, expected)
}
