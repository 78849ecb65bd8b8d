package profilemock

import (
	"context"
	"strings"

	domain "quote-workflow/internal/domain/profile"
)

var _ domain.Repository = (*Repo)(nil)

// Repo serves Profiles unless a function override is set.
type Repo struct {
	GetByIDFn    func(ctx context.Context, id string) (*domain.Profile, error)
	ListByRoleFn func(ctx context.Context, role domain.Role) ([]domain.Profile, error)

	Profiles []domain.Profile
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	for _, p := range m.Profiles {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	if m.ListByRoleFn != nil {
		return m.ListByRoleFn(ctx, role)
	}
	var out []domain.Profile
	for _, p := range m.Profiles {
		if strings.EqualFold(p.Role, string(role)) {
			out = append(out, p)
		}
	}
	return out, nil
}
