package templatemock

import (
	"context"
	"sync"

	domain "quote-workflow/internal/domain/emailtemplate"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is function-backed; unset functions fall back to an in-memory map.
type Repo struct {
	GetByTypeFn func(ctx context.Context, templateType string) (*domain.EmailTemplate, error)
	UpsertFn    func(ctx context.Context, t *domain.EmailTemplate) error

	mu   sync.Mutex
	rows map[string]domain.EmailTemplate
}

// With seeds templates into the in-memory fallback.
func With(ts ...domain.EmailTemplate) *Repo {
	m := &Repo{rows: map[string]domain.EmailTemplate{}}
	for _, t := range ts {
		m.rows[t.TemplateType] = t
	}
	return m
}

func (m *Repo) GetByType(ctx context.Context, templateType string) (*domain.EmailTemplate, error) {
	if m.GetByTypeFn != nil {
		return m.GetByTypeFn(ctx, templateType)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.rows[templateType]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *Repo) Upsert(ctx context.Context, t *domain.EmailTemplate) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[string]domain.EmailTemplate{}
	}
	if prev, ok := m.rows[t.TemplateType]; ok {
		t.ID, t.CreatedBy, t.CreatedAt = prev.ID, prev.CreatedBy, prev.CreatedAt
	} else {
		t.ID = uint64(len(m.rows) + 1)
	}
	m.rows[t.TemplateType] = *t
	return nil
}
