package settingmock

import (
	"context"
	"sync"

	domain "quote-workflow/internal/domain/setting"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is function-backed; unset functions fall back to an in-memory map.
type Repo struct {
	GetFn    func(ctx context.Context, key string) (*domain.AppSetting, error)
	UpsertFn func(ctx context.Context, s *domain.AppSetting) error

	mu   sync.Mutex
	rows map[string]domain.AppSetting
}

func (m *Repo) Get(ctx context.Context, key string) (*domain.AppSetting, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *Repo) Upsert(ctx context.Context, s *domain.AppSetting) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows == nil {
		m.rows = map[string]domain.AppSetting{}
	}
	m.rows[s.Key] = *s
	return nil
}
