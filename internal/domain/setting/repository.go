package setting

import "context"

type Repository interface {
	// Get returns ErrNotFound when the key has no row.
	Get(ctx context.Context, key string) (*AppSetting, error)

	// Upsert replaces the whole row for s.Key.
	Upsert(ctx context.Context, s *AppSetting) error
}
