package profile

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)

	// ListByRole matches the stored role case-insensitively.
	ListByRole(ctx context.Context, role Role) ([]Profile, error)
}
