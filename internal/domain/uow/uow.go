package uow

import (
	"context"

	"quote-workflow/internal/domain/quote"
)

// Repos are bound to the transaction of a WithinTx call.
type Repos struct {
	Quotes quote.Repository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
