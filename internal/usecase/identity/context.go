package identity

import (
	"context"

	"quote-workflow/internal/domain/profile"
)

type actorKey struct{}

// WithActor stores the resolved actor on ctx.
func WithActor(ctx context.Context, rc *profile.RequestContext) context.Context {
	return context.WithValue(ctx, actorKey{}, rc)
}

// ActorFrom returns the actor stored by WithActor.
func ActorFrom(ctx context.Context) (*profile.RequestContext, bool) {
	rc, ok := ctx.Value(actorKey{}).(*profile.RequestContext)
	return rc, ok && rc != nil
}
