package identity

import (
	"context"
	"errors"
	"strings"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/pkg/apperr"

	"github.com/rs/zerolog"
)

// AuthUser is what the auth provider knows about a verified token.
type AuthUser struct {
	ID    string
	Email string
}

// TokenVerifier is the auth provider's getUser(token) call.
type TokenVerifier interface {
	GetUser(ctx context.Context, token string) (*AuthUser, error)
}

type Resolver struct {
	tokens   TokenVerifier
	profiles profile.Repository
	log      zerolog.Logger
}

func NewResolver(tokens TokenVerifier, profiles profile.Repository, log zerolog.Logger) *Resolver {
	return &Resolver{tokens: tokens, profiles: profiles, log: log}
}

// Resolve turns a bearer token into the request's actor. The returned role is
// always normalized.
func (r *Resolver) Resolve(ctx context.Context, token string) (*profile.RequestContext, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperr.Unauthenticated("Missing authorization token")
	}

	user, err := r.tokens.GetUser(ctx, token)
	if err != nil {
		if apperr.Is(err, apperr.KindUnauthenticated) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "Invalid authorization token", err)
	}
	if user == nil || user.ID == "" {
		return nil, apperr.Unauthenticated("Invalid authorization token")
	}

	p, err := r.profiles.GetByID(ctx, user.ID)
	if errors.Is(err, profile.ErrNotFound) {
		return nil, apperr.NotFound("Profile not found")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	role, known := profile.NormalizeRole(p.Role)
	if !known {
		r.log.Warn().Str("user_id", p.ID).Str("raw_role", p.Role).Msg("identity: unrecognized role, treating as SALES")
	}

	email := p.Email
	if email == "" {
		email = user.Email
	}
	return &profile.RequestContext{
		UserID:   p.ID,
		Role:     role,
		Email:    email,
		FullName: p.FullName,
	}, nil
}
