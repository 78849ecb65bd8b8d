package auth

import (
	"context"
	"errors"

	"quote-workflow/internal/usecase/identity"
	"quote-workflow/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access token claims issued by the auth provider. The user
// id travels in the standard subject claim.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 access tokens signed with the provider's
// shared secret.
type JWTVerifier struct {
	secret []byte
	opts   []jwt.ParserOption
}

var _ identity.TokenVerifier = (*JWTVerifier)(nil)

// NewJWTVerifier checks issuer and audience only when they are non-empty.
func NewJWTVerifier(secret, issuer, audience string) *JWTVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	if audience != "" {
		opts = append(opts, jwt.WithAudience(audience))
	}
	return &JWTVerifier{secret: []byte(secret), opts: opts}
}

func (v *JWTVerifier) GetUser(_ context.Context, token string) (*identity.AuthUser, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindUnauthenticated, "Authorization token has expired", err)
		}
		return nil, apperr.Wrap(apperr.KindUnauthenticated, "Invalid authorization token", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, apperr.Unauthenticated("Invalid authorization token")
	}
	return &identity.AuthUser{ID: claims.Subject, Email: claims.Email}, nil
}
