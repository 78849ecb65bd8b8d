package middleware

import (
	"context"
	"net/http"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/usecase/identity"
	"quote-workflow/pkg/apperr"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const actorContextKey = "actor"

type ActorResolver interface {
	Resolve(ctx context.Context, token string) (*profile.RequestContext, error)
}

// Auth resolves the bearer token into the request's actor and stores it on
// both the echo context and the request context.
func Auth(resolver ActorResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			token := bearerToken(req.Header.Get(echo.HeaderAuthorization))

			actor, err := resolver.Resolve(req.Context(), token)
			if err != nil {
				status := apperr.StatusOf(err)
				ev := log.Info()
				if status >= http.StatusInternalServerError {
					ev = log.Error()
				}
				ev.Err(err).Str("path", c.Path()).Int("status", status).Msg("auth: request rejected")
				return c.JSON(status, map[string]string{"error": apperr.PublicMessage(err)})
			}

			c.Set(actorContextKey, actor)
			c.SetRequest(req.WithContext(identity.WithActor(req.Context(), actor)))
			return next(c)
		}
	}
}

// Actor returns the actor stored by Auth.
func Actor(c echo.Context) (*profile.RequestContext, bool) {
	a, ok := c.Get(actorContextKey).(*profile.RequestContext)
	return a, ok && a != nil
}
