package http

import (
	"errors"
	"net/http"

	"quote-workflow/internal/domain/profile"
	"quote-workflow/internal/usecase/identity"
	"quote-workflow/pkg/apperr"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// writeError logs err server-side and writes the {error} body with the
// status its kind maps to.
func writeError(c echo.Context, log zerolog.Logger, err error) error {
	status := apperr.StatusOf(err)
	ev := log.Info()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Int("status", status).
		Msg("request failed")
	return c.JSON(status, ErrorResponse{Error: apperr.PublicMessage(err)})
}

// ErrorHandler replaces echo's default so routing, method and recovered
// errors share the {error} body of the handlers.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, msg := apperr.StatusOf(err), apperr.PublicMessage(err)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status, msg = he.Code, http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok && m != "" && status < http.StatusInternalServerError {
				msg = m
			}
			if status >= http.StatusInternalServerError {
				msg = "internal error"
			}
		}

		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Int("status", status).
			Msg("request failed")

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, ErrorResponse{Error: msg})
	}
}

// bindAndValidate decodes the JSON body into dst and runs struct validation.
// The returned error is already an *apperr.Error.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperr.Wrap(apperr.KindBadInput, "invalid body", err)
	}
	if err := c.Validate(dst); err != nil {
		msg := "invalid body"
		if fe := ToFieldErrors(err); len(fe) > 0 {
			msg = fe[0].Field + " " + fe[0].Message
		}
		return apperr.Wrap(apperr.KindBadInput, msg, err)
	}
	return nil
}

func actorOf(c echo.Context) (profile.RequestContext, error) {
	a, ok := identity.ActorFrom(c.Request().Context())
	if !ok {
		return profile.RequestContext{}, apperr.Unauthenticated("Missing authorization token")
	}
	return *a, nil
}

func requireRole(actor profile.RequestContext, roles ...profile.Role) error {
	if !actor.Role.OneOf(roles...) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}
