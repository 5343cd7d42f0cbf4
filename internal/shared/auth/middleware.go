package auth

import (
	"log/slog"

	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth.claims"

// RequireRole validates the request token and rejects callers lacking the role.
// Errors are returned unwrapped so the shared error handler can map them.
func RequireRole(validator TokenValidator, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := validator.Validate(ExtractToken(c.Request(), "token"))
			if err != nil {
				slog.Warn("auth rejected", slog.String("path", c.Path()), slog.String("ip", c.RealIP()), slog.Any("error", err))
				return err
			}
			if role != "" && !claims.HasRole(role) {
				slog.Warn("auth forbidden", slog.String("path", c.Path()), slog.String("subject", claims.Subject), slog.String("role", role))
				return ErrForbidden
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by RequireRole, if any.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}
