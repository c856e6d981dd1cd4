package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gobazaar/backend/internal/auth"
	"github.com/gobazaar/backend/pkg/tokens"
)

const (
	UserCookie  = "token"
	AdminCookie = "admin_token"
)

// Middleware turns the session cookie into an authenticated principal
// before any core logic runs. Handlers read the principal from the echo
// context ("user_id"/"role" or "admin_id"/"admin_role").
type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

func (m *Middleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.claimsFromCookie(c, UserCookie)
		if err != nil {
			return err
		}
		if claims.Role != "user" {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}

		c.Set("user_id", claims.Subject)
		c.Set("role", claims.Role)
		return next(c)
	}
}

// RequireStaff authenticates an admin principal and evaluates role
// capabilities over the given resource, with the verb derived from the
// HTTP method.
func (m *Middleware) RequireStaff(resource string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := m.claimsFromCookie(c, AdminCookie)
			if err != nil {
				return err
			}
			if !auth.KnownRole(claims.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			if !auth.Allowed(claims.Role, resource, verbFor(c.Request().Method)) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}

			c.Set("admin_id", claims.Subject)
			c.Set("admin_role", claims.Role)
			return next(c)
		}
	}
}

func (m *Middleware) claimsFromCookie(c echo.Context, name string) (*tokens.AccessClaims, error) {
	cookie, err := c.Cookie(name)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	claims, err := tokens.AccessClaimsFromToken(cookie.Value, m.JWTSecret)
	if err != nil || claims == nil {
		c.SetCookie(tokens.DeleteCookie(name, "/"))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return claims, nil
}

func verbFor(method string) string {
	switch method {
	case http.MethodPost:
		return auth.VerbCreate
	case http.MethodPatch, http.MethodPut:
		return auth.VerbUpdate
	case http.MethodDelete:
		return auth.VerbDelete
	default:
		return auth.VerbRead
	}
}
