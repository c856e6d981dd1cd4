package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gobazaar/backend/internal/service"
)

func userID(c echo.Context) (uuid.UUID, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, errors.New("unauthorized")
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("unauthorized")
	}
	return id, nil
}

func staffPrincipal(c echo.Context) (service.Staff, error) {
	v, _ := c.Get("admin_id").(string)
	role, _ := c.Get("admin_role").(string)
	if v == "" || role == "" {
		return service.Staff{}, errors.New("unauthorized")
	}

	id, err := uuid.Parse(v)
	if err != nil {
		return service.Staff{}, errors.New("unauthorized")
	}
	return service.Staff{ID: id, Role: role}, nil
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, echo.Map{"success": false, "error": msg})
}

// domainError maps the service taxonomy onto HTTP statuses; everything
// unmatched is logged and surfaced as a generic 500.
func domainError(c echo.Context, l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrPendingPayment):
		l.Warn(op, "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, rootMessage(err))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op, "status", 404, "error", err)
		return fail(c, http.StatusNotFound, rootMessage(err))
	case errors.Is(err, service.ErrForbidden):
		l.Warn(op, "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, rootMessage(err))
	case errors.Is(err, service.ErrConflict):
		l.Warn(op, "status", 409, "error", err)
		return fail(c, http.StatusConflict, rootMessage(err))
	default:
		l.Error(op, "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
}

// rootMessage strips the sentinel suffix so clients get the leading
// human-readable part of "reason: sentinel" errors.
func rootMessage(err error) string {
	msg := err.Error()
	for i := len(msg) - 1; i >= 0; i-- {
		if msg[i] == ':' {
			return msg[:i]
		}
	}
	return msg
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
