package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/gobazaar/backend/internal/middleware/auth"
	"github.com/gobazaar/backend/internal/service"
	"github.com/gobazaar/backend/internal/transport"
	"github.com/gobazaar/backend/pkg/logging"
	"github.com/gobazaar/backend/pkg/tokens"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		return domainError(c, l, "register_error", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "user": user})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	user, token, expiresAt, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return domainError(c, l, "login_error", err)
	}

	c.SetCookie(tokens.CreateCookie(middleware.UserCookie, token, "/", expiresAt))

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": user})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(tokens.DeleteCookie(middleware.UserCookie, "/"))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AuthHTTP) AdminLogin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_login_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	admin, token, expiresAt, err := h.Svc.LoginAdmin(ctx, req.Email, req.Password)
	if err != nil {
		return domainError(c, l, "admin_login_error", err)
	}

	c.SetCookie(tokens.CreateCookie(middleware.AdminCookie, token, "/", expiresAt))

	l.Info("admin_login_success", "admin_id", admin.ID, "role", admin.Role)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "admin": admin})
}
