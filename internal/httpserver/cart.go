package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gobazaar/backend/internal/service"
	"github.com/gobazaar/backend/internal/transport"
	"github.com/gobazaar/backend/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	uid, err := userID(c)
	if err != nil {
		l.Warn("get_cart_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Svc.GetCart(ctx, uid)
	if err != nil {
		return domainError(c, l, "get_cart_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "cart": items})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	uid, err := userID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CartMutationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == uuid.Nil {
		l.Warn("add_to_cart_error", "status", 400)
		return fail(c, http.StatusBadRequest, "product_id required")
	}

	items, err := h.Svc.AddToCart(ctx, uid, req.ProductID)
	if err != nil {
		return domainError(c, l, "add_to_cart_error", err)
	}

	l.Info("add_to_cart_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "cart": items})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	uid, err := userID(c)
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CartMutationRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == uuid.Nil {
		l.Warn("remove_from_cart_error", "status", 400)
		return fail(c, http.StatusBadRequest, "product_id required")
	}

	// Single keeps the line and decrements; without it the line goes away.
	items, err := h.Svc.RemoveFromCart(ctx, uid, req.ProductID, !req.Single)
	if err != nil {
		return domainError(c, l, "remove_from_cart_error", err)
	}

	l.Info("remove_from_cart_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "cart": items})
}
