package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gobazaar/backend/internal/service"
	"github.com/gobazaar/backend/internal/transport"
	"github.com/gobazaar/backend/internal/util"
	"github.com/gobazaar/backend/pkg/logging"
)

type OrderHTTP struct {
	Checkout *service.CheckoutService
	Payments *service.PaymentService
	Orders   *service.OrderService

	SuccessURL string
	FailureURL string
}

func (h *OrderHTTP) CheckoutProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout_product")

	uid, err := userID(c)
	if err != nil {
		l.Warn("checkout_product_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		l.Warn("checkout_product_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid product id")
	}
	quantity := uint(parseIntDefault(c.QueryParam("quantity"), 1))

	intent, err := h.Checkout.CheckoutProduct(ctx, uid, productID, quantity)
	if err != nil {
		return domainError(c, l, "checkout_product_error", err)
	}

	l.Info("checkout_product_success", "user_id", uid, "product_id", productID, "intent", intent.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": intent})
}

func (h *OrderHTTP) CheckoutCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout_cart")

	uid, err := userID(c)
	if err != nil {
		l.Warn("checkout_cart_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	intent, err := h.Checkout.CheckoutCart(ctx, uid)
	if err != nil {
		return domainError(c, l, "checkout_cart_error", err)
	}

	l.Info("checkout_cart_success", "user_id", uid, "intent", intent.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": intent})
}

func (h *OrderHTTP) CheckoutOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout_order")

	uid, err := userID(c)
	if err != nil {
		l.Warn("checkout_order_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		l.Warn("checkout_order_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid order id")
	}

	intent, err := h.Checkout.CheckoutOrder(ctx, uid, orderID)
	if err != nil {
		return domainError(c, l, "checkout_order_error", err)
	}

	l.Info("checkout_order_success", "user_id", uid, "order_id", orderID, "intent", intent.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": intent})
}

// VerifyPayment is the gateway's callback. It carries no user session;
// the HMAC signature is the only thing trusted here.
func (h *OrderHTTP) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.verify")

	orderRef := c.FormValue("gatewayOrderRef")
	paymentRef := c.FormValue("gatewayPaymentRef")
	signature := c.FormValue("signature")
	if orderRef == "" || paymentRef == "" || signature == "" {
		l.Warn("verify_payment_error", "status", 400, "reason", "missing fields")
		return fail(c, http.StatusBadRequest, "missing callback fields")
	}

	orderID, confirmed, err := h.Payments.VerifyPayment(ctx, orderRef, paymentRef, signature)
	if err != nil {
		return domainError(c, l, "verify_payment_error", err)
	}

	if !confirmed {
		l.Warn("verify_payment_rejected", "order_id", orderID, "order_ref", orderRef)
		return c.Redirect(http.StatusFound, h.FailureURL+"?reference="+orderID.String())
	}

	l.Info("verify_payment_success", "order_id", orderID, "payment_ref", paymentRef)
	return c.Redirect(http.StatusFound, h.SuccessURL+"?reference="+orderID.String())
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	uid, err := userID(c)
	if err != nil {
		l.Warn("get_orders_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("limit"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)
	ascending := strings.EqualFold(c.QueryParam("sort"), "asc")

	total, orders, err := h.Orders.GetUserOrders(ctx, uid, offset, limit, ascending)
	if err != nil {
		return domainError(c, l, "get_orders_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"orders":  orders,
		"meta": transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	uid, err := userID(c)
	if err != nil {
		l.Warn("get_order_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Orders.GetOrder(ctx, uid, orderID)
	if err != nil {
		return domainError(c, l, "get_order_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": order})
}
