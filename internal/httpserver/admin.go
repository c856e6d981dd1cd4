package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gobazaar/backend/internal/service"
	"github.com/gobazaar/backend/internal/transport"
	"github.com/gobazaar/backend/pkg/logging"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	staff, err := staffPrincipal(c)
	if err != nil {
		l.Warn("list_orders_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.Svc.ListOrders(ctx, staff)
	if err != nil {
		return domainError(c, l, "list_orders_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

func (h *AdminHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_order")

	staff, err := staffPrincipal(c)
	if err != nil {
		l.Warn("get_order_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_order_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid order id")
	}

	order, err := h.Svc.GetOrder(ctx, staff, orderID)
	if err != nil {
		return domainError(c, l, "get_order_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "order": order})
}

func (h *AdminHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_order")

	staff, err := staffPrincipal(c)
	if err != nil {
		l.Warn("update_order_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_order_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.OrderID == uuid.Nil {
		return fail(c, http.StatusBadRequest, "order_id is required")
	}

	if err := h.Svc.UpdateDeliveryStatus(ctx, staff, req.OrderID, req.Status); err != nil {
		return domainError(c, l, "update_order_error", err)
	}

	l.Info("update_order_success", "order_id", req.OrderID, "status", req.Status, "admin_id", staff.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AdminHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_order")

	orderID, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		l.Warn("delete_order_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid order id")
	}

	if err := h.Svc.DeleteOrder(ctx, orderID); err != nil {
		return domainError(c, l, "delete_order_error", err)
	}

	l.Info("delete_order_success", "order_id", orderID)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *AdminHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_products")

	staff, err := staffPrincipal(c)
	if err != nil {
		l.Warn("list_products_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	products, err := h.Svc.ListProducts(ctx, staff)
	if err != nil {
		return domainError(c, l, "list_products_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "products": products})
}

func (h *AdminHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get_product")

	staff, err := staffPrincipal(c)
	if err != nil {
		l.Warn("get_product_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(ctx, staff, productID)
	if err != nil {
		return domainError(c, l, "get_product_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}

func (h *AdminHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_product")

	staff, err := staffPrincipal(c)
	if err != nil {
		l.Warn("create_product_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	product, err := h.Svc.CreateProduct(ctx, staff, req)
	if err != nil {
		return domainError(c, l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", product.ID, "admin_id", staff.ID)
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "product": product})
}

func (h *AdminHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.patch_product")

	staff, err := staffPrincipal(c)
	if err != nil {
		l.Warn("patch_product_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.ID == uuid.Nil {
		return fail(c, http.StatusBadRequest, "id is required")
	}

	product, err := h.Svc.PatchProduct(ctx, staff, req)
	if err != nil {
		return domainError(c, l, "patch_product_error", err)
	}

	l.Info("patch_product_success", "product_id", product.ID, "admin_id", staff.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}

func (h *AdminHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.delete_product")

	staff, err := staffPrincipal(c)
	if err != nil {
		l.Warn("delete_product_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.QueryParam("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	if err := h.Svc.DeleteProduct(ctx, staff, productID); err != nil {
		return domainError(c, l, "delete_product_error", err)
	}

	l.Info("delete_product_success", "product_id", productID, "admin_id", staff.ID)
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
