package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gobazaar/backend/internal/search"
	"github.com/gobazaar/backend/internal/service"
	"github.com/gobazaar/backend/internal/transport"
	"github.com/gobazaar/backend/internal/util"
	"github.com/gobazaar/backend/pkg/logging"
)

type ProductHTTP struct {
	Svc     *service.CatalogService
	ES      *elasticsearch.Client
	ESIndex string
}

func (h *ProductHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, products, err := h.Svc.GetProducts(ctx, offset, limit)
	if err != nil {
		return domainError(c, l, "get_products_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"products": products,
		"meta": transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("get_product_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return domainError(c, l, "get_product_error", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	if h.ES == nil {
		l.Warn("search_products_error", "status", 503, "reason", "search disabled")
		return fail(c, http.StatusServiceUnavailable, "search unavailable")
	}

	query := search.NormalizeQuery(c.QueryParam("q"))
	if query == "" {
		return fail(c, http.StatusBadRequest, "query required")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, hits, err := search.Search(ctx, h.ES, h.ESIndex, query, from, limit)
	if err != nil {
		l.Error("search_products_error", "status", 500, "error", err)
		return fail(c, http.StatusInternalServerError, "search unavailable")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"products": hits,
		"meta": transport.PageMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func (h *ProductHTTP) RateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.rate")

	uid, err := userID(c)
	if err != nil {
		l.Warn("rate_product_error", "status", 401, "error", err)
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		l.Warn("rate_product_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid product id")
	}

	var req transport.RateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("rate_product_error", "status", 400, "error", err)
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.RateProduct(ctx, uid, productID, req.Value)
	if err != nil {
		return domainError(c, l, "rate_product_error", err)
	}

	l.Info("rate_product_success", "product_id", productID, "user_id", uid)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "product": product})
}
