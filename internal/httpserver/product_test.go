package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSearchProducts_DisabledSearchIs503(t *testing.T) {
	t.Parallel()

	handler := &ProductHTTP{ES: nil, ESIndex: "products"}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search?q=teapot", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NotPanics(t, func() {
		require.NoError(t, handler.SearchProducts(c))
	})
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
