package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gobazaar/backend/internal/auth"
	middleware "github.com/gobazaar/backend/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	AdminHandler   *AdminHTTP
	JWTSecret      []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMW := middleware.New(d.JWTSecret)
	api := e.Group("/api/v1")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)
	api.POST("/auth/logout", d.AuthHandler.Logout)
	api.POST("/auth/admin/login", d.AuthHandler.AdminLogin)

	products := api.Group("/products")
	products.GET("/search", d.ProductHandler.SearchProducts)
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("/:id/rating", d.ProductHandler.RateProduct, authMW.RequireUser)

	cart := api.Group("/cart", authMW.RequireUser)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("", d.CartHandler.RemoveFromCart)

	orders := api.Group("/order")
	// The gateway posts the callback here, no session cookie involved.
	orders.POST("/verify", d.OrderHandler.VerifyPayment)

	mine := orders.Group("", authMW.RequireUser)
	mine.POST("/checkout/product", d.OrderHandler.CheckoutProduct)
	mine.POST("/checkout/cart", d.OrderHandler.CheckoutCart)
	mine.POST("/checkout", d.OrderHandler.CheckoutOrder)
	mine.GET("", d.OrderHandler.GetOrders)
	mine.GET("/:id", d.OrderHandler.GetOrder)

	adminOrders := api.Group("/admin/orders", authMW.RequireStaff(auth.ResourceOrder))
	adminOrders.GET("", d.AdminHandler.ListOrders)
	adminOrders.GET("/:id", d.AdminHandler.GetOrder)
	adminOrders.PATCH("", d.AdminHandler.UpdateOrder)
	adminOrders.DELETE("", d.AdminHandler.DeleteOrder)

	adminProducts := api.Group("/admin/products", authMW.RequireStaff(auth.ResourceProduct))
	adminProducts.GET("", d.AdminHandler.ListProducts)
	adminProducts.GET("/:id", d.AdminHandler.GetProduct)
	adminProducts.POST("", d.AdminHandler.CreateProduct)
	adminProducts.PATCH("", d.AdminHandler.PatchProduct)
	adminProducts.DELETE("", d.AdminHandler.DeleteProduct)
}
