package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	Auth     *AuthHTTP
	Products *ProductHTTP
	Cart     *CartHTTP
	AuthMW   *AuthMiddleware

	AllowedOrigins []string
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = NewValidator()

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     d.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	auth := e.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	products := e.Group("/products")
	products.GET("", d.Products.GetProducts)
	if d.Products.Search.Enabled() {
		products.GET("/search", d.Products.SearchProducts)
	}
	products.GET("/:id", d.Products.GetProduct)
	products.POST("", d.Products.CreateProduct, d.AuthMW.RequireAuth, RequireAdmin)

	cart := e.Group("/cart", d.AuthMW.RequireAuth)
	cart.POST("/add", d.Cart.AddToCart)
	cart.GET("", d.Cart.ViewCart)
	cart.DELETE("/remove", d.Cart.RemoveFromCart)
	cart.POST("/checkout", d.Cart.CheckoutCart)
}
