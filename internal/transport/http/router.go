package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/chicfit/storefront/internal/handlers"
	"github.com/chicfit/storefront/internal/service/token"
)

type Deps struct {
	Tokens            *token.TokenService
	AuthHandler       *handlers.AuthHandler
	ProductHandler    *handlers.ProductHandler
	CheckoutHandler   *handlers.CheckoutHandler
	OrderHandler      *handlers.OrderHandler
	ReturnHandler     *handlers.ReturnHandler
	ReviewHandler     *handlers.ReviewHandler
	ContactHandler    *handlers.ContactHandler
	NewsletterHandler *handlers.NewsletterHandler
	UploadHandler     *handlers.UploadHandler
	UserHandler       *handlers.UserHandler
	SearchHandler     *handlers.SearchHandler
	UploadDir         string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)
	v1.POST("/refresh", d.AuthHandler.Refresh)
	v1.GET("/me", d.AuthHandler.Me, d.Tokens.AutoRefreshMiddleware)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.GetProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/:id/reviews", d.ReviewHandler.ListForProduct)
	products.POST("/:id/reviews", d.ReviewHandler.Create, d.Tokens.AutoRefreshMiddleware)

	if d.SearchHandler != nil {
		v1.GET("/search", d.SearchHandler.Handler)
	}

	v1.POST("/contact", d.ContactHandler.Create)
	v1.POST("/newsletter", d.NewsletterHandler.Subscribe)
	v1.DELETE("/newsletter", d.NewsletterHandler.Unsubscribe)

	authed := v1.Group("", d.Tokens.AutoRefreshMiddleware)
	authed.POST("/checkout", d.CheckoutHandler.Create)
	authed.GET("/orders", d.OrderHandler.List)
	authed.GET("/orders/:id", d.OrderHandler.Get)
	authed.GET("/orders/:id/status", d.OrderHandler.Status)
	authed.POST("/returns", d.ReturnHandler.Create)
	authed.GET("/returns", d.ReturnHandler.List)
	authed.GET("/returns/:id", d.ReturnHandler.Get)

	admin := v1.Group("/admin", d.Tokens.AutoRefreshMiddlewareAdmin)
	admin.POST("/products", d.ProductHandler.CreateProduct)
	admin.PATCH("/products/:id", d.ProductHandler.PatchProduct)
	admin.DELETE("/products/:id", d.ProductHandler.DeleteProduct)
	admin.POST("/upload", d.UploadHandler.Upload)
	admin.GET("/orders", d.OrderHandler.AdminList)
	admin.PATCH("/orders/:id", d.OrderHandler.AdminTransition)
	admin.GET("/returns", d.ReturnHandler.AdminList)
	admin.PATCH("/returns/:id", d.ReturnHandler.AdminTransition)
	admin.GET("/reviews", d.ReviewHandler.AdminList)
	admin.DELETE("/reviews/:id", d.ReviewHandler.AdminDelete)
	admin.GET("/contact", d.ContactHandler.AdminList)
	admin.PATCH("/contact/:id", d.ContactHandler.AdminUpdateStatus)
	admin.DELETE("/contact/:id", d.ContactHandler.AdminDelete)
	admin.GET("/newsletter", d.NewsletterHandler.AdminList)
	admin.DELETE("/newsletter/:id", d.NewsletterHandler.AdminDelete)
	admin.GET("/users", d.UserHandler.List)
	admin.PATCH("/users/:id", d.UserHandler.PatchRole)
	admin.DELETE("/users/:id", d.UserHandler.Delete)
}
