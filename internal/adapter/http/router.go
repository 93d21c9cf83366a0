package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health   *Handler
	Auth     *AuthHandler
	Users    *UserHandler
	Loans    *LoanHandler
	Reviews  *ReviewHandler
	Payments *PaymentHandler
	Market   *MarketHandler
}

// Guards are the route-level middlewares the router attaches.
type Guards struct {
	Auth        echo.MiddlewareFunc
	Admin       echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
}

func Register(e *echo.Echo, h Handlers, g Guards) {
	api := e.Group("/api")
	api.GET("/health", h.Health.Health)

	authG := api.Group("/auth")
	authG.POST("/register", h.Auth.Register)
	authG.POST("/login", h.Auth.Login)
	authG.GET("/verify", h.Auth.Verify, g.Auth)
	authG.POST("/change-password", h.Auth.ChangePassword, g.Auth)
	authG.POST("/logout", h.Auth.Logout, g.Auth)

	users := api.Group("/users")
	users.GET("/search", h.Users.Search)
	users.GET("/:id/public", h.Users.PublicProfile)
	users.GET("/profile", h.Users.Profile, g.Auth)
	users.PUT("/profile", h.Users.UpdateProfile, g.Auth)
	users.GET("/stats", h.Users.Stats, g.Auth)

	loans := api.Group("/loans")
	loans.GET("/quote", h.Loans.Quote)
	loans.POST("/apply", h.Loans.Apply, g.Auth, g.Idempotency)
	loans.GET("/my-loans", h.Loans.ListMine, g.Auth)
	loans.GET("", h.Loans.ListAll, g.Auth, g.Admin)
	loans.GET("/:id", h.Loans.Get, g.Auth)
	loans.GET("/:id/schedule", h.Loans.Schedule, g.Auth)
	loans.POST("/:id/approve", h.Reviews.Approve, g.Auth, g.Admin)
	loans.POST("/:id/reject", h.Reviews.Reject, g.Auth, g.Admin)
	loans.POST("/:id/disburse", h.Reviews.Disburse, g.Auth, g.Admin)
	loans.POST("/:id/payment", h.Payments.Record, g.Auth, g.Idempotency)

	mkt := api.Group("/marketplace")
	mkt.GET("/products", h.Market.ListProducts)
	mkt.GET("/products/:id", h.Market.GetProduct)
	mkt.GET("/farmer/products", h.Market.ListMyProducts, g.Auth)
	mkt.POST("/products", h.Market.CreateProduct, g.Auth)
	mkt.PUT("/products/:id", h.Market.UpdateProduct, g.Auth)
	mkt.DELETE("/products/:id", h.Market.DeleteProduct, g.Auth)
	mkt.POST("/orders", h.Market.CreateOrder, g.Auth, g.Idempotency)
	mkt.GET("/orders", h.Market.ListOrders, g.Auth)
}
