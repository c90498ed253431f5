package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cartcontroller "github.com/SanketJawali/tinker-store-api/controllers/cart"
	ordercontroller "github.com/SanketJawali/tinker-store-api/controllers/order"
	productcontroller "github.com/SanketJawali/tinker-store-api/controllers/product"
	reviewcontroller "github.com/SanketJawali/tinker-store-api/controllers/review"
	statuscontroller "github.com/SanketJawali/tinker-store-api/controllers/status"
	"github.com/SanketJawali/tinker-store-api/middleware"
	cartservice "github.com/SanketJawali/tinker-store-api/services/cart"
	"github.com/SanketJawali/tinker-store-api/services/catalog"
	"github.com/SanketJawali/tinker-store-api/services/checkout"
	"github.com/SanketJawali/tinker-store-api/services/identity"
	"github.com/SanketJawali/tinker-store-api/services/review"
	"github.com/SanketJawali/tinker-store-api/store"
)

// Deps bundles everything the handlers close over.
type Deps struct {
	Catalog  *catalog.Catalog
	Reviews  *review.Service
	Resolver *identity.Resolver
	Cart     *cartservice.Reconciler
	Checkout *checkout.Service
	Orders   *store.Orders

	JWTSecret   string
	AdminAPIKey string
	StartedAt   time.Time
}

// SetupRoutes is the single entry-point that wires up public, authenticated
// and admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	// Public
	r.GET("/", statuscontroller.SystemStatus(d.StartedAt))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/product", productcontroller.GetProducts(d.Catalog))
	r.GET("/api/product/:id", productcontroller.GetProductByID(d.Catalog, d.Reviews))

	// Authenticated (verified JWT with identity claims)
	authed := r.Group("/api")
	authed.Use(middleware.RequireAuth(d.JWTSecret))
	{
		authed.POST("/product", productcontroller.CreateProduct(d.Catalog))

		authed.GET("/cart", cartcontroller.GetCart(d.Resolver, d.Cart))
		authed.POST("/cart", cartcontroller.ApplyDelta(d.Resolver, d.Cart))
		authed.DELETE("/cart/:product_id", cartcontroller.RemoveItem(d.Resolver, d.Cart))

		authed.POST("/review", reviewcontroller.CreateReview(d.Reviews))

		authed.POST("/checkout", ordercontroller.PlaceOrder(d.Checkout))
		authed.GET("/orders", ordercontroller.GetOrders(d.Resolver, d.Orders))
	}

	// Admin (API-key protected)
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAPIKey(d.AdminAPIKey))
	{
		admin.GET("/products/export", productcontroller.ExportProductsToExcel(d.Catalog))
	}
}
