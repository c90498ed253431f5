package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SanketJawali/tinker-store-api/cache"
	"github.com/SanketJawali/tinker-store-api/config"
	"github.com/SanketJawali/tinker-store-api/mailer"
	"github.com/SanketJawali/tinker-store-api/middleware"
	"github.com/SanketJawali/tinker-store-api/models"
	"github.com/SanketJawali/tinker-store-api/routes"
	cartservice "github.com/SanketJawali/tinker-store-api/services/cart"
	"github.com/SanketJawali/tinker-store-api/services/catalog"
	"github.com/SanketJawali/tinker-store-api/services/checkout"
	"github.com/SanketJawali/tinker-store-api/services/identity"
	"github.com/SanketJawali/tinker-store-api/services/review"
	"github.com/SanketJawali/tinker-store-api/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db := initDatabase(cfg, log)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.CartEntry{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// The cache handle is built here and injected everywhere it is needed;
	// nothing reaches it through ambient global state.
	listings := cache.New(initRedis(cfg, log), log)

	stores := store.New(db)
	resolver := identity.NewResolver(stores.Users, log)
	catalogSvc := catalog.New(stores.Products, listings, resolver, cfg.CacheTTL, log)
	reviewSvc := review.NewService(stores.Reviews, stores.Products, resolver)
	cartSvc := cartservice.NewReconciler(stores.Carts, stores.Products, log)
	mail := mailer.NewResend(cfg.ResendAPIKey, cfg.FromEmail, log)
	checkoutSvc := checkout.NewService(stores.Carts, stores.Orders, resolver, mail, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, routes.Deps{
		Catalog:     catalogSvc,
		Reviews:     reviewSvc,
		Resolver:    resolver,
		Cart:        cartSvc,
		Checkout:    checkoutSvc,
		Orders:      stores.Orders,
		JWTSecret:   cfg.JWTSecret,
		AdminAPIKey: cfg.AdminAPIKey,
		StartedAt:   time.Now(),
	})

	log.Infof("Server running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection.
func initDatabase(cfg *config.Config, log *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// Unique violations surface as gorm.ErrDuplicatedKey; the identity
		// resolver relies on that for its create-race fallback.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	return db
}

// initRedis parses REDIS_URL and returns a client. Connectivity problems are
// not fatal: the cache layer degrades to miss/no-op on its own.
func initRedis(cfg *config.Config, log *logrus.Logger) *redis.Client {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	return redis.NewClient(opts)
}
