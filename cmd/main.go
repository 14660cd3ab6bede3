package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mluvul69-gif/linea-store/internal/api"
	"github.com/mluvul69-gif/linea-store/internal/config"
	"github.com/mluvul69-gif/linea-store/internal/mailer"
	"github.com/mluvul69-gif/linea-store/internal/payment"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"github.com/mluvul69-gif/linea-store/internal/service"
	"github.com/mluvul69-gif/linea-store/internal/session"
	"github.com/mluvul69-gif/linea-store/migrations"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func connectDB(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("mysql", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				logger.Info().Msgf("Connected to DB %s", cfg.DBName)
				return db, nil
			}
		}
		logger.Warn().Err(err).Msgf("Retry %d: failed to connect to DB %s", i+1, cfg.DBName)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to DB %s after retries: %v", cfg.DBName, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	db, err := connectDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Database unavailable")
	}

	if err := migrations.AutoMigrateProducts(3, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate products table")
	}
	if err := migrations.AutoMigrateOrders(3, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate orders table")
	}
	if err := migrations.AutoMigrateOrderItems(3, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate order_items table")
	}
	if err := migrations.AutoMigrateAdmin(3, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate admin table")
	}
	if err := migrations.SeedProducts(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed products")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	adminRepo := repository.NewAdminRepository(db)
	if cfg.AdminPasswordHash != "" {
		if err := adminRepo.UpsertAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPasswordHash); err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed admin account")
		}
	} else {
		logger.Warn().Msg("ADMIN_PASSWORD_HASH not set, admin login disabled")
	}

	kafkaWriter := config.NewKafkaWriter(cfg.KafkaBrokers, "order-events")

	sessionStore := session.NewStore(cfg.SecretKey, rdb)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.DomainName)
	sender := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.AdminEmail)

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	catalogService := service.NewCatalogService(productRepo, rdb)
	cartService := service.NewCartService(sessionStore, catalogService)
	checkoutService := service.NewCheckoutService(cartService, sessionStore, gateway)
	orderService := service.NewOrderService(orderRepo, gateway, sessionStore, sender, kafkaWriter)
	adminService := service.NewAdminService(adminRepo, cfg.SecretKey)

	shopHandler := api.NewShopHandler(catalogService)
	cartHandler := api.NewCartHandler(cartService, sessionStore)
	checkoutHandler := api.NewCheckoutHandler(checkoutService, cartService, sessionStore)
	webhookHandler := api.NewWebhookHandler(gateway, orderService)
	adminHandler := api.NewAdminHandler(adminService, catalogService, orderService)

	e := echo.New()

	loginLimiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(1),
				Burst:     3,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/", shopHandler.Home)
	e.GET("/shop", shopHandler.ListProducts)
	e.GET("/product/:id", shopHandler.GetProduct)

	e.GET("/cart", cartHandler.ViewCart)
	e.POST("/cart", cartHandler.ViewCart)
	e.POST("/add-to-cart", cartHandler.AddToCart)

	e.GET("/checkout", checkoutHandler.Checkout)
	e.POST("/create-checkout-session", checkoutHandler.CreateCheckoutSession)
	e.GET("/payment-success", checkoutHandler.PaymentSuccess)

	e.POST("/stripe-webhook", webhookHandler.HandleWebhook)

	e.GET("/admin-login", adminHandler.LoginForm)
	e.POST("/admin-login", adminHandler.Login, middleware.RateLimiterWithConfig(loginLimiterConfig))

	adminGuard := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SecretKey),
		TokenLookup: "cookie:" + api.AdminCookieName,
	})
	admin := e.Group("", adminGuard)
	admin.GET("/admin-dashboard", adminHandler.Dashboard)
	admin.POST("/admin-add-product", adminHandler.AddProduct)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "linea-store",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
