package app

import (
	"context"
	"fmt"
	"time"

	"coffee-order/config"
	"coffee-order/controllers"
	"coffee-order/handler"
	"coffee-order/libs"
	"coffee-order/middleware"
	"coffee-order/repositories"
	"coffee-order/routes"
	"coffee-order/services"
	"coffee-order/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectTimeout = 15 * time.Second

// App holds the router and the connections it owns.
type App struct {
	Router *gin.Engine

	logger *zap.Logger
	db     *pgxpool.Pool
	redis  *redis.Client
}

// New wires storage, services and routes from cfg. Postgres and Redis are
// used only when configured; otherwise everything lives in memory.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	info := handler.ServiceInfo{CartStore: "memory", OrderStore: "memory"}

	var (
		users  repositories.UserRepository  = repositories.NewMemoryUserRepository()
		orders repositories.OrderRepository = repositories.NewMemoryOrderRepository()
		carts  repositories.CartRepository  = repositories.NewMemoryCartRepository()
	)

	if cfg.DatabaseConfigured() {
		db, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		users = repositories.NewPostgresUserRepository(db)
		orders = repositories.NewPostgresOrderRepository(db)
		info.OrderStore = "postgres"
		logger.Info("using postgres for users and orders")
	}

	if cfg.RedisConfigured() {
		client, err := config.ConnectRedis(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.redis = client
		carts = repositories.NewRedisCartRepository(client, cfg.CartTTL)
		info.CartStore = "redis"
		logger.Info("using redis for carts", zap.Duration("ttl", cfg.CartTTL))
	}

	catalogRepo, err := repositories.NewCatalogRepository(cfg.CatalogPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var images libs.ImageResolver = libs.PassthroughImages{}
	if cfg.CloudinaryConfigured() {
		cld, err := libs.NewCloudinaryImages(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			a.Close()
			return nil, err
		}
		images = cld
	}

	var mailer services.ReceiptSender
	if cfg.SMTPConfigured() {
		mailer = libs.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
		info.Receipts = true
	} else {
		logger.Warn("SMTP not configured, order receipts are disabled")
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	catalogService := services.NewCatalogService(catalogRepo, images)
	cartService := services.NewCartService(carts, catalogService, logger)
	checkoutService := services.NewCheckoutService(cartService, orders, mailer, logger, services.CheckoutOptions{
		ServiceFee:    cfg.ServiceFee,
		PickupAddress: cfg.PickupAddress,
	})
	authService := services.NewAuthService(users, tokens)

	info.CatalogItems = len(catalogRepo.All())
	info.Categories = catalogService.Categories()[1:]

	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))

	routes.SetupRoutes(router, routes.Controllers{
		Index:   handler.Index(info),
		Auth:    controllers.NewAuthController(authService),
		Catalog: controllers.NewCatalogController(catalogService),
		Cart:    controllers.NewCartController(cartService),
		Order:   controllers.NewOrderController(checkoutService),
	}, tokens)

	a.Router = router
	return a, nil
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
