package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/avadra/storefront-service/config"
	"github.com/avadra/storefront-service/internal/auth"
	categoryHandler "github.com/avadra/storefront-service/internal/category/handler"
	categoryRepository "github.com/avadra/storefront-service/internal/category/repository"
	categoryUseCase "github.com/avadra/storefront-service/internal/category/usecase"
	inventoryHandler "github.com/avadra/storefront-service/internal/inventory/handler"
	inventoryRepository "github.com/avadra/storefront-service/internal/inventory/repository"
	inventoryUseCase "github.com/avadra/storefront-service/internal/inventory/usecase"
	notificationHandler "github.com/avadra/storefront-service/internal/notification/handler"
	notificationRepository "github.com/avadra/storefront-service/internal/notification/repository"
	notificationUseCase "github.com/avadra/storefront-service/internal/notification/usecase"
	"github.com/avadra/storefront-service/internal/order"
	"github.com/avadra/storefront-service/internal/order/events"
	orderHandler "github.com/avadra/storefront-service/internal/order/handler"
	orderRepository "github.com/avadra/storefront-service/internal/order/repository"
	orderUseCase "github.com/avadra/storefront-service/internal/order/usecase"
	productHandler "github.com/avadra/storefront-service/internal/product/handler"
	productRepository "github.com/avadra/storefront-service/internal/product/repository"
	productUseCase "github.com/avadra/storefront-service/internal/product/usecase"
	reportHandler "github.com/avadra/storefront-service/internal/report/handler"
	reportRepository "github.com/avadra/storefront-service/internal/report/repository"
	reportUseCase "github.com/avadra/storefront-service/internal/report/usecase"
	userHandler "github.com/avadra/storefront-service/internal/user/handler"
	userRepository "github.com/avadra/storefront-service/internal/user/repository"
	userUseCase "github.com/avadra/storefront-service/internal/user/usecase"
	"github.com/avadra/storefront-service/pkg/cache"
	"github.com/avadra/storefront-service/pkg/logger"
	"github.com/avadra/storefront-service/pkg/search"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server owns the HTTP surface and the dependency graph behind it.
type Server struct {
	cfg    *config.Config
	logger logger.ZapLogger
	db     *sqlx.DB
	redis  *cache.RedisClient
	es     *search.Client
	events order.EventPublisher

	httpSrv *http.Server
}

func New(cfg *config.Config, log logger.ZapLogger, db *sqlx.DB, redis *cache.RedisClient, es *search.Client, events order.EventPublisher) *Server {
	return &Server{
		cfg:    cfg,
		logger: log,
		db:     db,
		redis:  redis,
		es:     es,
		events: events,
	}
}

// Run blocks until ListenAndServe returns.
func (s *Server) Run() error {
	if s.cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.httpSrv = &http.Server{
		Addr:         s.cfg.Server.HTTPPort,
		Handler:      s.buildRouter(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) buildRouter() *gin.Engine {
	tokens := auth.NewTokenManager(s.cfg.JWT.SecretKey, time.Duration(s.cfg.JWT.ExpiryHrs)*time.Hour)

	invRepo := inventoryRepository.NewPGRepository(s.db)
	ledger := inventoryUseCase.NewStockLedger(invRepo, s.redis, s.logger)

	catRepo := categoryRepository.NewPGRepository(s.db)
	catUC := categoryUseCase.NewCategoryUseCase(catRepo, s.logger)

	prodRepo := productRepository.NewPGRepository(s.db)
	prodUC := productUseCase.NewProductUseCase(prodRepo, s.redis, s.es, s.logger)

	notifRepo := notificationRepository.NewPGRepository(s.db)
	notifUC := notificationUseCase.NewNotificationUseCase(notifRepo, s.logger)

	ordRepo := orderRepository.NewPGRepository(s.db)
	publisher := events.Fanout{s.events, notificationUseCase.NewRecorder(notifUC, s.logger)}
	ordUC := orderUseCase.NewOrderUseCase(ordRepo, ledger, publisher, s.logger)

	usrRepo := userRepository.NewPGRepository(s.db)
	usrUC := userUseCase.NewUserUseCase(usrRepo, tokens, s.logger)

	repRepo := reportRepository.NewPGRepository(s.db)
	repUC := reportUseCase.NewReportUseCase(repRepo, s.logger)

	users := userHandler.NewUserHandler(usrUC, s.logger)
	categories := categoryHandler.NewCategoryHandler(catUC, s.logger)
	products := productHandler.NewProductHandler(prodUC, s.logger)
	orders := orderHandler.NewOrderHandler(ordUC, s.logger)
	stock := inventoryHandler.NewInventoryHandler(ledger, s.logger)
	reports := reportHandler.NewReportHandler(repUC, s.logger)
	notifications := notificationHandler.NewNotificationHandler(notifUC, s.logger)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", users.Signup)
		authGroup.POST("/login", users.Login)
		authGroup.GET("/profile", auth.Protect(tokens), users.Profile)
		authGroup.PUT("/profile", auth.Protect(tokens), users.UpdateProfile)
	}

	categoryGroup := api.Group("/categories")
	{
		categoryGroup.GET("", categories.List)
		categoryGroup.GET("/:id", categories.Get)
		categoryGroup.POST("", auth.Protect(tokens), auth.AdminOnly(), categories.Create)
		categoryGroup.PUT("/:id", auth.Protect(tokens), auth.AdminOnly(), categories.Update)
		categoryGroup.DELETE("/:id", auth.Protect(tokens), auth.AdminOnly(), categories.Delete)
	}

	productGroup := api.Group("/products")
	{
		productGroup.GET("", products.List)
		productGroup.GET("/:id", products.Get)
		productGroup.POST("", auth.Protect(tokens), auth.AdminOnly(), products.Create)
		productGroup.PUT("/:id", auth.Protect(tokens), auth.AdminOnly(), products.Update)
		productGroup.DELETE("/:id", auth.Protect(tokens), auth.AdminOnly(), products.Delete)
	}

	orderGroup := api.Group("/orders", auth.Protect(tokens))
	{
		orderGroup.POST("", orders.Create)
		orderGroup.GET("/myorders", orders.ListMine)
		orderGroup.GET("", auth.AdminOnly(), orders.List)
		orderGroup.GET("/pending/count", auth.AdminOnly(), orders.CountPending)
		orderGroup.PUT("/:id/status", auth.AdminOnly(), orders.UpdateStatus)
	}

	userGroup := api.Group("/users", auth.Protect(tokens))
	{
		userGroup.GET("/data", auth.AdminOnly(), users.ListCustomers)
	}

	notificationGroup := api.Group("/notifications", auth.Protect(tokens))
	{
		notificationGroup.GET("", auth.AdminOnly(), notifications.List)
		notificationGroup.PUT("/:id/read", notifications.MarkRead)
		notificationGroup.PUT("/read/all", notifications.MarkAllRead)
	}

	inventoryGroup := api.Group("/inventory", auth.Protect(tokens), auth.AdminOnly())
	{
		inventoryGroup.POST("/adjust", stock.Adjust)
		inventoryGroup.GET("/movements", stock.Movements)
	}

	api.GET("/reports/advanced-stats", auth.Protect(tokens), auth.AdminOnly(), reports.AdvancedStats)

	return router
}
