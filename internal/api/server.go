package api

import (
	"fmt"
	"net/http"

	"athena/internal/cache"
	"athena/internal/clock"
	"athena/internal/config"
	"athena/internal/database"
	"athena/internal/external"
	"athena/internal/handlers"
	"athena/internal/logger"
	"athena/internal/messaging"
	"athena/internal/middleware"
	"athena/internal/repository"
	"athena/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the booking API over its backing services.
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	redis    *cache.RedisCache
	services *service.Services
	repos    *repository.Repositories
}

func NewServer(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	// The Redis create lock is a best-effort cross-instance guard; the store's
	// conditional insert stays authoritative, so a missing Redis only widens
	// the race window.
	var redisCache *cache.RedisCache
	var locker service.Locker
	if cfg.RedisEnabled {
		redisCache, err = cache.NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Get().Warn("Redis unavailable, create lock disabled", "error", err)
		} else {
			locker = redisCache
		}
	}

	notifier := external.NewNotificationClient(cfg.Notification)
	payments := external.NewPaymentURLBuilder(cfg.Payment)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, notifier, natsClient, locker, payments, clock.NewSystem(), cfg.Booking)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		db:       db,
		nats:     natsClient,
		redis:    redisCache,
		services: services,
		repos:    repos,
	}

	server.setupRoutes()

	return server, nil
}

func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services.Bookings)

	api := s.router.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.POST("", h.CreateBooking)
			bookings.GET("/lookup", h.LookupBooking)
			bookings.GET("/:identifier/qr", h.BookingQR)
		}
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	dbHealth := s.db.Health(c.Request.Context())

	status := http.StatusOK
	if dbHealth.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"status":   dbHealth.Status,
		"service":  "athena-booking-api",
		"database": dbHealth,
	})
}

// Run starts the HTTP server on the configured port.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes outbound connections.
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			logger.Get().Error("Error closing NATS connection", "error", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logger.Get().Error("Error closing Redis connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logger.Get().Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
