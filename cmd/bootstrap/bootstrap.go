package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"city-services-backend/config"
	deliveryHttp "city-services-backend/internal/delivery/http"
	"city-services-backend/internal/delivery/http/handler"
	"city-services-backend/internal/delivery/http/middleware"
	"city-services-backend/internal/infrastructure/cache"
	"city-services-backend/internal/infrastructure/database"
	"city-services-backend/internal/repository"
	"city-services-backend/internal/service"
	"city-services-backend/internal/usecase"
	"city-services-backend/pkg/jwt"
	"city-services-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply pending migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	departmentRepo := repository.NewDepartmentRepository()
	serviceRepo := repository.NewServiceRepository()
	scheduleWindowRepo := repository.NewScheduleWindowRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	queueTicketRepo := repository.NewQueueTicketRepository()
	officeWindowRepo := repository.NewOfficeWindowRepository()
	notificationRepo := repository.NewNotificationRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize queue notifier
	notifier := service.NewQueueNotifier(db, redisClient, log, notificationRepo)

	// Initialize usecases
	serviceUsecase := usecase.NewServiceUsecase(db, log, serviceRepo, departmentRepo)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, scheduleWindowRepo, serviceRepo)
	slotUsecase := usecase.NewSlotUsecase(db, log, scheduleUsecase, appointmentRepo)
	bookingUsecase := usecase.NewBookingUsecase(db, log, appointmentRepo, serviceRepo, scheduleWindowRepo, notifier)
	checkinUsecase := usecase.NewCheckinUsecase(db, log, appointmentRepo, queueTicketRepo, departmentRepo, serviceRepo, notifier)
	windowUsecase := usecase.NewWindowUsecase(db, log, officeWindowRepo, queueTicketRepo, appointmentRepo, departmentRepo, notifier)

	// Initialize handlers
	serviceHandler := handler.NewServiceHandler(serviceUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, slotUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(bookingUsecase, checkinUsecase, customValidator)
	queueHandler := handler.NewQueueHandler(windowUsecase, checkinUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(serviceHandler, scheduleHandler, appointmentHandler, queueHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
