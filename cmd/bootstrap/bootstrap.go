package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-wheel/config"
	deliveryHttp "health-wheel/internal/delivery/http"
	"health-wheel/internal/delivery/http/handler"
	"health-wheel/internal/delivery/http/middleware"
	"health-wheel/internal/infrastructure/cache"
	"health-wheel/internal/infrastructure/llm"
	"health-wheel/internal/service"
	"health-wheel/internal/usecase"
	"health-wheel/pkg/jwt"
	"health-wheel/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	Stores      *Stores
	RedisClient *redis.Client
	Drafts      *service.DraftRegistry
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	app.Log = log

	stores, err := NewStores(cfg, log)
	if err != nil {
		return nil, err
	}
	app.Stores = stores
	log.Infof("Record store: %s", cfg.Store.Driver)

	redisClient, err := cache.NewSessionClient(context.Background(), cfg.Redis, log)
	if err != nil {
		stores.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	app.Drafts = service.NewDraftRegistry(cfg.Survey.DraftIdleTTL, log)

	app.Server = initializeServer(cfg, log, stores, redisClient, app.Drafts)

	return app, nil
}

// loadConfig sets the logger up and reads configuration.
func loadConfig() (*config.Config, *logrus.Logger, error) {
	log := setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level, err := logrus.ParseLevel(cfg.App.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("Unknown LOG_LEVEL %q, keeping info", cfg.App.LogLevel)
	}
	log.Info("Configuration loaded successfully")

	return cfg, log, nil
}

// setupLogger configures the logrus logger
func setupLogger() *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	return logrus.StandardLogger()
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, stores *Stores, redisClient *redis.Client, drafts *service.DraftRegistry) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize services
	sessions := service.NewRedisSessionStore(redisClient)
	auditService := service.NewAuditService(log)
	completer := llm.NewChatClient(cfg.LLM, nil, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, stores.Patients, jwtService, sessions, drafts, auditService)
	patientUsecase := usecase.NewPatientUsecase(log, stores.Patients, sessions, auditService)
	criterionUsecase := usecase.NewCriterionUsecase(log, stores.Criteria, auditService)
	questionUsecase := usecase.NewQuestionUsecase(log, stores.Criteria, completer, cfg.LLM.Concurrency)
	ratingUsecase := usecase.NewRatingUsecase(log, stores.Ratings, stores.Criteria, auditService)
	draftUsecase := usecase.NewDraftUsecase(drafts)
	linkUsecase := usecase.NewPatientLinkUsecase(log, stores.Patients, stores.PatientLinks, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	criterionHandler := handler.NewCriterionHandler(criterionUsecase)
	questionHandler := handler.NewQuestionHandler(questionUsecase, customValidator)
	ratingHandler := handler.NewRatingHandler(ratingUsecase, customValidator)
	draftHandler := handler.NewDraftHandler(draftUsecase, customValidator)
	linkHandler := handler.NewPatientLinkHandler(linkUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(log, jwtService, sessions)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		authHandler,
		patientHandler,
		criterionHandler,
		questionHandler,
		ratingHandler,
		draftHandler,
		linkHandler,
		authMiddleware,
		corsMiddleware,
	)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return app.waitForShutdown(errCh)
}

// waitForShutdown blocks until an interrupt signal is received or the
// listener fails
func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case <-quit:
		app.Log.Info("Shutting down server...")
	case serveErr = <-errCh:
		app.Log.Errorf("Failed to start server: %v", serveErr)
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return serveErr
}

// Close stops background workers and closes connections
func (app *App) Close() {
	if app.Drafts != nil {
		app.Drafts.Stop()
	}

	if app.Stores != nil {
		app.Stores.Close()
	}

	if app.RedisClient != nil {
		_ = app.RedisClient.Close()
	}
}
