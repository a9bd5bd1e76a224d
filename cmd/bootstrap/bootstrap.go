package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gait-analysis-backend/config"
	deliveryHttp "gait-analysis-backend/internal/delivery/http"
	"gait-analysis-backend/internal/delivery/http/handler"
	"gait-analysis-backend/internal/delivery/http/middleware"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/infrastructure/cache"
	"gait-analysis-backend/internal/infrastructure/database"
	"gait-analysis-backend/internal/media"
	"gait-analysis-backend/internal/repository"
	"gait-analysis-backend/internal/usecase"
	"gait-analysis-backend/pkg/queue"
	"gait-analysis-backend/pkg/validator"

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
	logrus.Info("Database connected successfully")

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Prepare the video store directories
	store := media.NewStore(cfg.Video.Dir)
	if err := store.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to prepare video store: %w", err)
	}

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, store)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// migrate keeps the schema current and seeds the role rows.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.Doctor{},
		&entity.Patient{},
		&entity.Video{},
		&entity.Action{},
		&entity.Stage{},
		&entity.StepInfo{},
	); err != nil {
		return err
	}
	return seedRoles(db)
}

func seedRoles(db *gorm.DB) error {
	roleRepo := repository.NewRoleRepository()
	ctx := context.Background()
	roles := []entity.Role{
		{ID: entity.RoleAdmin, RoleName: "admin", RoleDesc: "administrator"},
		{ID: entity.RoleDoctor, RoleName: "doctor", RoleDesc: "attending doctor"},
	}
	for _, role := range roles {
		existing, err := roleRepo.FindByID(ctx, db, role.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		role := role
		if err := roleRepo.Create(ctx, db, &role); err != nil {
			return err
		}
	}
	return nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store *media.Store) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize the analysis job queue and ffmpeg wrapper
	jobQueue := queue.NewGateway(redisClient)
	converter := media.NewConverter(cfg.Video.FFmpegPath, log)

	// Initialize repositories
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	videoRepo := repository.NewVideoRepository()
	actionRepo := repository.NewActionRepository()
	stageRepo := repository.NewStageRepository()
	stepRepo := repository.NewStepInfoRepository()

	// Initialize usecases
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, doctorRepo)
	videoUsecase := usecase.NewVideoUsecase(db, log, store, converter, videoRepo, patientRepo, doctorRepo, actionRepo, stageRepo, stepRepo)
	actionUsecase := usecase.NewActionUsecase(db, log, jobQueue, actionRepo, videoRepo, stageRepo, stepRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, stageRepo, stepRepo)
	tableUsecase := usecase.NewTableUsecase(db, log, stageRepo, stepRepo)
	managementUsecase := usecase.NewManagementUsecase(db, log, doctorRepo, patientRepo, videoRepo, actionRepo, stageRepo, stepRepo)

	// Initialize handlers
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	videoHandler := handler.NewVideoHandler(videoUsecase, customValidator)
	actionHandler := handler.NewActionHandler(actionUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	tableHandler := handler.NewTableHandler(tableUsecase)
	managementHandler := handler.NewManagementHandler(managementUsecase, customValidator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(doctorHandler, patientHandler, videoHandler, actionHandler, dashboardHandler, tableHandler, managementHandler, corsMiddleware)
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
