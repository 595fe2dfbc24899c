package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	"go-jobboard-backend/internal/cache"
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"
)

// @title           Job Board Backend API
// @version         1.0
// @description     Backend for a job board: offers, applications, meetings and CVs.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	defer logger.Sync()
	logger.Log.Info("Starting job board backend", zap.String("port", cfg.Port))

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	// 4. Setup Redis (optional; stats cache and rate limiting degrade without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", zap.Error(err))
	}
	defer redis.Close()

	// 5. Setup file storage (optional; CV uploads disabled without credentials)
	var cvStore *storage.CVStore
	cvStore, err = storage.NewCVStore(storage.Config{
		CloudName:   cfg.CloudinaryCloudName,
		APIKey:      cfg.CloudinaryAPIKey,
		APISecret:   cfg.CloudinaryAPISecret,
		Folder:      cfg.CloudinaryFolder,
		MaxFileSize: cfg.MaxCVFileSizeBytes,
	}, logger.Log)
	if err != nil {
		logger.Log.Warn("File storage unavailable - CV uploads disabled", zap.Error(err))
		cvStore = nil
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	employerRepo := postgres.NewEmployerRepository(dbPool)
	jobOfferRepo := postgres.NewJobOfferRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	meetingRepo := postgres.NewMeetingRepository(dbPool)
	cvRepo := postgres.NewCVRepository(dbPool)
	accountRepo := postgres.NewAccountRepository(dbPool)

	// 7. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	// Keep the interface nil when no cache exists; a typed nil would pass
	// the != nil checks inside the usecase.
	var statsCache usecase.StatsCache
	if c := cache.NewStatsCache(redis.Client(), cfg.StatsCacheTTL); c != nil {
		statsCache = c
	}

	authUC := usecase.NewAuthUsecase(userRepo, validate,
		cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, employerRepo, validate)
	employerUC := usecase.NewEmployerUsecase(candidateRepo, employerRepo, validate)
	jobOfferUC := usecase.NewJobOfferUsecase(jobOfferRepo, candidateRepo, employerRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobOfferRepo, cvRepo,
		meetingRepo, candidateRepo, employerRepo, statsCache, validate)
	meetingUC := usecase.NewMeetingUsecase(meetingRepo, applicationRepo, jobOfferRepo,
		candidateRepo, employerRepo, validate)
	cvUC := usecase.NewCVUsecase(cvRepo, candidateRepo, employerRepo)
	accountUC := usecase.NewAccountUsecase(userRepo, accountRepo)

	healthChecks := map[string]func(ctx context.Context) error{
		"database": dbPool.Ping,
	}
	if rc := redis.Client(); rc != nil {
		healthChecks["cache"] = func(ctx context.Context) error {
			return rc.Ping(ctx).Err()
		}
	}
	healthUC := usecase.NewHealthUsecase(healthChecks)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		CandidateUC:   candidateUC,
		EmployerUC:    employerUC,
		JobOfferUC:    jobOfferUC,
		ApplicationUC: applicationUC,
		MeetingUC:     meetingUC,
		CVUC:          cvUC,
		AccountUC:     accountUC,
		HealthUC:      healthUC,
		CVStore:       cvStore,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
