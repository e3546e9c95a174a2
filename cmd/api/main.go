package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sadmanhossain/urbanland-backend/api/routes"
	"github.com/sadmanhossain/urbanland-backend/internal/applications"
	"github.com/sadmanhossain/urbanland-backend/internal/auth"
	"github.com/sadmanhossain/urbanland-backend/internal/dashboard"
	"github.com/sadmanhossain/urbanland-backend/internal/documents"
	"github.com/sadmanhossain/urbanland-backend/internal/owners"
	"github.com/sadmanhossain/urbanland-backend/internal/ownership"
	"github.com/sadmanhossain/urbanland-backend/internal/parcels"
	"github.com/sadmanhossain/urbanland-backend/internal/transactions"
	"github.com/sadmanhossain/urbanland-backend/internal/uploads"
	"github.com/sadmanhossain/urbanland-backend/internal/users"
	"github.com/sadmanhossain/urbanland-backend/pkg/auth/session"
	"github.com/sadmanhossain/urbanland-backend/pkg/config"
	"github.com/sadmanhossain/urbanland-backend/pkg/db"
	"github.com/sadmanhossain/urbanland-backend/pkg/logger"
	"github.com/sadmanhossain/urbanland-backend/pkg/metrics"
	"github.com/sadmanhossain/urbanland-backend/pkg/migrate"
	"github.com/sadmanhossain/urbanland-backend/pkg/redis"
	"github.com/sadmanhossain/urbanland-backend/pkg/storage/gcs"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing gcs client", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)
	ownersRepo := owners.NewRepository(conn)
	parcelsRepo := parcels.NewRepository(conn)
	recordsRepo := ownership.NewRepository(conn)
	documentsRepo := documents.NewRepository(conn)
	applicationsRepo := applications.NewRepository(conn)
	transactionsRepo := transactions.NewRepository(conn)

	uploadsService, err := uploads.NewService(gcsClient, cfg.GCS, cfg.Uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to create uploads service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		ProfilesRepo:   ownersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(usersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	recordsService, err := ownership.NewService(recordsRepo, ownersRepo, parcelsRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create ownership service", err)
		os.Exit(1)
	}

	ownersService, err := owners.NewService(ownersRepo, usersRepo, recordsRepo, uploadsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create owners service", err)
		os.Exit(1)
	}

	parcelsService, err := parcels.NewService(parcelsRepo, recordsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create parcels service", err)
		os.Exit(1)
	}

	documentsService, err := documents.NewService(documentsRepo, recordsRepo, parcelsRepo, uploadsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create documents service", err)
		os.Exit(1)
	}

	applicationsService, err := applications.NewService(applicationsRepo, usersRepo, parcelsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create applications service", err)
		os.Exit(1)
	}

	transactionsService, err := transactions.NewService(transactionsRepo, parcelsRepo, ownersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create transactions service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(usersRepo, ownersRepo, parcelsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	router := routes.NewRouter(cfg, logg, sessionManager, metrics.NewHTTPMetrics(), routes.Services{
		Auth:         authService,
		Users:        usersService,
		Owners:       ownersService,
		Parcels:      parcelsService,
		Records:      recordsService,
		Documents:    documentsService,
		Uploads:      uploadsService,
		Applications: applicationsService,
		Transactions: transactionsService,
		Dashboard:    dashboardService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	logg.Info(ctx, "shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}
