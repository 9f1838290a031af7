package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nargizhn/primehub-backend/api/routes"
	"github.com/nargizhn/primehub-backend/internal/attachments"
	"github.com/nargizhn/primehub-backend/internal/auth"
	"github.com/nargizhn/primehub-backend/internal/dashboard"
	"github.com/nargizhn/primehub-backend/internal/profiles"
	"github.com/nargizhn/primehub-backend/internal/ratings"
	"github.com/nargizhn/primehub-backend/internal/users"
	"github.com/nargizhn/primehub-backend/internal/vendors"
	"github.com/nargizhn/primehub-backend/pkg/auth/session"
	"github.com/nargizhn/primehub-backend/pkg/config"
	"github.com/nargizhn/primehub-backend/pkg/db"
	"github.com/nargizhn/primehub-backend/pkg/logger"
	"github.com/nargizhn/primehub-backend/pkg/metrics"
	"github.com/nargizhn/primehub-backend/pkg/migrate"
	"github.com/nargizhn/primehub-backend/pkg/redis"
	"github.com/nargizhn/primehub-backend/pkg/storage/gcs"
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

	if cfg.App.IsProd() && cfg.FeatureFlags.AutoMigrate {
		logg.Warn(context.Background(), "auto-migrate flag is ignored outside dev; run cmd/migrate instead")
	}
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var storageClient *gcs.Client
	if cfg.GCS.BucketName != "" {
		storageClient, err = gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap file storage", err)
			os.Exit(1)
		}
		storageCtx := logg.WithField(context.Background(), "bucket", storageClient.DefaultBucket())
		logg.Info(storageCtx, "file storage ready")
	} else {
		logg.Warn(context.Background(), "file storage disabled: no bucket configured")
	}

	userRepo := users.NewRepository(dbClient.DB())
	vendorRepo := vendors.NewRepository(dbClient.DB())
	ratingRepo := ratings.NewRepository(dbClient.DB())
	profileRepo := profiles.NewRepository(dbClient.DB())
	attachmentRepo := attachments.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	signupService, err := auth.NewSignupService(auth.SignupServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create signup service", err)
		os.Exit(1)
	}

	vendorService, err := vendors.NewService(vendorRepo, ratingRepo, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create vendor service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(vendorRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	profileService, err := newProfileService(profileRepo, userRepo, storageClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	attachmentService, err := newAttachmentService(attachmentRepo, vendorRepo, storageClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create attachment service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	deps := routes.Dependencies{
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessionManager,
		HTTPMetrics: httpMetrics,
		MetricsPage: metrics.Handler(registry),
		AuthService: authService,
		Signup:      signupService,
		Vendors:     vendorService,
		Dashboard:   dashboardService,
		Profiles:    profileService,
		Attachments: attachmentService,
	}
	if storageClient != nil {
		deps.Storage = storageClient
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

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, deps),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// newProfileService keeps the storage dependency a true nil when the client is
// absent so the service can detect the unconfigured state.
func newProfileService(repo *profiles.Repository, userRepo *users.Repository, storage *gcs.Client) (profiles.Service, error) {
	if storage == nil {
		return profiles.NewService(repo, userRepo, nil)
	}
	return profiles.NewService(repo, userRepo, storage)
}

func newAttachmentService(repo *attachments.Repository, vendorRepo *vendors.Repository, storage *gcs.Client) (attachments.Service, error) {
	if storage == nil {
		return attachments.NewService(repo, vendorRepo, nil)
	}
	return attachments.NewService(repo, vendorRepo, storage)
}
