package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nargizhn/primehub-backend/api/controllers"
	"github.com/nargizhn/primehub-backend/api/middleware"
	"github.com/nargizhn/primehub-backend/internal/attachments"
	"github.com/nargizhn/primehub-backend/internal/auth"
	"github.com/nargizhn/primehub-backend/internal/dashboard"
	"github.com/nargizhn/primehub-backend/internal/profiles"
	"github.com/nargizhn/primehub-backend/internal/vendors"
	"github.com/nargizhn/primehub-backend/pkg/config"
	"github.com/nargizhn/primehub-backend/pkg/db"
	"github.com/nargizhn/primehub-backend/pkg/logger"
	"github.com/nargizhn/primehub-backend/pkg/metrics"
	"github.com/nargizhn/primehub-backend/pkg/redis"
	"github.com/nargizhn/primehub-backend/pkg/storage/gcs"
)

// sessionManager is the slice of the session store the HTTP layer needs.
type sessionManager interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// Dependencies carries everything the router mounts.
type Dependencies struct {
	DB           db.Pinger
	Redis        *redis.Client
	Storage      gcs.Pinger
	Sessions     sessionManager
	HTTPMetrics  *metrics.HTTPMetrics
	MetricsPage  http.Handler
	AuthService  auth.Service
	Signup       auth.SignupService
	Vendors      vendors.Service
	Dashboard    dashboard.Service
	Profiles     profiles.Service
	Attachments  attachments.Service
}

// NewRouter assembles the HTTP surface: health and metrics endpoints, the
// rate-limited auth flows, and the authenticated API group.
func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.CORS())
	r.Use(middleware.Logging(logg))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	maxUpload := cfg.Media.MaxUploadBytes()

	r.Get("/health/live", controllers.HealthLive(cfg))
	r.Get("/health/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis, deps.Storage))
	if deps.MetricsPage != nil {
		r.Handle("/metrics", deps.MetricsPage)
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/api/auth", func(ar chi.Router) {
		ar.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		ar.With(middleware.AuthRateLimit(signupPolicy, deps.Redis, logg)).
			Post("/signup", controllers.AuthSignup(deps.Signup, logg))
		ar.Post("/logout", controllers.AuthLogout(deps.Sessions, cfg.JWT, logg))
		ar.Post("/refresh", controllers.AuthRefresh(deps.Sessions, cfg.JWT, logg))
	})

	r.Route("/api", func(pr chi.Router) {
		pr.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		pr.Get("/ping", controllers.PrivatePing())
		pr.Get("/dashboard", controllers.DashboardOverview(deps.Dashboard, logg))

		pr.Route("/profile", func(sr chi.Router) {
			sr.Get("/", controllers.ProfileGet(deps.Profiles, logg))
			sr.Put("/", controllers.ProfileUpdate(deps.Profiles, logg))
			sr.Post("/avatar", controllers.ProfileAvatarUpload(deps.Profiles, maxUpload, logg))
		})

		pr.Route("/vendors", func(vr chi.Router) {
			vr.Get("/", controllers.VendorList(deps.Vendors, logg))
			vr.Post("/", controllers.VendorCreate(deps.Vendors, logg))

			vr.Route("/{vendorId}", func(sr chi.Router) {
				sr.Get("/", controllers.VendorGet(deps.Vendors, logg))
				sr.Put("/", controllers.VendorUpdate(deps.Vendors, logg))
				sr.Delete("/", controllers.VendorDelete(deps.Vendors, logg))
				sr.Put("/rating", controllers.VendorRate(deps.Vendors, logg))

				sr.Get("/attachment", controllers.AttachmentGet(deps.Attachments, logg))
				sr.Put("/attachment", controllers.AttachmentReplace(deps.Attachments, maxUpload, logg))
				sr.Delete("/attachment", controllers.AttachmentRemove(deps.Attachments, logg))
			})
		})
	})

	return r
}
