package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/milkwise/mother-care-service/internal/adapters/handler"
	"github.com/milkwise/mother-care-service/internal/adapters/middleware"
	"github.com/milkwise/mother-care-service/internal/adapters/repository"
	"github.com/milkwise/mother-care-service/internal/adapters/resetcode"
	"github.com/milkwise/mother-care-service/internal/config"
	"github.com/milkwise/mother-care-service/internal/core/ports"
	"github.com/milkwise/mother-care-service/internal/core/services"
)

// Options wires the router's external dependencies. Nil DB selects the
// in-memory store, nil Redis the in-memory reset-code store (dev mode).
type Options struct {
	Config *config.Config
	DB     *sql.DB
	Redis  *redis.Client
	Log    zerolog.Logger
}

// New assembles services, handlers and middleware into the HTTP surface.
func New(opts Options) http.Handler {
	cfg := opts.Config

	var (
		motherRepo  ports.MotherRepository
		babyRepo    ports.BabyRepository
		feedingRepo ports.FeedingRepository
	)
	if opts.DB != nil {
		sqlRepo := repository.NewSQLRepository(opts.DB)
		motherRepo, babyRepo, feedingRepo = sqlRepo, sqlRepo, sqlRepo
	} else {
		memRepo := repository.NewMemoryRepository()
		motherRepo, babyRepo, feedingRepo = memRepo, memRepo, memRepo
	}

	var resetStore ports.ResetCodeStore
	if opts.Redis != nil {
		resetStore = resetcode.NewRedisStore(opts.Redis, cfg.ResetCodeTTL)
	} else {
		resetStore = resetcode.NewMemoryStore(cfg.ResetCodeTTL)
	}

	tokens := services.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	registrationSvc := services.NewRegistrationService(motherRepo, tokens, cfg.BcryptCost, opts.Log)
	authSvc := services.NewAuthService(motherRepo, tokens, resetStore, cfg.BcryptCost, opts.Log)
	babySvc := services.NewBabyService(babyRepo, opts.Log)
	feedingSvc := services.NewFeedingService(babyRepo, feedingRepo, opts.Log)

	motherHandler := handler.NewMotherHandler(registrationSvc, opts.Log)
	authHandler := handler.NewAuthHandler(authSvc, opts.Log)
	babyHandler := handler.NewBabyHandler(babySvc, feedingSvc, opts.Log)
	healthHandler := handler.NewHealthHandler(opts.DB, opts.Redis)

	authMW := middleware.NewAuthMiddleware(tokens, opts.Log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Live)
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	// Public routes.
	r.Post("/maes", motherHandler.Create)
	r.Post("/login", authHandler.Login)
	r.Post("/esqueceusenha", authHandler.ForgotPassword)

	// Authenticated routes.
	r.Group(func(r chi.Router) {
		r.Use(authMW.RequireMother)

		r.Get("/maes/{id}", motherHandler.Get)
		r.Put("/maes", motherHandler.Update)

		r.Post("/bebes", babyHandler.Create)
		r.Get("/bebes", babyHandler.List)
		r.Get("/bebes/{bebe_id}/ordenhas", babyHandler.ListFeedings)
		r.Post("/bebes/{bebe_id}/ordenhas", babyHandler.AddFeeding)

		r.Post("/alterarsenha", authHandler.ChangePassword)
	})

	return r
}
