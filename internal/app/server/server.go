package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"enroll/internal/domain/accounts"
	"enroll/internal/domain/submission"
	"enroll/internal/platform/config"
	cryptoutil "enroll/internal/platform/crypto"
	"enroll/internal/platform/db"
	"enroll/internal/platform/metrics"
	authhandler "enroll/internal/transport/http/handlers/auth"
	formshandler "enroll/internal/transport/http/handlers/forms"
	usershandler "enroll/internal/transport/http/handlers/users"
	"enroll/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Metrics
}

// New builds a fully wired application: pool, migrations, seed, and router.
// Everything stateful is constructed here once and passed down explicitly.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	crypto, err := cryptoutil.New(cfg.FormEncryptionKey)
	if err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}

	collector := metrics.New()

	submissionSvc := submission.NewService(
		submission.NewStore(pool),
		submission.NewCodec(crypto, cfg.PublicFields),
	)
	accountsSvc := accounts.NewService(accounts.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(collector.Registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(accountsSvc, crypto, collector, cfg.JWTSecret, cfg.TokenTTL)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/mfa/setup", authHandler.HandleMFASetup)
			r.Post("/auth/mfa/enable", authHandler.HandleMFAEnable)
			r.Post("/auth/mfa/disable", authHandler.HandleMFADisable)
		})

		formshandler.NewHandler(submissionSvc, collector).RegisterRoutes(r)
		usershandler.NewHandler(accountsSvc).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, Pool: pool, Router: router, Metrics: collector}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

func Run() {
	cfg := config.Load()

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("enroll server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
