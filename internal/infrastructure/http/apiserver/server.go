// Package apiserver provides the JSON API HTTP server, including static
// hosting for the browser client.
package apiserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/infrastructure/config"
	"github.com/mealforge/mealforge/internal/infrastructure/http/handlers"
	"github.com/mealforge/mealforge/internal/infrastructure/http/middleware"
	"github.com/mealforge/mealforge/internal/infrastructure/security"
	"github.com/mealforge/mealforge/internal/ports/inbound"
)

// Server wires the middleware stack, API routes, and SPA hosting into
// one http.Server.
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	server   *http.Server
	router   *chi.Mux
	tokens   *security.TokenService
	accounts inbound.AccountService
	recipes  inbound.RecipeService
	history  inbound.HistoryService
	mongoDB  *mongo.Database
	redis    *redis.Client
	registry *prometheus.Registry
}

func New(
	cfg *config.Config,
	logger *zap.Logger,
	tokens *security.TokenService,
	accounts inbound.AccountService,
	recipes inbound.RecipeService,
	history inbound.HistoryService,
	mongoDB *mongo.Database,
	redisClient *redis.Client,
) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger,
		tokens:   tokens,
		accounts: accounts,
		recipes:  recipes,
		history:  history,
		mongoDB:  mongoDB,
		redis:    redisClient,
		registry: prometheus.NewRegistry(),
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS(&s.config.Server))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit(&s.config.RateLimit))
	r.Use(middleware.NewMetrics(s.registry).Handler())

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	authH := handlers.NewAuthHandlers(s.accounts, s.logger)
	recipeH := handlers.NewRecipeHandlers(s.recipes, s.logger)
	historyH := handlers.NewHistoryHandlers(s.history, s.logger)

	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.JSONOnly())
		r.Post("/register", authH.Register)
		r.Post("/login", authH.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JSONOnly())

		r.Route("/recipes", func(r chi.Router) {
			// Generation and reads work for guests; a valid token
			// upgrades generation to record history.
			r.Group(func(r chi.Router) {
				r.Use(middleware.MaybeAuthenticate(s.tokens))
				r.Post("/generate", recipeH.Generate)
				r.Get("/{id}", recipeH.Get)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(s.tokens))
				r.Put("/{id}", recipeH.Update)
			})
		})

		r.Route("/history", func(r chi.Router) {
			r.Use(middleware.Authenticate(s.tokens))
			r.Get("/", historyH.List)
			r.Post("/", historyH.Create)
			r.Get("/{id}", historyH.Get)
			r.Put("/{id}", historyH.Update)
			r.Delete("/{id}", historyH.Delete)
		})
	})

	s.setupStaticRoutes(r)
	return r
}

// setupStaticRoutes serves the single-page client. Unknown /app paths
// fall back to index.html so client-side routing works on refresh.
func (s *Server) setupStaticRoutes(r *chi.Mux) {
	staticDir := s.config.Server.StaticDir
	if staticDir == "" {
		return
	}

	fileServer := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/app", http.StatusFound)
	})

	r.Get("/app", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, index)
	})
	r.Get("/app/*", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, index)
	})

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := filepath.Join(staticDir, filepath.Clean(strings.TrimPrefix(req.URL.Path, "/")))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			http.NotFound(w, req)
			return
		}
		fileServer.ServeHTTP(w, req)
	})
}

type healthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := healthStatus{Status: "ok", Checks: map[string]string{}}

	if s.mongoDB != nil {
		if err := s.mongoDB.Client().Ping(ctx, nil); err != nil {
			status.Status = "degraded"
			status.Checks["mongo"] = err.Error()
		} else {
			status.Checks["mongo"] = "ok"
		}
	}

	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			status.Status = "degraded"
			status.Checks["redis"] = err.Error()
		} else {
			status.Checks["redis"] = "ok"
		}
	}

	code := http.StatusOK
	if status.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("starting api server",
		zap.String("addr", s.server.Addr),
		zap.String("static_dir", s.config.Server.StaticDir),
	)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down api server")
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
