package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matthias/cv-wizard/internal/completion"
	"github.com/matthias/cv-wizard/internal/config"
	"github.com/matthias/cv-wizard/internal/db"
	"github.com/matthias/cv-wizard/internal/docimport"
	"github.com/matthias/cv-wizard/internal/jobposting"
	"github.com/matthias/cv-wizard/internal/layout"
	"github.com/matthias/cv-wizard/internal/llm"
	"github.com/matthias/cv-wizard/internal/profilecache"
	"github.com/matthias/cv-wizard/internal/render"
	"github.com/matthias/cv-wizard/internal/server/middleware"
	"github.com/matthias/cv-wizard/internal/server/ratelimit"
	"github.com/matthias/cv-wizard/internal/session"
	"github.com/matthias/cv-wizard/internal/wizard"
)

// Server is the HTTP front of the wizard service.
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	engine      *wizard.Engine
	store       session.Store
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler

	stopJanitor context.CancelFunc
}

// New wires the full service from configuration: database, stores, model
// client, renderer, and the wizard engine.
func New(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	completions := completion.NewClient(llmClient, 0)

	limits := layout.DefaultLimits()
	if cfg.LayoutLimitsFile != "" {
		if limits, err = layout.LoadLimits(cfg.LayoutLimitsFile); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to load layout limits: %w", err)
		}
	}

	var themes render.ThemeStore = render.NewEmbeddedThemeStore()
	if cfg.ThemesDir != "" {
		themes = render.NewDirThemeStore(cfg.ThemesDir)
	}

	store := session.NewPostgresStore(database.Pool())
	engine := wizard.NewEngine(wizard.Config{
		Store:       store,
		Profiles:    profilecache.NewPostgresStore(database.Pool()),
		Completions: completions,
		Importer:    docimport.NewImporter(completions),
		Analyzer:    jobposting.NewAnalyzer(completions),
		Fetcher: wizard.FetcherFunc(func(ctx context.Context, url string) (string, error) {
			return jobposting.FetchText(ctx, url, jobposting.DefaultFetchOptions())
		}),
		Renderer:   render.NewPDFRenderer(themes, cfg.ChromePath),
		Themes:     themes,
		Limits:     limits,
		SessionTTL: cfg.SessionTTL,
	})

	s := &Server{
		db:     database,
		engine: engine,
		store:  store,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		// A chat turn may include a model call and a PDF print.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the route table. Kept separate so tests can drive handlers
// without a listener.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	mux.Handle("POST /auth/password", authed(http.HandlerFunc(s.authHandler.UpdatePassword)))
	mux.Handle("POST /chat", authed(http.HandlerFunc(s.handleChat)))

	return mux
}

// Start begins listening and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	janitorCtx, cancel := context.WithCancel(context.Background())
	s.stopJanitor = cancel
	startJanitor(janitorCtx, s.store, time.Hour)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("server: listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-stop
	log.Println("server: shutting down")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.stopJanitor()
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.db.Close()
	log.Println("server: stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("server: failed to encode JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID identifies the client for rate limiting. Plain RemoteAddr
// for now; X-Forwarded-For would need a trusted proxy list first.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"retry_after": info.RetryAfter.Seconds(),
	})
}
