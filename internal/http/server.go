// Package http wires the ledger to a server-rendered HTMX frontend.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"splittab/internal/cache"
	"splittab/internal/config"
	"splittab/internal/core"
	"splittab/internal/ledger"
	"splittab/internal/log"
	"splittab/internal/middleware/ratelimit"
	"splittab/internal/middleware/security"
	"splittab/internal/middleware/trace"
	appweb "splittab/web"
)

type Server struct {
	http.Server

	logger    *log.Logger
	led       *ledger.Ledger
	templates *template.Template

	primary     core.Currency
	defaultCurr core.Currency
	defaultLang string

	limiter  *ratelimit.Limiter
	resolver *security.IPResolver

	// Rendered list partials keyed on "revision|currency|lang". A ledger
	// mutation bumps the revision, so stale entries are never served and
	// never need invalidating.
	partials *cache.LRU[string]

	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server.
func NewServer(cfg *config.Config, logger *log.Logger, led *ledger.Ledger) *Server {
	router := chi.NewRouter()

	s := &Server{
		Server: http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:      logger.WithComponent(log.ComponentHTTP),
		led:         led,
		primary:     core.Currency(cfg.PrimaryCurrency),
		defaultCurr: core.Currency(cfg.DefaultCurrency),
		defaultLang: cfg.Language,
		limiter: ratelimit.New(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
		}),
		resolver:    security.NewIPResolver(),
		partials:    cache.NewLRU[string](cfg.CacheSize, cfg.CacheTTL),
		stopCleanup: make(chan struct{}),
	}
	go s.runCacheCleanup()

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	tracer := trace.New(logger, s.resolver.ClientIP)
	router.Use(tracer.Handler)
	router.Use(security.Headers(security.DefaultHeadersConfig()))
	router.Use(s.limitMutations)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		router.Handle("/static/*", security.StaticAssets(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	router.Get("/", s.handleIndex)
	router.Get("/healthz", handleHealth)
	router.Get("/readyz", handleReady)
	router.Get("/ui/expense-list", s.handleExpenseList)

	router.Post("/expenses", s.handleCreateExpenses)
	router.Put("/expenses/{id}", s.handleEditExpense)
	router.Delete("/expenses/{id}", s.handleDeleteExpense)
	router.Post("/expenses/{id}/select", s.handleToggleExpense)
	router.Post("/expenses/{id}/edit", s.handleEditCursor)
	router.Post("/batch-edit", s.handleBatchEdit)

	router.Post("/categories", s.handleUpsertCategory)
	router.Put("/categories/{key}", s.handleEditCategory)
	router.Delete("/categories/{key}", s.handleDeleteCategory)
	router.Post("/categories/{key}/select", s.handleToggleCategory)

	router.Get("/export", s.handleExport)
	router.Post("/import", s.handleImport)

	return s
}

// limitMutations applies the rate limiter to everything except reads.
func (s *Server) limitMutations(next http.Handler) http.Handler {
	limited := s.limiter.Middleware(s.resolver.ClientIP)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}
		limited.ServeHTTP(w, r)
	})
}

func (s *Server) runCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.partials.CleanExpired(); removed > 0 {
				s.logger.Debug("Cache cleanup completed", log.FieldCount, removed)
			}
		case <-s.stopCleanup:
			return
		}
	}
}

// Shutdown stops the cleanup goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		close(s.stopCleanup)
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
