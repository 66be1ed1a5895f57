package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpmw "github.com/vango-dev/vdiff/pkg/middleware"
	"github.com/vango-dev/vdiff/pkg/reconcile"
	"github.com/vango-dev/vdiff/pkg/view"
)

const tracerName = "github.com/vango-dev/vdiff/pkg/server"

// Server is the HTTP/WebSocket front end of the diff engine.
type Server struct {
	config     *Config
	router     chi.Router
	upgrader   websocket.Upgrader
	reconciler *reconcile.Reconciler
	metrics    *metrics
	views      *view.Metrics
	logger     *slog.Logger

	mu         sync.Mutex
	sessions   map[string]*Session
	httpServer *http.Server
}

// New creates a Server. A nil config uses DefaultConfig().
func New(config *Config) *Server {
	config = config.withDefaults()

	s := &Server{
		config:     config,
		reconciler: reconcile.New(nil),
		metrics:    newMetrics(config.Registry, config.Namespace),
		views:      view.NewMetrics(config.Registry, config.Namespace),
		logger:     config.Logger.With("component", "server"),
		sessions:   make(map[string]*Session),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(httpmw.Prometheus(
		httpmw.WithRegistry(s.config.Registry),
		httpmw.WithNamespace(s.config.Namespace),
	))
	r.Use(httpmw.OpenTelemetry(
		httpmw.WithTracerName(tracerName),
		httpmw.WithFilter(s.traced),
	))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Post("/diff", s.handleDiff)
		r.Post("/render", s.handleRender)
	})
	r.Get("/live", s.handleLive)
	if !s.config.DisableMetrics {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// traced excludes scrapes and health checks from tracing. Live sessions are
// traced per render by their view.
func (s *Server) traced(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/live", s.config.MetricsPath:
		return false
	}
	return true
}

// logRequests logs each request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// checkOrigin allows requests without an Origin header, same-origin
// requests and the configured origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

// Handler returns the HTTP handler serving all endpoints.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every live session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// SessionCount returns the number of open live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Config returns the server configuration with defaults applied.
func (s *Server) Config() *Config {
	return s.config
}

func (s *Server) addSession(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.activeSessions.Inc()
	s.metrics.totalSessions.Inc()
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	_, ok := s.sessions[sess.ID]
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	if ok {
		s.metrics.activeSessions.Dec()
	}
}
