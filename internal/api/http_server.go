// Package api связывает сервисы воедино и отдает их наружу как JSON API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dockside/internal/config"
	"dockside/internal/database"
	"dockside/internal/export"
	"dockside/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes the booking workflow over HTTP JSON endpoints.
type Server struct {
	cfg      config.HTTPConfig
	db       *database.DB
	auth     *service.AuthService
	tokens   *service.TokenManager
	yachts   *service.YachtService
	bookings *service.BookingService
	exporter *export.Exporter
	limiter  *clientLimiter
	logger   *zerolog.Logger
	server   *http.Server
}

type Deps struct {
	DB       *database.DB
	Auth     *service.AuthService
	Tokens   *service.TokenManager
	Yachts   *service.YachtService
	Bookings *service.BookingService
	Exporter *export.Exporter
}

func NewServer(cfg config.HTTPConfig, deps Deps, logger *zerolog.Logger) *Server {
	srv := &Server{
		cfg:      cfg,
		db:       deps.DB,
		auth:     deps.Auth,
		tokens:   deps.Tokens,
		yachts:   deps.Yachts,
		bookings: deps.Bookings,
		exporter: deps.Exporter,
		limiter:  newClientLimiter(cfg.RateLimit),
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/register", srv.handleRegister)
	mux.HandleFunc("/api/v1/auth/login", srv.handleLogin)
	mux.HandleFunc("/api/v1/auth/logout", srv.requireAuth(srv.handleLogout))
	mux.HandleFunc("/api/v1/yachts/search", srv.handleSearch)
	mux.HandleFunc("/api/v1/yachts", srv.handleYachts)
	mux.HandleFunc("/api/v1/yachts/", srv.handleYachtByID)
	mux.HandleFunc("/api/v1/bookings/export", srv.requireAuth(srv.handleExport))
	mux.HandleFunc("/api/v1/bookings", srv.requireAuth(srv.handleBookings))
	mux.HandleFunc("/api/v1/bookings/", srv.requireAuth(srv.handleBookingByID))
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	handler := srv.loggingMiddleware(srv.rateLimitMiddleware(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

// Handler возвращает корневой обработчик; используется в httptest
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.db.Ping(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
