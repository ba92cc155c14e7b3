package server

import (
	"net/http"
	"strconv"
	"strings"

	"carlog/internal/app"
	"carlog/internal/ratelimit"
	"carlog/internal/util"
	"carlog/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App

	// Optional; endpoints run unthrottled when nil.
	LoginLimiter  *ratelimit.FixedWindowLimiter
	SignupLimiter *ratelimit.FixedWindowLimiter
}

// Server exposes the REST API.
type Server struct {
	app           *app.App
	mux           *http.ServeMux
	loginLimiter  *ratelimit.FixedWindowLimiter
	signupLimiter *ratelimit.FixedWindowLimiter
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:           cfg.App,
		mux:           http.NewServeMux(),
		loginLimiter:  cfg.LoginLimiter,
		signupLimiter: cfg.SignupLimiter,
	}
	s.routes()
	return s
}

// Router returns the configured handler wrapped in the shared middleware.
func (s *Server) Router() http.Handler {
	var h http.Handler = s.mux
	h = util.WithRequestLog(h)
	h = util.WithRequestID(h)
	h = util.WithCORS(h)
	h = util.WithSecurityHeaders(h)
	return h
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// auth
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/logout", s.handleLogout)
	s.mux.Handle("/api/auth/me", s.authenticated(s.handleMe))

	// admins: listing is restricted, signup is open
	s.mux.HandleFunc("/api/admins", s.handleAdmins)
	s.mux.Handle("/api/admins/", s.adminOnly(s.handleAdminByID))

	// users keep the original public mounting
	s.mux.HandleFunc("/api/users", s.handleUsers)
	s.mux.HandleFunc("/api/users/", s.handleUserByID)

	s.mux.Handle("/api/pros", s.authenticated(s.handlePros))
	s.mux.Handle("/api/pros/", s.authenticated(s.handleProByID))

	s.mux.Handle("/api/vehicles", s.authenticated(s.handleVehicles))
	s.mux.Handle("/api/vehicles/", s.authenticated(s.handleVehicleByPlate))

	s.mux.Handle("/api/brands", s.authenticated(s.handleBrands))
	s.mux.Handle("/api/brands/", s.authenticated(s.handleBrandByID))
	s.mux.Handle("/api/models", s.authenticated(s.handleModels))
	s.mux.Handle("/api/models/", s.authenticated(s.handleModelByID))
	s.mux.Handle("/api/types", s.authenticated(s.handleVehicleTypes))
	s.mux.Handle("/api/types/", s.authenticated(s.handleVehicleTypeByID))

	s.mux.Handle("/api/service-records", s.authenticated(s.handleServiceRecords))
	s.mux.Handle("/api/service-records/", s.authenticated(s.handleServiceRecordByID))

	s.mux.Handle("/api/appointments", s.authenticated(s.handleAppointments))
	s.mux.Handle("/api/appointments/", s.authenticated(s.handleAppointmentByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, domain.Admin)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, ok, err := s.authorize(r)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, admin)
	})
}

func (s *Server) adminOnly(next authHandler) http.Handler {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request, admin domain.Admin) {
		if admin.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r, admin)
	})
}

func (s *Server) authorize(r *http.Request) (domain.Admin, bool, error) {
	token, ok := bearerToken(r)
	if !ok {
		return domain.Admin{}, false, nil
	}
	return s.app.AdminFromToken(token)
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *Server) allow(limiter *ratelimit.FixedWindowLimiter, r *http.Request) bool {
	if limiter == nil {
		return true
	}
	return limiter.Allow(util.ClientIP(r))
}

// pathID extracts the trailing numeric id from paths like /api/pros/42.
func pathID(r *http.Request, prefix string) (uint, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
