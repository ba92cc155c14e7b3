package server

import (
	"net/http"

	"carlog/internal/app"
	"carlog/pkg/domain"
)

type adminRequest struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=admin staff"`
}

// handleAdmins splits by method: listing is restricted to admins while POST
// stays open so the first account can be created.
func (s *Server) handleAdmins(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.adminOnly(s.handleListAdmins).ServeHTTP(w, r)
	case http.MethodPost:
		s.handleSignup(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	admins, err := s.app.ListAdmins()
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, admins)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !s.allow(s.signupLimiter, r) {
		writeError(w, http.StatusTooManyRequests, "too many signup attempts")
		return
	}
	var req adminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := s.app.CreateAdmin(app.AdminParams{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.AdminRole(req.Role),
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	// 200 with the stored account, matching the contract clients depend on.
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleAdminByID(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	id, ok := pathID(r, "/api/admins/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		admin, err := s.app.GetAdmin(id)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, admin)
	case http.MethodPut:
		var req adminRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		err := s.app.UpdateAdmin(id, app.AdminParams{
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Email:     req.Email,
			Password:  req.Password,
			Role:      domain.AdminRole(req.Role),
		})
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if err := s.app.DeleteAdmin(id); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
