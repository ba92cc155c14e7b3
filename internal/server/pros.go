package server

import (
	"net/http"

	"carlog/internal/app"
	"carlog/pkg/domain"
)

type proRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	PostalCode string `json:"postalCode"`
	City       string `json:"city"`
	Siret      string `json:"siret"`
}

func (r proRequest) params() app.ProParams {
	return app.ProParams{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		PostalCode: r.PostalCode,
		City:       r.City,
		Siret:      r.Siret,
	}
}

func (s *Server) handlePros(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	switch r.Method {
	case http.MethodGet:
		pros, err := s.app.ListPros()
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pros)
	case http.MethodPost:
		var req proRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := s.app.CreatePro(req.params())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleProByID(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	id, ok := pathID(r, "/api/pros/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		pro, err := s.app.GetPro(id)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pro)
	case http.MethodPut:
		var req proRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		updated, err := s.app.UpdatePro(id, req.params())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeletePro(id); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
