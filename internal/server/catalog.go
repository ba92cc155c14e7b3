package server

import (
	"net/http"

	"carlog/pkg/domain"
)

type nameRequest struct {
	Name string `json:"name" validate:"required"`
}

type modelRequest struct {
	Name    string `json:"name" validate:"required"`
	BrandID uint   `json:"brandId" validate:"required,gt=0"`
}

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	switch r.Method {
	case http.MethodGet:
		brands, err := s.app.ListBrands()
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, brands)
	case http.MethodPost:
		var req nameRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := s.app.CreateBrand(req.Name)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleBrandByID(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	id, ok := pathID(r, "/api/brands/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		brand, err := s.app.GetBrand(id)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, brand)
	case http.MethodPut:
		var req nameRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		updated, err := s.app.UpdateBrand(id, req.Name)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeleteBrand(id); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	switch r.Method {
	case http.MethodGet:
		models, err := s.app.ListModels()
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, models)
	case http.MethodPost:
		var req modelRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := s.app.CreateModel(req.Name, req.BrandID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleModelByID(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	id, ok := pathID(r, "/api/models/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		model, err := s.app.GetModel(id)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, model)
	case http.MethodPut:
		var req modelRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		updated, err := s.app.UpdateModel(id, req.Name, req.BrandID)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeleteModel(id); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleVehicleTypes(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	switch r.Method {
	case http.MethodGet:
		types, err := s.app.ListVehicleTypes()
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, types)
	case http.MethodPost:
		var req nameRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := s.app.CreateVehicleType(req.Name)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleVehicleTypeByID(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	id, ok := pathID(r, "/api/types/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		t, err := s.app.GetVehicleType(id)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	case http.MethodPut:
		var req nameRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		updated, err := s.app.UpdateVehicleType(id, req.Name)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeleteVehicleType(id); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
