package server

import (
	"net/http"
	"strings"
	"time"

	"carlog/internal/app"
	"carlog/pkg/domain"
)

type vehicleRequest struct {
	Registration    string    `json:"registration"`
	UserID          uint      `json:"userId" validate:"required,gt=0"`
	BrandID         uint      `json:"brandId" validate:"required,gt=0"`
	ModelID         uint      `json:"modelId" validate:"required,gt=0"`
	TypeID          uint      `json:"typeId" validate:"required,gt=0"`
	Color           string    `json:"color"`
	CirculationDate time.Time `json:"circulationDate"`
}

func (r vehicleRequest) params() app.VehicleParams {
	return app.VehicleParams{
		Registration:    r.Registration,
		UserID:          r.UserID,
		BrandID:         r.BrandID,
		ModelID:         r.ModelID,
		TypeID:          r.TypeID,
		Color:           r.Color,
		CirculationDate: r.CirculationDate,
	}
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	switch r.Method {
	case http.MethodGet:
		vehicles, err := s.app.ListVehicles()
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, vehicles)
	case http.MethodPost:
		var req vehicleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Registration) == "" {
			writeError(w, http.StatusBadRequest, "registration is required")
			return
		}
		created, err := s.app.CreateVehicle(req.params())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

// handleVehicleByPlate serves /api/vehicles/{plate} and the vehicle's service
// book at /api/vehicles/{plate}/service-records.
func (s *Server) handleVehicleByPlate(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/vehicles/")
	if plate, ok := strings.CutSuffix(rest, "/service-records"); ok {
		if plate == "" || strings.Contains(plate, "/") {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		records, err := s.app.ListVehicleServiceBook(plate)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
		return
	}
	if rest == "" || strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		vehicle, err := s.app.GetVehicle(rest)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, vehicle)
	case http.MethodPut:
		var req vehicleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		updated, err := s.app.UpdateVehicle(rest, req.params())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeleteVehicle(rest); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
