package server

import (
	"net/http"
	"time"

	"carlog/internal/app"
	"carlog/pkg/domain"
)

type appointmentRequest struct {
	ScheduledAt         time.Time `json:"scheduledAt" validate:"required"`
	Reason              string    `json:"reason" validate:"required"`
	Status              string    `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	UserID              uint      `json:"userId" validate:"required,gt=0"`
	ProID               uint      `json:"proId" validate:"required,gt=0"`
	VehicleRegistration string    `json:"vehicleRegistration"`
}

func (r appointmentRequest) params() app.AppointmentParams {
	return app.AppointmentParams{
		ScheduledAt:         r.ScheduledAt,
		Reason:              r.Reason,
		Status:              domain.AppointmentStatus(r.Status),
		UserID:              r.UserID,
		ProID:               r.ProID,
		VehicleRegistration: r.VehicleRegistration,
	}
}

func (s *Server) handleAppointments(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	switch r.Method {
	case http.MethodGet:
		appointments, err := s.app.ListAppointments()
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appointments)
	case http.MethodPost:
		var req appointmentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := s.app.CreateAppointment(req.params())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAppointmentByID(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	id, ok := pathID(r, "/api/appointments/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		appointment, err := s.app.GetAppointment(id)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, appointment)
	case http.MethodPut:
		var req appointmentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		updated, err := s.app.UpdateAppointment(id, req.params())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeleteAppointment(id); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
