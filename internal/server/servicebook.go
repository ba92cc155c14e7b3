package server

import (
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"carlog/internal/app"
	"carlog/pkg/domain"
)

const maxInvoiceBytes = 10 << 20

var invoiceExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type serviceRecordRequest struct {
	Date                time.Time `json:"date" validate:"required"`
	Service             string    `json:"service" validate:"required"`
	Observations        string    `json:"observations"`
	Kilometrage         int       `json:"kilometrage" validate:"gte=0"`
	InvoiceURL          string    `json:"invoiceUrl" validate:"omitempty,url"`
	ProID               uint      `json:"proId" validate:"required,gt=0"`
	VehicleRegistration string    `json:"vehicleRegistration" validate:"required"`
}

func (r serviceRecordRequest) params() app.ServiceRecordParams {
	return app.ServiceRecordParams{
		Date:                r.Date,
		Service:             r.Service,
		Observations:        r.Observations,
		Kilometrage:         r.Kilometrage,
		InvoiceURL:          r.InvoiceURL,
		ProID:               r.ProID,
		VehicleRegistration: r.VehicleRegistration,
	}
}

func (s *Server) handleServiceRecords(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	switch r.Method {
	case http.MethodGet:
		records, err := s.app.ListServiceRecords()
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	case http.MethodPost:
		var req serviceRecordRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		created, err := s.app.CreateServiceRecord(req.params())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

// handleServiceRecordByID serves /api/service-records/{id} and the invoice
// subresource at /api/service-records/{id}/invoice.
func (s *Server) handleServiceRecordByID(w http.ResponseWriter, r *http.Request, _ domain.Admin) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/service-records/")
	if raw, ok := strings.CutSuffix(rest, "/invoice"); ok {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		s.handleInvoice(w, r, uint(id))
		return
	}
	id, ok := pathID(r, "/api/service-records/")
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		record, err := s.app.GetServiceRecord(id)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	case http.MethodPut:
		var req serviceRecordRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		updated, err := s.app.UpdateServiceRecord(id, req.params())
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.app.DeleteServiceRecord(id); err != nil {
			writeAppError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleInvoice(w http.ResponseWriter, r *http.Request, id uint) {
	switch r.Method {
	case http.MethodGet:
		url, err := s.app.InvoiceLink(r.Context(), id)
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"url": url})
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxInvoiceBytes)
		if err := r.ParseMultipartForm(maxInvoiceBytes); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		file, header, err := r.FormFile("invoice")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invoice file is required")
			return
		}
		defer file.Close()
		ext := strings.ToLower(path.Ext(header.Filename))
		if !invoiceExtensions[ext] {
			writeError(w, http.StatusBadRequest, "unsupported invoice file type")
			return
		}
		record, err := s.app.AttachInvoice(r.Context(), id, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	default:
		methodNotAllowed(w)
	}
}
