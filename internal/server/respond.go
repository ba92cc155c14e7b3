package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"carlog/internal/app"
	"carlog/internal/util"
	"carlog/pkg/auth"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeAppError translates application errors to HTTP status codes. Anything
// unrecognized is logged and reported as an opaque 500.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound), errors.Is(err, app.ErrNoInvoice):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrEmailAlreadyUsed),
		errors.Is(err, app.ErrRegistrationAlreadyUsed),
		errors.Is(err, app.ErrNameAlreadyUsed),
		errors.Is(err, app.ErrResourceInUse):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrUnknownReference),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordTooLong):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrInvoiceStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("request failed",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
			"requestId", util.RequestIDFromRequest(r))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
