package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"postauth/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors []service.FieldError `json:"errors"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service errors onto status codes. Unknown errors
// are logged and answered with a generic 500.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError

	switch {
	case errors.As(err, &verr):
		writeSuccess(w, ValidationErrorResponse{Errors: verr.Errors}, http.StatusBadRequest)
	case errors.Is(err, service.ErrUserExists):
		WriteError(w, "User already exists!", http.StatusBadRequest)
	case errors.Is(err, service.ErrUnauthorized):
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, "Post not found", http.StatusNotFound)
	case errors.Is(err, service.ErrPersistenceConflict):
		WriteError(w, "The post was modified by another request", http.StatusConflict)
	default:
		h.Log.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}
