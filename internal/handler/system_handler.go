package handlers

import (
	"context"
	"net/http"
	"time"
)

func (h *Handlers) PublicTest(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, MessageResponse{Message: "This is a public!"}, http.StatusOK)
}

func (h *Handlers) PrivateTest(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, MessageResponse{Message: "This is a protected endpoint!"}, http.StatusOK)
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.Health != nil {
		if err := h.Health.HealthCheck(ctx); err != nil {
			h.Log.WithError(err).Warn("health check failed")
			writeSuccess(w, HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
			return
		}
	}

	writeSuccess(w, HealthResponse{Status: "ok"}, http.StatusOK)
}
