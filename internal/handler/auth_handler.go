package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"postauth/internal/models"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.AuthService.Register(r.Context(), req); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "User created successfully!"}, http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, LoginResponse{Token: token.Token, Expiration: token.Expiration}, http.StatusOK)
}
