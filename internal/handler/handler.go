package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"postauth/internal/service"
)

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	Health      HealthChecker
	Log         logrus.FieldLogger
}

func NewHandlers(services *service.Service, health HealthChecker, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		AuthService: services.Auth,
		PostService: services.Post,
		Health:      health,
		Log:         log,
	}
}
