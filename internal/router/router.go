package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	handlers "postauth/internal/handler"
	"postauth/internal/middleware"
	"postauth/internal/service"
)

// New builds the HTTP surface. Every request passes through token resolution;
// routes that need an identity are additionally wrapped in RequireAuth.
func New(h *handlers.Handlers, tokens service.TokenService, log logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()
	protected := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(fn)
	}

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	posts := r.PathPrefix("/api/posts").Subrouter()
	posts.HandleFunc("", h.GetPublishedPosts).Methods(http.MethodGet)
	posts.Handle("", protected(h.CreatePost)).Methods(http.MethodPost)
	posts.Handle("/my", protected(h.GetMyPosts)).Methods(http.MethodGet)
	posts.HandleFunc("/{id:[0-9]+}", h.GetPost).Methods(http.MethodGet)
	posts.Handle("/{id:[0-9]+}", protected(h.UpdatePost)).Methods(http.MethodPut)
	posts.Handle("/{id:[0-9]+}", protected(h.DeletePost)).Methods(http.MethodDelete)

	test := r.PathPrefix("/api/test").Subrouter()
	test.HandleFunc("/public", h.PublicTest).Methods(http.MethodGet)
	test.Handle("/private", protected(h.PrivateTest)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return middleware.Chain(
		r,
		middleware.AuthMiddleware(tokens, log),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(log),
	)
}
