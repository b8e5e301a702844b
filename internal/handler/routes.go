package handler

import (
	"net/http"

	"github.com/Dan9191/kitten-service/internal/auth"
	"github.com/Dan9191/kitten-service/internal/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires every route with its middleware chain
func NewRouter(h *Handler, tokens *auth.TokenService, limiter *middleware.RateLimiter, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)
	r.Use(middleware.RequestLogger(log), middleware.Recovery(h.WriteError))

	// Public routes
	public := r.NewRoute().Subrouter()
	public.Use(middleware.OptionalAuthMiddleware(tokens))
	public.HandleFunc("/", h.handle(h.Home)).Methods(http.MethodGet)
	public.HandleFunc("/healthz", h.handle(h.Health)).Methods(http.MethodGet)

	credentials := public.NewRoute().Subrouter()
	credentials.Use(limiter.Middleware(h.WriteError))
	credentials.HandleFunc("/register", h.handle(h.Register)).Methods(http.MethodPost)
	credentials.HandleFunc("/login", h.handle(h.Login)).Methods(http.MethodPost)

	// Protected routes
	kittens := r.PathPrefix("/kittens").Subrouter()
	kittens.Use(middleware.AuthMiddleware(tokens))
	kittens.HandleFunc("", h.handle(h.ListKittens)).Methods(http.MethodGet)
	kittens.HandleFunc("", h.handle(h.CreateKitten)).Methods(http.MethodPost)
	kittens.HandleFunc("/{id}", h.handle(h.GetKitten)).Methods(http.MethodGet)
	kittens.HandleFunc("/{id}", h.handle(h.DeleteKitten)).Methods(http.MethodDelete)

	return r
}
