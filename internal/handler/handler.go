package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dan9191/kitten-service/internal/middleware"
	"github.com/Dan9191/kitten-service/internal/models"
	"github.com/Dan9191/kitten-service/internal/service"
	"github.com/gorilla/mux"
)

const welcomePage = `
      <h1>Welcome to Cyber Kittens!</h1>
      <p>Cats are available at <a href="/kittens/1">/kittens/:id</a></p>
      <p>Create a new cat at <b><code>POST /kittens</code></b> and delete one at <b><code>DELETE /kittens/:id</code></b></p>
      <p>Log in via POST /login or register via POST /register</p>
    `

// errUnauthenticated is returned by protected handlers reached without an identity
var errUnauthenticated = errors.New("authentication required")

// identityHandler is a route handler that receives the optional caller identity
type identityHandler func(w http.ResponseWriter, r *http.Request, identity *models.Identity) error

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// handle adapts an identityHandler to net/http, funneling its error to WriteError
func (h *Handler) handle(fn identityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r, middleware.IdentityFromContext(r.Context())); err != nil {
			h.WriteError(w, r, err)
		}
	}
}

// Home serves the welcome page
func (h *Handler) Home(w http.ResponseWriter, r *http.Request, _ *models.Identity) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte(welcomePage))
	return err
}

// Health reports whether the store is reachable
func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ *models.Identity) error {
	if err := h.svc.Healthy(r.Context()); err != nil {
		middleware.LoggerFromContext(r.Context()).WithError(err).Warn("Health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return nil
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ *models.Identity) error {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		return err
	}

	token, err := h.svc.Register(r.Context(), creds.Username, creds.Password)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Message: "success", Token: token})
	return nil
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ *models.Identity) error {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		return service.ErrInvalidCredentials
	}

	token, err := h.svc.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{Message: "success", Token: token})
	return nil
}

// ListKittens returns the caller's kittens
func (h *Handler) ListKittens(w http.ResponseWriter, r *http.Request, identity *models.Identity) error {
	if identity == nil {
		return errUnauthenticated
	}

	kittens, err := h.svc.ListKittens(r.Context(), *identity)
	if err != nil {
		return err
	}

	out := make([]models.KittenCreated, 0, len(kittens))
	for i := range kittens {
		out = append(out, kittens[i].Summary())
	}
	writeJSON(w, http.StatusOK, out)
	return nil
}

// GetKitten returns one of the caller's kittens
func (h *Handler) GetKitten(w http.ResponseWriter, r *http.Request, identity *models.Identity) error {
	if identity == nil {
		return errUnauthenticated
	}
	id, err := kittenID(r)
	if err != nil {
		return err
	}

	kitten, err := h.svc.GetKitten(r.Context(), *identity, id)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, kitten.View())
	return nil
}

// CreateKitten creates a kitten owned by the caller
func (h *Handler) CreateKitten(w http.ResponseWriter, r *http.Request, identity *models.Identity) error {
	if identity == nil {
		return errUnauthenticated
	}

	var req models.KittenRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	kitten, err := h.svc.CreateKitten(r.Context(), *identity, req)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, kitten.Summary())
	return nil
}

// DeleteKitten deletes one of the caller's kittens
func (h *Handler) DeleteKitten(w http.ResponseWriter, r *http.Request, identity *models.Identity) error {
	if identity == nil {
		return errUnauthenticated
	}
	id, err := kittenID(r)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteKitten(r.Context(), *identity, id); err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func kittenID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, &service.ValidationError{Field: "id", Message: "must be a positive integer"}
	}
	return id, nil
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &service.ValidationError{Field: "body", Message: "must be valid JSON"}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
