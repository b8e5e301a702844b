package handler

import (
	"errors"
	"net/http"

	"github.com/Dan9191/kitten-service/internal/middleware"
	"github.com/Dan9191/kitten-service/internal/service"
)

// ErrorResponse is the body of every JSON error
type ErrorResponse struct {
	Error   string `json:"error"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// classify maps an error to its status code and kind
func classify(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, errUnauthenticated):
		return http.StatusUnauthorized, "AuthenticationError"
	case errors.Is(err, service.ErrNotOwner):
		// Existing clients expect 401 for a foreign kitten
		return http.StatusUnauthorized, "AuthorizationError"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "NotFoundError"
	case errors.As(err, &verr):
		return http.StatusBadRequest, "ValidationError"
	case errors.Is(err, middleware.ErrRateLimited):
		return http.StatusTooManyRequests, "RateLimitError"
	default:
		return http.StatusInternalServerError, "Error"
	}
}

// WriteError is the single place a failed request becomes a response
func (h *Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, name := classify(err)
	log := middleware.LoggerFromContext(r.Context()).WithError(err).WithField("error_name", name)

	if status >= http.StatusInternalServerError {
		log.Error("Request failed")
	} else {
		log.Info("Request rejected")
	}

	if status == http.StatusUnauthorized {
		middleware.Unauthorized(w)
		return
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error(), Name: name, Message: err.Error()})
}

// notFound answers requests that match no route
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error:   "route not found",
		Name:    "NotFoundError",
		Message: "route not found",
	})
}

// methodNotAllowed answers requests to a known path with an unsupported method
func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error:   "method not allowed",
		Name:    "MethodNotAllowedError",
		Message: "method not allowed",
	})
}
