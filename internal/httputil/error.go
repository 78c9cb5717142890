package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AdamBeresnev/sinuca-bracket/internal/bracket"
	"github.com/AdamBeresnev/sinuca-bracket/internal/service"
	"github.com/AdamBeresnev/sinuca-bracket/internal/store"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	http.Error(w, msg, http.StatusBadRequest)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	http.Error(w, msg, http.StatusNotFound)
}

func Forbidden(w http.ResponseWriter, msg string) {
	slog.Warn("forbidden", "message", msg)
	http.Error(w, msg, http.StatusForbidden)
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	slog.Warn("conflict", "message", msg, "error", err)
	http.Error(w, msg, http.StatusConflict)
}

// StatusFor maps the domain errors to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, bracket.ErrValidation), errors.Is(err, bracket.ErrSelfMatch):
		return http.StatusBadRequest
	case errors.Is(err, bracket.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrVersionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes the response for a failed command. Domain errors carry
// a message meant for the operator, anything else is logged and hidden.
func FromError(w http.ResponseWriter, msg string, err error) {
	switch StatusFor(err) {
	case http.StatusBadRequest:
		BadRequest(w, err.Error(), err)
	case http.StatusNotFound:
		NotFound(w, err.Error(), err)
	case http.StatusForbidden:
		Forbidden(w, err.Error())
	case http.StatusConflict:
		Conflict(w, err.Error(), err)
	default:
		InternalServerError(w, msg, err)
	}
}
