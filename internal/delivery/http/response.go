package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/finance-trivia-bot/internal/calculator"
	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
	"github.com/aliskhannn/finance-trivia-bot/internal/repository"
	"github.com/aliskhannn/finance-trivia-bot/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrNoQuestionsAvailable),
		errors.Is(err, repository.ErrResourcesNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidSelector),
		errors.Is(err, entities.ErrOutOfRangeAnswer),
		errors.Is(err, service.ErrInvalidCount),
		errors.Is(err, calculator.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entities.ErrInvalidStateTransition),
		errors.Is(err, entities.ErrEmptyHistory):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error. Unexpected errors are logged and hidden.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("player_id", PlayerFromContext(r.Context())),
			zap.Error(err),
		)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
