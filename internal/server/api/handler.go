// Package api содержит HTTP-обработчики (Handler layer).
//
// Обработчики разбирают запрос, дёргают сервисный слой и маппят
// доменные ошибки на HTTP-статусы. Бизнес-логики здесь нет.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

const (
	ContentType     = "Content-Type"
	JsonContentType = "application/json"
)

// Handler — корневой HTTP-обработчик приложения.
type Handler struct {
	Svc *service.Services
}

func NewHandler(svc *service.Services) *Handler {
	return &Handler{Svc: svc}
}

// errorResponse — единый формат тела ошибки.
type errorResponse struct {
	Error string `json:"error"`
}

// WriteError маппит доменную ошибку на HTTP-статус и пишет JSON-тело.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, serr.ErrInvalidInput), errors.Is(err, serr.ErrBadJSON):
		status = http.StatusBadRequest
	case errors.Is(err, serr.ErrInvalidCredentials), errors.Is(err, serr.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, serr.ErrEmailNotConfirmed):
		status = http.StatusForbidden
	case errors.Is(err, serr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, serr.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, serr.ErrRateLimited):
		status = http.StatusTooManyRequests
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Не светим внутренности наружу
		msg = serr.ErrInternal.Error()
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return serr.ErrBadJSON
	}
	return nil
}
