// Package api — HTTP-обработчики сервиса цитат.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/quotes/service"
	sapi "github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(sapi.ContentType, sapi.JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return serr.ErrBadJSON
	}
	return nil
}

// Handler — HTTP-обработчики цитат, авторов и тегов.
type Handler struct {
	Svc *service.QuotesService
}

func NewHandler(svc *service.QuotesService) *Handler {
	return &Handler{Svc: svc}
}

// NewRouter собирает маршруты сервиса цитат.
func NewRouter(h *Handler, log *logger.HTTPLogger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger(log))

	r.Get("/", h.ListQuotes)
	r.Post("/quotes", h.CreateQuote)
	r.Post("/tags", h.CreateTag)
	r.Post("/authors", h.CreateAuthor)
	r.Get("/authors/{id}", h.GetAuthor)

	return r
}

type createTagRequest struct {
	Name string `json:"name"`
}

type createAuthorRequest struct {
	Fullname string `json:"fullname"`
	Born     string `json:"born"`
	Bio      string `json:"bio"`
}

type createQuoteRequest struct {
	Text   string   `json:"text"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
}

// ListQuotes отдаёт страницу цитат: GET /?page=N (по умолчанию 1).
func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			sapi.WriteError(w, serr.ErrInvalidInput)
			return
		}
		page = n
	}

	result, err := h.Svc.ListPage(r.Context(), page)
	if err != nil {
		sapi.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CreateQuote создаёт цитату: POST /quotes.
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		sapi.WriteError(w, err)
		return
	}

	quote, err := h.Svc.CreateQuote(r.Context(), req.Text, req.Author, req.Tags)
	if err != nil {
		sapi.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, quote)
}

// CreateTag создаёт тег: POST /tags.
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req createTagRequest
	if err := decodeJSON(r, &req); err != nil {
		sapi.WriteError(w, err)
		return
	}

	tag, err := h.Svc.CreateTag(r.Context(), req.Name)
	if err != nil {
		sapi.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tag)
}

// CreateAuthor создаёт автора: POST /authors.
func (h *Handler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req createAuthorRequest
	if err := decodeJSON(r, &req); err != nil {
		sapi.WriteError(w, err)
		return
	}

	author, err := h.Svc.CreateAuthor(r.Context(), req.Fullname, req.Born, req.Bio)
	if err != nil {
		sapi.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, author)
}

// GetAuthor отдаёт автора по id: GET /authors/{id}.
func (h *Handler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	author, err := h.Svc.GetAuthor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		sapi.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, author)
}
