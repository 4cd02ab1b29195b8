package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar,omitempty"`
	Confirmed bool    `json:"confirmed"`
	// ConfirmToken в проде уходит письмом; в dev-окружении отдаём в ответе,
	// чтобы регистрацию можно было пройти без SMTP.
	ConfirmToken string `json:"confirm_token,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register godoc
//
//	@Summary	Регистрация нового пользователя
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		registerRequest	true	"Данные регистрации"
//	@Success	201		{object}	registerResponse
//	@Failure	400		{object}	errorResponse
//	@Failure	409		{object}	errorResponse
//	@Router		/api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.Svc.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:           res.User.ID.String(),
		Username:     res.User.Username,
		Email:        res.User.Email,
		Avatar:       res.User.Avatar,
		Confirmed:    res.User.Confirmed,
		ConfirmToken: res.EmailToken,
	})
}

// Login godoc
//
//	@Summary	Вход по email и паролю
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		loginRequest	true	"Учётные данные"
//	@Success	200		{object}	service.TokenPair
//	@Failure	401		{object}	errorResponse
//	@Failure	403		{object}	errorResponse
//	@Router		/api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	pair, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// Refresh godoc
//
//	@Summary	Обновление пары токенов по refresh-токену
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		input	body		refreshRequest	true	"Refresh-токен"
//	@Success	200		{object}	service.TokenPair
//	@Failure	401		{object}	errorResponse
//	@Router		/api/auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	pair, err := h.Svc.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// ConfirmEmail godoc
//
//	@Summary	Подтверждение email по токену из письма
//	@Tags		auth
//	@Produce	json
//	@Param		token	path		string	true	"Токен подтверждения"
//	@Success	200		{object}	map[string]string
//	@Failure	401		{object}	errorResponse
//	@Router		/api/auth/confirm/{token} [get]
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.Svc.Auth.ConfirmEmail(r.Context(), token); err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}
