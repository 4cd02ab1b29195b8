package api

import (
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// maxAvatarBytes — потолок размера загружаемого аватара (5 MiB).
const maxAvatarBytes = 5 << 20

type userResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar,omitempty"`
	Confirmed bool    `json:"confirmed"`
	CreatedAt string  `json:"created_at"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Confirmed: u.Confirmed,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// Me godoc
//
//	@Summary	Профиль текущего пользователя
//	@Tags		users
//	@Produce	json
//	@Success	200	{object}	userResponse
//	@Failure	401	{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/api/users/me/ [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.Svc.Users.Me(r.Context(), owner)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateAvatar godoc
//
//	@Summary	Загрузка аватара (multipart, поле file)
//	@Tags		users
//	@Accept		mpfd
//	@Produce	json
//	@Param		file	formData	file	true	"Файл аватара (png/jpeg/webp)"
//	@Success	200		{object}	userResponse
//	@Failure	400		{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/api/users/avatar [patch]
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, serr.ErrInvalidInput)
		return
	}
	defer file.Close()

	contentType := header.Header.Get(ContentType)

	user, err := h.Svc.Users.UpdateAvatar(r.Context(), owner, file, header.Size, contentType)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
