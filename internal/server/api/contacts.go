package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/utils"
)

// Дефолты пагинации списка контактов.
const (
	defaultSkip  = 0
	defaultLimit = 100
)

// dateLayout — формат даты рождения в JSON (YYYY-MM-DD).
const dateLayout = "2006-01-02"

type contactRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"` // YYYY-MM-DD
}

type contactResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Birthday  string `json:"birthday"`
	CreatedAt string `json:"created_at"`
}

func toContactResponse(c models.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday.Format(dateLayout),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func toContactResponses(cs []models.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toContactResponse(c))
	}
	return out
}

func (req contactRequest) toData() (models.ContactData, error) {
	var birthday time.Time
	if req.Birthday != "" {
		var err error
		birthday, err = time.Parse(dateLayout, req.Birthday)
		if err != nil {
			return models.ContactData{}, serr.ErrInvalidInput
		}
	}
	return models.ContactData{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Birthday:  birthday,
	}, nil
}

// ownerID достаёт id владельца из контекста запроса.
func ownerID(r *http.Request) (uuid.UUID, error) {
	id, ok := userIDFrom(r)
	if !ok {
		return uuid.Nil, serr.ErrUnauthorized
	}
	return id, nil
}

func queryStrPtr(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return utils.Ptr(v)
	}
	return nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, serr.ErrInvalidInput
	}
	return n, nil
}

// ListContacts godoc
//
//	@Summary	Список контактов пользователя
//	@Tags		contacts
//	@Produce	json
//	@Param		skip	query		int	false	"Смещение (по умолчанию 0)"
//	@Param		limit	query		int	false	"Лимит (по умолчанию 100)"
//	@Success	200		{array}		contactResponse
//	@Failure	401		{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/api/contacts [get]
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	skip, err := queryInt(r, "skip", defaultSkip)
	if err != nil {
		WriteError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	contacts, err := h.Svc.Contacts.List(r.Context(), owner, skip, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponses(contacts))
}

// FindContact godoc
//
//	@Summary	Поиск первого контакта по фильтрам
//	@Tags		contacts
//	@Produce	json
//	@Param		id			path		int		true	"Не используется фильтрами (оставлен для совместимости)"
//	@Param		first_name	query		string	false	"Подстрока имени"
//	@Param		last_name	query		string	false	"Подстрока фамилии"
//	@Param		email		query		string	false	"Подстрока email"
//	@Success	200			{object}	contactResponse
//	@Failure	404			{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/api/contacts/{id} [get]
func (h *Handler) FindContact(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	contact, err := h.Svc.Contacts.Find(r.Context(), owner,
		queryStrPtr(r, "first_name"),
		queryStrPtr(r, "last_name"),
		queryStrPtr(r, "email"),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponse(contact))
}

// CreateContact godoc
//
//	@Summary	Создание контакта
//	@Tags		contacts
//	@Accept		json
//	@Produce	json
//	@Param		input	body		contactRequest	true	"Поля контакта"
//	@Success	201		{object}	contactResponse
//	@Failure	400		{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/api/contacts [post]
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	data, err := req.toData()
	if err != nil {
		WriteError(w, err)
		return
	}

	contact, err := h.Svc.Contacts.Create(r.Context(), owner, data)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toContactResponse(contact))
}

// UpdateContact godoc
//
//	@Summary	Полное обновление контакта
//	@Tags		contacts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"ID контакта"
//	@Param		input	body		contactRequest	true	"Новые поля контакта"
//	@Success	200		{object}	contactResponse
//	@Failure	404		{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/api/contacts/{id} [put]
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, serr.ErrInvalidInput)
		return
	}

	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}

	data, err := req.toData()
	if err != nil {
		WriteError(w, err)
		return
	}

	contact, err := h.Svc.Contacts.Update(r.Context(), owner, id, data)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponse(contact))
}

// DeleteContact godoc
//
//	@Summary	Удаление контакта
//	@Tags		contacts
//	@Produce	json
//	@Param		id	path		int	true	"ID контакта"
//	@Success	200	{object}	contactResponse
//	@Failure	404	{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/api/contacts/{id} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, serr.ErrInvalidInput)
		return
	}

	contact, err := h.Svc.Contacts.Remove(r.Context(), owner, id)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponse(contact))
}

// UpcomingBirthdays godoc
//
//	@Summary	Контакты с днём рождения в ближайшие 7 дней
//	@Tags		contacts
//	@Produce	json
//	@Success	200	{array}		contactResponse
//	@Failure	401	{object}	errorResponse
//	@Security	BearerAuth
//	@Router		/api/contacts/upcoming-birthdays [get]
func (h *Handler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	contacts, err := h.Svc.Contacts.UpcomingBirthdays(r.Context(), owner)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactResponses(contacts))
}
