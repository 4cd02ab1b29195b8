package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

func newContactsHandler(t *testing.T) (*api.Handler, *mocks.MockContactsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockContactsRepo(ctrl)

	svc := &service.Services{Contacts: service.NewContactsService(repo)}
	return api.NewHandler(svc), repo
}

// запрос с user id в контексте, как после auth-middleware
func authedRequest(method, target string, body string, owner uuid.UUID) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	return r.WithContext(api.WithUserID(r.Context(), owner))
}

func TestListContacts_OK(t *testing.T) {
	h, repo := newContactsHandler(t)
	owner := uuid.New()

	repo.EXPECT().
		List(gomock.Any(), owner, 0, 100).
		Return([]models.Contact{
			{ID: 1, FirstName: "Иван", Email: "ivan@mail.com", Birthday: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)},
		}, nil)

	w := httptest.NewRecorder()
	h.ListContacts(w, authedRequest(http.MethodGet, "/api/contacts/", "", owner))

	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "1990-04-12", got[0]["birthday"])
}

func TestListContacts_CustomPagination(t *testing.T) {
	h, repo := newContactsHandler(t)
	owner := uuid.New()

	repo.EXPECT().
		List(gomock.Any(), owner, 20, 10).
		Return([]models.Contact{}, nil)

	w := httptest.NewRecorder()
	h.ListContacts(w, authedRequest(http.MethodGet, "/api/contacts/?skip=20&limit=10", "", owner))

	require.Equal(t, http.StatusOK, w.Code)
}

func TestListContacts_NoAuth(t *testing.T) {
	h, _ := newContactsHandler(t)

	w := httptest.NewRecorder()
	h.ListContacts(w, httptest.NewRequest(http.MethodGet, "/api/contacts/", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateContact_Created(t *testing.T) {
	h, repo := newContactsHandler(t)
	owner := uuid.New()

	repo.EXPECT().
		Create(gomock.Any(), owner, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, data models.ContactData) (models.Contact, error) {
			require.Equal(t, "Иван", data.FirstName)
			require.Equal(t, time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC), data.Birthday)
			return models.Contact{ID: 1, FirstName: data.FirstName, Email: data.Email, Birthday: data.Birthday, UserID: owner}, nil
		})

	body := `{"first_name":"Иван","email":"ivan@mail.com","birthday":"1990-04-12"}`

	w := httptest.NewRecorder()
	h.CreateContact(w, authedRequest(http.MethodPost, "/api/contacts/", body, owner))

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateContact_BadBirthday(t *testing.T) {
	h, _ := newContactsHandler(t)

	body := `{"first_name":"Иван","email":"ivan@mail.com","birthday":"12.04.1990"}`

	w := httptest.NewRecorder()
	h.CreateContact(w, authedRequest(http.MethodPost, "/api/contacts/", body, uuid.New()))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateContact_BadJSON(t *testing.T) {
	h, _ := newContactsHandler(t)

	w := httptest.NewRecorder()
	h.CreateContact(w, authedRequest(http.MethodPost, "/api/contacts/", "{", uuid.New()))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

// id в URL через chi route context
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateContact_NotFound(t *testing.T) {
	h, repo := newContactsHandler(t)
	owner := uuid.New()

	repo.EXPECT().
		Update(gomock.Any(), owner, int64(42), gomock.Any()).
		Return(models.Contact{}, serr.ErrNotFound)

	body := `{"first_name":"Иван","email":"ivan@mail.com","birthday":"1990-04-12"}`
	r := withURLParam(authedRequest(http.MethodPut, "/api/contacts/42", body, owner), "id", "42")

	w := httptest.NewRecorder()
	h.UpdateContact(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteContact_OK(t *testing.T) {
	h, repo := newContactsHandler(t)
	owner := uuid.New()

	repo.EXPECT().
		Remove(gomock.Any(), owner, int64(3)).
		Return(models.Contact{ID: 3, FirstName: "Иван", Email: "ivan@mail.com"}, nil)

	r := withURLParam(authedRequest(http.MethodDelete, "/api/contacts/3", "", owner), "id", "3")

	w := httptest.NewRecorder()
	h.DeleteContact(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.EqualValues(t, 3, got["id"])
}

func TestDeleteContact_BadID(t *testing.T) {
	h, _ := newContactsHandler(t)

	r := withURLParam(authedRequest(http.MethodDelete, "/api/contacts/abc", "", uuid.New()), "id", "abc")

	w := httptest.NewRecorder()
	h.DeleteContact(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFindContact_NotFound(t *testing.T) {
	h, repo := newContactsHandler(t)
	owner := uuid.New()
	name := "Никто"

	repo.EXPECT().
		Find(gomock.Any(), owner, &name, nil, nil).
		Return(models.Contact{}, serr.ErrNotFound)

	w := httptest.NewRecorder()
	h.FindContact(w, authedRequest(http.MethodGet, "/api/contacts/0?first_name="+name, "", owner))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpcomingBirthdays_OK(t *testing.T) {
	h, repo := newContactsHandler(t)
	owner := uuid.New()

	repo.EXPECT().
		UpcomingBirthdays(gomock.Any(), owner, gomock.Any()).
		Return([]models.Contact{{ID: 1}, {ID: 2}}, nil)

	w := httptest.NewRecorder()
	h.UpcomingBirthdays(w, authedRequest(http.MethodGet, "/api/contacts/upcoming-birthdays", "", owner))

	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
}
