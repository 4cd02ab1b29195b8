package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service/mocks"
)

func newUsersHandler(t *testing.T) (*api.Handler, *mocks.MockUsersRepo, *mocks.MockAvatarStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	avatars := mocks.NewMockAvatarStore(ctrl)

	svc := &service.Services{Users: service.NewUsersService(users, avatars)}
	return api.NewHandler(svc), users, avatars
}

func TestMe_OK(t *testing.T) {
	h, users, _ := newUsersHandler(t)

	id := uuid.New()

	users.EXPECT().
		GetByID(gomock.Any(), id).
		Return(models.User{ID: id, Username: "ivan123", Email: "test@mail.com", Confirmed: true}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/users/me/", nil)
	r = r.WithContext(api.WithUserID(r.Context(), id))

	w := httptest.NewRecorder()
	h.Me(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "ivan123", got["username"])
	require.Equal(t, true, got["confirmed"])
}

func TestMe_NoAuth(t *testing.T) {
	h, _, _ := newUsersHandler(t)

	w := httptest.NewRecorder()
	h.Me(w, httptest.NewRequest(http.MethodGet, "/api/users/me/", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// multipart-запрос с файлом аватара в поле file
func avatarRequest(t *testing.T, owner uuid.UUID, contentType string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="avatar.png"`)
	hdr.Set("Content-Type", contentType)

	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPatch, "/api/users/avatar", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r.WithContext(api.WithUserID(r.Context(), owner))
}

func TestUpdateAvatar_OK(t *testing.T) {
	h, users, avatars := newUsersHandler(t)

	id := uuid.New()
	url := "http://127.0.0.1:9000/avatars/avatars/ivan123"

	users.EXPECT().
		GetByID(gomock.Any(), id).
		Return(models.User{ID: id, Username: "ivan123", Email: "test@mail.com"}, nil)
	avatars.EXPECT().
		Upload(gomock.Any(), "avatars/ivan123", gomock.Any(), gomock.Any(), "image/png").
		Return(url, nil)
	users.EXPECT().
		UpdateAvatar(gomock.Any(), "test@mail.com", url).
		Return(models.User{ID: id, Avatar: &url}, nil)

	w := httptest.NewRecorder()
	h.UpdateAvatar(w, avatarRequest(t, id, "image/png"))

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, url, got["avatar"])
}

func TestUpdateAvatar_BadContentType(t *testing.T) {
	h, _, _ := newUsersHandler(t)

	w := httptest.NewRecorder()
	h.UpdateAvatar(w, avatarRequest(t, uuid.New(), "image/gif"))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAvatar_NoFile(t *testing.T) {
	h, _, _ := newUsersHandler(t)

	r := httptest.NewRequest(http.MethodPatch, "/api/users/avatar", nil)
	r = r.WithContext(api.WithUserID(r.Context(), uuid.New()))

	w := httptest.NewRecorder()
	h.UpdateAvatar(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
