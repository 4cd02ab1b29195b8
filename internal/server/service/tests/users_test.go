package tests

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

func newUsersService(t *testing.T) (*service.UsersService, *mocks.MockUsersRepo, *mocks.MockAvatarStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUsersRepo(ctrl)
	avatars := mocks.NewMockAvatarStore(ctrl)

	return service.NewUsersService(users, avatars), users, avatars
}

func TestUsersService_Me_OK(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUsersService(t)

	id := uuid.New()

	users.EXPECT().
		GetByID(ctx, id).
		Return(models.User{ID: id, Username: "ivan123"}, nil)

	got, err := svc.Me(ctx, id)

	require.NoError(t, err)
	require.Equal(t, "ivan123", got.Username)
}

// Ключ объекта строится от username, URL сохраняется в профиле
func TestUsersService_UpdateAvatar_OK(t *testing.T) {
	ctx := context.Background()
	svc, users, avatars := newUsersService(t)

	id := uuid.New()
	body := strings.NewReader("png-bytes")
	url := "http://127.0.0.1:9000/avatars/avatars/ivan123"

	users.EXPECT().
		GetByID(ctx, id).
		Return(models.User{ID: id, Username: "ivan123", Email: "test@mail.com"}, nil)

	avatars.EXPECT().
		Upload(ctx, "avatars/ivan123", body, int64(9), "image/png").
		Return(url, nil)

	users.EXPECT().
		UpdateAvatar(ctx, "test@mail.com", url).
		Return(models.User{ID: id, Avatar: &url}, nil)

	got, err := svc.UpdateAvatar(ctx, id, body, 9, "image/png")

	require.NoError(t, err)
	require.NotNil(t, got.Avatar)
	require.Equal(t, url, *got.Avatar)
}

// Неподдерживаемый тип файла
func TestUsersService_UpdateAvatar_BadContentType(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUsersService(t)

	_, err := svc.UpdateAvatar(ctx, uuid.New(), strings.NewReader("gif"), 3, "image/gif")

	require.ErrorIs(t, err, serr.ErrInvalidInput)
}
