package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// Допустимые content-type загружаемых аватаров.
var allowedAvatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// UsersService — операции над профилем пользователя.
type UsersService struct {
	users   UsersRepo
	avatars AvatarStore
}

func NewUsersService(users UsersRepo, avatars AvatarStore) *UsersService {
	return &UsersService{users: users, avatars: avatars}
}

// Me возвращает профиль текущего пользователя.
func (s *UsersService) Me(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateAvatar загружает файл аватара в объектное хранилище под ключом
// avatars/<username> (повторная загрузка перезаписывает прежний файл)
// и сохраняет публичный URL в профиле.
//
// Ошибки:
//   - ErrInvalidInput при неподдерживаемом типе файла
//   - ErrInternal если хранилище недоступно
func (s *UsersService) UpdateAvatar(ctx context.Context, userID uuid.UUID, file io.Reader, size int64, contentType string) (models.User, error) {
	if s.avatars == nil {
		return models.User{}, serr.ErrInternal
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !allowedAvatarTypes[ct] {
		return models.User{}, fmt.Errorf("%w: неподдерживаемый тип файла %q", serr.ErrInvalidInput, contentType)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	key := "avatars/" + user.Username
	url, err := s.avatars.Upload(ctx, key, file, size, ct)
	if err != nil {
		return models.User{}, serr.ErrInternal
	}

	return s.users.UpdateAvatar(ctx, user.Email, url)
}
