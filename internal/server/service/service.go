// Package service содержит бизнес-логику сервера контактов (Service layer).
//
// Сервисы работают поверх интерфейсов репозиториев и внешних адаптеров,
// что позволяет подменять их моками в тестах.
package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// UsersRepo — хранилище пользователей.
type UsersRepo interface {
	Create(ctx context.Context, username, email, passwordHash string, avatar *string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByRefreshHash(ctx context.Context, refreshHash []byte) (models.User, error)
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, refreshHash []byte, expiresAt *time.Time) error
	ConfirmEmail(ctx context.Context, email string) error
	UpdateAvatar(ctx context.Context, email, url string) (models.User, error)
}

// ContactsRepo — хранилище контактов. Все операции выполняются
// от имени владельца ownerID.
type ContactsRepo interface {
	List(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]models.Contact, error)
	Find(ctx context.Context, ownerID uuid.UUID, firstName, lastName, email *string) (models.Contact, error)
	Create(ctx context.Context, ownerID uuid.UUID, data models.ContactData) (models.Contact, error)
	Update(ctx context.Context, ownerID uuid.UUID, id int64, data models.ContactData) (models.Contact, error)
	Remove(ctx context.Context, ownerID uuid.UUID, id int64) (models.Contact, error)
	UpcomingBirthdays(ctx context.Context, ownerID uuid.UUID, today time.Time) ([]models.Contact, error)
}

// AvatarStore — объектное хранилище загруженных аватаров (MinIO).
type AvatarStore interface {
	// Upload сохраняет объект и возвращает публичный URL.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// AvatarLookup — best-effort поиск аватара по email (Gravatar).
type AvatarLookup interface {
	// URL возвращает ссылку на аватар или ошибку, если аватара нет
	// либо сервис недоступен. Ошибка НЕ должна прерывать регистрацию.
	URL(ctx context.Context, email string) (string, error)
}

// Repositories собирает все репозитории, нужные сервисам.
type Repositories struct {
	Users    UsersRepo
	Contacts ContactsRepo
}

// Services собирает все сервисы приложения.
type Services struct {
	Auth     *AuthService
	Users    *UsersService
	Contacts *ContactsService
}

// Deps — внешние зависимости сервисов.
type Deps struct {
	Repos    Repositories
	Avatars  AvatarStore
	Gravatar AvatarLookup

	JWT        crypto.JWTConfig
	RefreshTTL time.Duration
	Argon2     crypto.Argon2Params
}

// NewServices собирает сервисный слой.
func NewServices(d Deps) *Services {
	return &Services{
		Auth: NewAuthService(d.Repos.Users, d.Gravatar, d.JWT, d.RefreshTTL, d.Argon2),
		Users: NewUsersService(d.Repos.Users, d.Avatars),
		Contacts: NewContactsService(d.Repos.Contacts),
	}
}
