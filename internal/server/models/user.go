// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись владельца контактов.
//
// Avatar может быть nil, если Gravatar при регистрации был недоступен
// и пользователь ещё не загружал свой аватар.
// RefreshHash хранит sha256-хэш текущего refresh-токена (nil — токен сброшен).
type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	PasswordHash     string
	CreatedAt        time.Time
	Avatar           *string
	RefreshHash      []byte
	RefreshExpiresAt *time.Time
	Confirmed        bool
}
