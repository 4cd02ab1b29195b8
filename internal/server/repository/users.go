// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// userColumns — полный набор колонок пользователя в порядке scanUser.
const userColumns = `id, username, email, password_hash, created_at, avatar, refresh_hash, refresh_expires_at, confirmed`

// UsersRepository отвечает за хранение пользователей и учёт их refresh-токенов.
type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// scanUser читает строку пользователя из row в модель.
func scanUser(row *sql.Row) (models.User, error) {
	var (
		u         models.User
		avatar    sql.NullString
		refresh   []byte
		expiresAt sql.NullTime
	)

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt,
		&avatar, &refresh, &expiresAt, &u.Confirmed)
	if err != nil {
		return models.User{}, err
	}

	if avatar.Valid {
		a := avatar.String
		u.Avatar = &a
	}
	u.RefreshHash = refresh
	if expiresAt.Valid {
		t := expiresAt.Time
		u.RefreshExpiresAt = &t
	}
	return u, nil
}

// Create создаёт нового пользователя.
//
// avatar может быть nil — например если Gravatar при регистрации был недоступен.
//
// Ошибки:
//   - ErrAlreadyExists при занятом email
//   - ErrInternal при прочих ошибках БД
func (r *UsersRepository) Create(ctx context.Context, username, email, passwordHash string, avatar *string) (models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, avatar)
		 VALUES ($1,$2,$3,$4)
		 RETURNING `+userColumns,
		username, email, passwordHash, avatar,
	)

	u, err := scanUser(row)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" { // unique_violation
				return models.User{}, serr.ErrAlreadyExists
			}
		}
		return models.User{}, serr.ErrInternal
	}

	return u, nil
}

// GetByEmail возвращает пользователя по точному совпадению email.
//
// Ошибки:
//   - ErrNotFound если пользователя нет
//   - ErrInternal при ошибке БД
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email=$1`,
		email,
	)

	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}
	return u, nil
}

// GetByID возвращает пользователя по id (нужен /users/me).
func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`,
		id,
	)

	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}
	return u, nil
}

// GetByRefreshHash возвращает пользователя по хэшу refresh-токена.
//
// Используется при обновлении access-токена.
//
// Ошибки:
//   - ErrUnauthorized если токен никому не принадлежит
//   - ErrInternal при ошибке БД
func (r *UsersRepository) GetByRefreshHash(ctx context.Context, refreshHash []byte) (models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_hash=$1`,
		refreshHash,
	)

	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, serr.ErrUnauthorized
		}
		return models.User{}, serr.ErrInternal
	}
	return u, nil
}

// UpdateRefreshToken сохраняет новый хэш refresh-токена пользователя
// или сбрасывает его (refreshHash == nil).
func (r *UsersRepository) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, refreshHash []byte, expiresAt *time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users
		    SET refresh_hash = $2,
		        refresh_expires_at = $3
		  WHERE id = $1`,
		userID, refreshHash, expiresAt,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// ConfirmEmail помечает email пользователя подтверждённым.
//
// Если пользователя с таким email нет — тихий no-op: существование
// проверяется выше по стеку при разборе токена подтверждения.
func (r *UsersRepository) ConfirmEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET confirmed = TRUE WHERE email = $1`,
		email,
	)
	if err != nil {
		return serr.ErrInternal
	}
	return nil
}

// UpdateAvatar сохраняет новый URL аватара и возвращает обновлённого пользователя.
//
// Ошибки:
//   - ErrNotFound если пользователя с таким email нет
//   - ErrInternal при ошибке БД
func (r *UsersRepository) UpdateAvatar(ctx context.Context, email, url string) (models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE users SET avatar = $2 WHERE email = $1
		 RETURNING `+userColumns,
		email, url,
	)

	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}
	return u, nil
}
