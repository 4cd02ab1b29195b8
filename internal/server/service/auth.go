package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/utils"
)

// Ограничения на поля регистрации.
const (
	usernameMinLen = 5
	usernameMaxLen = 16
	passwordMinLen = 8
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// TokenPair — пара access + refresh, выдаётся при логине и обновлении.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService отвечает за регистрацию, вход, обновление токенов
// и подтверждение email.
type AuthService struct {
	users      UsersRepo
	gravatar   AvatarLookup
	jwt        crypto.JWTConfig
	refreshTTL time.Duration
	argon2     crypto.Argon2Params

	// now подменяется в тестах.
	now func() time.Time
}

func NewAuthService(users UsersRepo, gravatar AvatarLookup, jwt crypto.JWTConfig, refreshTTL time.Duration, argon2 crypto.Argon2Params) *AuthService {
	return &AuthService{
		users:      users,
		gravatar:   gravatar,
		jwt:        jwt,
		refreshTTL: refreshTTL,
		argon2:     argon2,
		now:        time.Now,
	}
}

// RegisterResult — результат регистрации: созданный пользователь
// плюс токен подтверждения email, который уходит в письмо.
type RegisterResult struct {
	User       models.User
	EmailToken string
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - username: 5–16 символов
//   - email: непустой, похож на email
//   - password: >= 8 символов
//
// Аватар подтягивается из Gravatar best-effort: любая ошибка поиска
// молча проглатывается, пользователь создаётся без аватара.
//
// Ошибки:
//   - ErrInvalidInput при невалидных полях
//   - ErrAlreadyExists если email занят
func (s *AuthService) Register(ctx context.Context, username, email, password string) (RegisterResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		return RegisterResult{}, fmt.Errorf("%w: username должен быть от %d до %d символов",
			serr.ErrInvalidInput, usernameMinLen, usernameMaxLen)
	}
	if !emailRe.MatchString(email) {
		return RegisterResult{}, fmt.Errorf("%w: некорректный email", serr.ErrInvalidInput)
	}
	if utf8.RuneCountInString(password) < passwordMinLen {
		return RegisterResult{}, fmt.Errorf("%w: пароль короче %d символов",
			serr.ErrInvalidInput, passwordMinLen)
	}

	hash, err := crypto.HashPassword(password, s.argon2)
	if err != nil {
		return RegisterResult{}, serr.ErrInternal
	}

	var avatar *string
	if s.gravatar != nil {
		if url, err := s.gravatar.URL(ctx, email); err == nil {
			avatar = utils.Ptr(url)
		}
	}

	user, err := s.users.Create(ctx, username, email, hash, avatar)
	if err != nil {
		return RegisterResult{}, err
	}

	emailToken, err := crypto.NewEmailToken(email, s.jwt)
	if err != nil {
		return RegisterResult{}, serr.ErrInternal
	}

	return RegisterResult{User: user, EmailToken: emailToken}, nil
}

// Login проверяет учётные данные и выдаёт пару токенов.
//
// Refresh-токен сохраняется в БД в виде sha256-хэша; прежний токен
// при этом перестаёт действовать.
//
// Ошибки:
//   - ErrInvalidCredentials при неверном email или пароле
//   - ErrEmailNotConfirmed если email ещё не подтверждён
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if err == serr.ErrNotFound {
			return TokenPair{}, serr.ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	ok, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return TokenPair{}, serr.ErrInvalidCredentials
	}

	if !user.Confirmed {
		return TokenPair{}, serr.ErrEmailNotConfirmed
	}

	return s.issueTokens(ctx, user)
}

// Refresh меняет refresh-токен на новую пару токенов (ротация):
// предъявленный токен инвалидируется, выдаётся новый.
//
// Ошибки:
//   - ErrUnauthorized если токен неизвестен или просрочен
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	user, err := s.users.GetByRefreshHash(ctx, crypto.HashRefreshToken(refreshToken))
	if err != nil {
		return TokenPair{}, err
	}

	if user.RefreshExpiresAt == nil || s.now().After(*user.RefreshExpiresAt) {
		return TokenPair{}, serr.ErrUnauthorized
	}

	return s.issueTokens(ctx, user)
}

// ConfirmEmail разбирает токен подтверждения и помечает email подтверждённым.
//
// Ошибки:
//   - ErrUnauthorized при невалидном или просроченном токене
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) error {
	email, err := crypto.ParseEmailToken(token, s.jwt)
	if err != nil {
		return serr.ErrUnauthorized
	}
	return s.users.ConfirmEmail(ctx, email)
}

func (s *AuthService) issueTokens(ctx context.Context, user models.User) (TokenPair, error) {
	access, err := crypto.NewAccessToken(user.ID.String(), s.jwt)
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}

	refresh, err := crypto.NewRefreshToken()
	if err != nil {
		return TokenPair{}, serr.ErrInternal
	}

	expiresAt := s.now().Add(s.refreshTTL)
	if err := s.users.UpdateRefreshToken(ctx, user.ID, crypto.HashRefreshToken(refresh), &expiresAt); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
