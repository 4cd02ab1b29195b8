// Package crypto содержит криптографические примитивы сервера контактов:
//   - генерация и подпись JWT access-токенов;
//   - токены подтверждения email;
//   - refresh-токены и их хэширование;
//   - хэширование паролей (argon2id).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig описывает параметры генерации JWT-токенов.
type JWTConfig struct {
	// Issuer — значение поля iss (кто выдал токен).
	Issuer string
	// Audience — значение поля aud (для кого предназначен токен).
	Audience string
	// SigningKey — секретный ключ для подписи токена (HS256).
	// Должен быть достаточно длинным и случайным.
	SigningKey string
	// AccessTTL — срок жизни access-токена.
	AccessTTL time.Duration
	// EmailTokenTTL — срок жизни токена подтверждения email.
	EmailTokenTTL time.Duration
}

// emailScope — значение aud для токенов подтверждения email.
// Отдельная audience не даёт использовать email-токен как access-токен.
const emailScope = "email_confirmation"

// NewAccessToken создаёт и подписывает JWT access-токен для пользователя.
//
// Токен содержит стандартные RegisteredClaims:
//   - iss (Issuer)
//   - aud (Audience)
//   - sub (userID)
//   - iat (IssuedAt)
//   - exp (ExpiresAt)
//
// Используется алгоритм подписи HS256.
func NewAccessToken(userID string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  []string{cfg.Audience},
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// NewEmailToken создаёт токен подтверждения email.
//
// В sub кладётся сам email, aud — отдельный scope "email_confirmation",
// чтобы токен нельзя было предъявить как access.
func NewEmailToken(email string, cfg JWTConfig) (string, error) {
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  []string{emailScope},
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.EmailTokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(cfg.SigningKey))
}

// ParseEmailToken проверяет токен подтверждения и возвращает email из sub.
func ParseEmailToken(tokenStr string, cfg JWTConfig) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.SigningKey), nil
	})
	if err != nil {
		return "", err
	}

	scopeOK := false
	for _, aud := range claims.Audience {
		if aud == emailScope {
			scopeOK = true
			break
		}
	}
	if !scopeOK {
		return "", errors.New("invalid token scope")
	}

	email := strings.TrimSpace(claims.Subject)
	if email == "" {
		return "", errors.New("empty token subject")
	}
	return email, nil
}
