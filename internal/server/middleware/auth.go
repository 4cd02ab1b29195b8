// Package middleware содержит HTTP-middleware сервера:
// проверку JWT, логирование запросов и rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// JWTVerifier проверяет access-токены входящих запросов.
type JWTVerifier struct {
	Issuer     string
	Audience   string
	SigningKey string
}

// ExtractBearer достаёт токен из заголовка Authorization: Bearer <token>.
func ExtractBearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Verify разбирает и валидирует access-токен, возвращает id пользователя из sub.
func (v *JWTVerifier) Verify(tokenStr string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(v.Issuer),
		jwt.WithAudience(v.Audience),
	)
	_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(v.SigningKey), nil
	})
	if err != nil {
		return uuid.Nil, serr.ErrUnauthorized
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, serr.ErrUnauthorized
	}
	return id, nil
}

// Middleware — chi-middleware: отклоняет запросы без валидного access-токена
// и кладёт id пользователя в контекст запроса.
func (v *JWTVerifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := ExtractBearer(r)
		if !ok {
			api.WriteError(w, serr.ErrUnauthorized)
			return
		}

		userID, err := v.Verify(token)
		if err != nil {
			api.WriteError(w, serr.ErrUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(api.WithUserID(r.Context(), userID)))
	})
}
