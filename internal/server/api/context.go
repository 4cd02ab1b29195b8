package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey string

// userIDKey — ключ контекста, под которым auth-middleware кладёт id пользователя.
const userIDKey ctxKey = "user_id"

// WithUserID кладёт id пользователя в контекст. Используется auth-middleware
// и тестами обработчиков.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext возвращает id пользователя из контекста.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

func userIDFrom(r *http.Request) (uuid.UUID, bool) {
	return UserIDFromContext(r.Context())
}
