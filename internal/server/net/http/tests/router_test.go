package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/models"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/service/mocks"
	router "github.com/IvanChernomyrdin/go-contacts-api/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

const signingKey = "test-signing-key-that-is-long-enough"

type routerEnv struct {
	router   http.Handler
	contacts *mocks.MockContactsRepo
}

// простой in-memory счётчик для лимитера
type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func (c *memCounter) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *memCounter) Expire(context.Context, string, time.Duration) error { return nil }

func newRouterEnv(t *testing.T, limiter *middleware.RateLimiter) routerEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	contacts := mocks.NewMockContactsRepo(ctrl)

	svc := &service.Services{Contacts: service.NewContactsService(contacts)}

	log := logger.NewHTTPLogger()
	t.Cleanup(func() { log.Sync() })

	r := router.NewRouter(router.RouterDeps{
		Handler: api.NewHandler(svc),
		Verifier: &middleware.JWTVerifier{
			Issuer:     "contacts-api",
			Audience:   "contacts-api",
			SigningKey: signingKey,
		},
		Log:     log,
		Limiter: limiter,
	})

	return routerEnv{router: r, contacts: contacts}
}

func accessToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token, err := crypto.NewAccessToken(userID.String(), crypto.JWTConfig{
		Issuer:     "contacts-api",
		Audience:   "contacts-api",
		SigningKey: signingKey,
		AccessTTL:  time.Minute,
	})
	require.NoError(t, err)
	return token
}

// Защищённые маршруты без токена отдают 401
func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	env := newRouterEnv(t, nil)

	for _, target := range []string{
		"/api/contacts/",
		"/api/contacts/7",
		"/api/contacts/upcoming-birthdays",
		"/api/users/me/",
	} {
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusUnauthorized, w.Code, target)
	}
}

// Публичные auth-маршруты доступны без токена
func TestRouter_AuthRoutesArePublic(t *testing.T) {
	env := newRouterEnv(t, nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))

	// нет auth-сервиса в этой сборке, но до 401 от middleware дело не доходит
	require.NotEqual(t, http.StatusUnauthorized, w.Code)
	require.NotEqual(t, http.StatusNotFound, w.Code)
}

// С валидным токеном запрос доходит до репозитория
func TestRouter_ListContactsWithToken(t *testing.T) {
	env := newRouterEnv(t, nil)
	owner := uuid.New()

	env.contacts.EXPECT().
		List(gomock.Any(), owner, 0, 100).
		Return([]models.Contact{}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken(t, owner))

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
}

// GET-эндпоинты контактов проходят через read-лимитер
func TestRouter_ReadLimitApplied(t *testing.T) {
	counter := &memCounter{counts: map[string]int64{}}
	limiter := middleware.NewRateLimiter(counter, 1, 1, time.Minute)

	env := newRouterEnv(t, limiter)
	owner := uuid.New()

	env.contacts.EXPECT().
		List(gomock.Any(), owner, 0, 100).
		Return([]models.Contact{}, nil)

	token := accessToken(t, owner)

	r := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	// второй запрос в окне — сверх лимита
	r = httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, r)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

// Swagger отдаётся без токена
func TestRouter_SwaggerIsPublic(t *testing.T) {
	env := newRouterEnv(t, nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

	require.NotEqual(t, http.StatusUnauthorized, w.Code)
}
