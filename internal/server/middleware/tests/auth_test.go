package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
)

const signingKey = "test-signing-key-that-is-long-enough"

func newVerifier() *middleware.JWTVerifier {
	return &middleware.JWTVerifier{
		Issuer:     "contacts-api",
		Audience:   "contacts-api",
		SigningKey: signingKey,
	}
}

func accessToken(t *testing.T, userID string) string {
	t.Helper()

	token, err := crypto.NewAccessToken(userID, crypto.JWTConfig{
		Issuer:     "contacts-api",
		Audience:   "contacts-api",
		SigningKey: signingKey,
		AccessTTL:  time.Minute,
	})
	require.NoError(t, err)
	return token
}

func TestExtractBearer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := middleware.ExtractBearer(r)
	require.False(t, ok)

	r.Header.Set("Authorization", "Basic abc")
	_, ok = middleware.ExtractBearer(r)
	require.False(t, ok)

	r.Header.Set("Authorization", "Bearer tok123")
	token, ok := middleware.ExtractBearer(r)
	require.True(t, ok)
	require.Equal(t, "tok123", token)

	// регистр схемы не важен
	r.Header.Set("Authorization", "bearer tok123")
	_, ok = middleware.ExtractBearer(r)
	require.True(t, ok)
}

// id пользователя из токена оказывается в контексте запроса
func TestJWTMiddleware_OK(t *testing.T) {
	v := newVerifier()
	userID := uuid.New()

	var gotID uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := api.UserIDFromContext(r.Context())
		require.True(t, ok)
		gotID = id
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+accessToken(t, userID.String()))

	w := httptest.NewRecorder()
	v.Middleware(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, userID, gotID)
}

func TestJWTMiddleware_NoToken(t *testing.T) {
	v := newVerifier()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})

	w := httptest.NewRecorder()
	v.Middleware(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_BadToken(t *testing.T) {
	v := newVerifier()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer garbage")

	w := httptest.NewRecorder()
	v.Middleware(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// Токен с чужим issuer не проходит
func TestJWTMiddleware_WrongIssuer(t *testing.T) {
	v := newVerifier()

	token, err := crypto.NewAccessToken(uuid.NewString(), crypto.JWTConfig{
		Issuer:     "other-service",
		Audience:   "contacts-api",
		SigningKey: signingKey,
		AccessTTL:  time.Minute,
	})
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	v.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	})).ServeHTTP(w, r)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
