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

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/middleware"
)

// in-memory замена Redis-счётчика
type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
	err    error
}

func newMemCounter() *memCounter {
	return &memCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (c *memCounter) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	c.counts[key]++
	return c.counts[key], nil
}

func (c *memCounter) Expire(_ context.Context, key string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttls[key] = ttl
	return nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func authedGet(owner uuid.UUID) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	return r.WithContext(api.WithUserID(r.Context(), owner))
}

// Шестой GET в окне получает 429
func TestRateLimiter_ReadLimitExceeded(t *testing.T) {
	counter := newMemCounter()
	rl := middleware.NewRateLimiter(counter, 5, 3, time.Minute)
	h := rl.Read(okHandler())

	owner := uuid.New()

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, authedGet(owner))
		require.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, authedGet(owner))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

// Лимит записи ниже лимита чтения
func TestRateLimiter_WriteLimitExceeded(t *testing.T) {
	counter := newMemCounter()
	rl := middleware.NewRateLimiter(counter, 5, 3, time.Minute)
	h := rl.Write(okHandler())

	owner := uuid.New()

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, authedGet(owner))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, authedGet(owner))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

// Лимиты считаются раздельно по пользователям
func TestRateLimiter_PerUserKeys(t *testing.T) {
	counter := newMemCounter()
	rl := middleware.NewRateLimiter(counter, 1, 1, time.Minute)
	h := rl.Read(okHandler())

	first := uuid.New()
	second := uuid.New()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, authedGet(first))
	require.Equal(t, http.StatusOK, w.Code)

	// первый исчерпал лимит, второй — нет
	w = httptest.NewRecorder()
	h.ServeHTTP(w, authedGet(first))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, authedGet(second))
	require.Equal(t, http.StatusOK, w.Code)
}

// Чтение и запись лимитируются раздельно
func TestRateLimiter_SeparateClasses(t *testing.T) {
	counter := newMemCounter()
	rl := middleware.NewRateLimiter(counter, 1, 1, time.Minute)

	owner := uuid.New()

	w := httptest.NewRecorder()
	rl.Read(okHandler()).ServeHTTP(w, authedGet(owner))
	require.Equal(t, http.StatusOK, w.Code)

	// read исчерпан, write ещё свободен
	w = httptest.NewRecorder()
	rl.Write(okHandler()).ServeHTTP(w, authedGet(owner))
	require.Equal(t, http.StatusOK, w.Code)
}

// TTL выставляется на первом инкременте окна
func TestRateLimiter_SetsWindowTTL(t *testing.T) {
	counter := newMemCounter()
	rl := middleware.NewRateLimiter(counter, 5, 3, time.Minute)

	owner := uuid.New()

	w := httptest.NewRecorder()
	rl.Read(okHandler()).ServeHTTP(w, authedGet(owner))
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, time.Minute, counter.ttls["rl:read:"+owner.String()])
}

// Недоступный бекенд не блокирует запросы
func TestRateLimiter_CounterFailureFailsOpen(t *testing.T) {
	counter := newMemCounter()
	counter.err = context.DeadlineExceeded
	rl := middleware.NewRateLimiter(counter, 1, 1, time.Minute)

	w := httptest.NewRecorder()
	rl.Read(okHandler()).ServeHTTP(w, authedGet(uuid.New()))
	require.Equal(t, http.StatusOK, w.Code)
}

// Без пользователя в контексте ключ строится по IP
func TestRateLimiter_FallsBackToIP(t *testing.T) {
	counter := newMemCounter()
	rl := middleware.NewRateLimiter(counter, 1, 1, time.Minute)
	h := rl.Read(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/contacts/", nil)
	r.RemoteAddr = "10.1.2.3:5555"

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	require.EqualValues(t, 1, counter.counts["rl:read:10.1.2.3"])
}
