package middleware

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/server/api"
	serr "github.com/IvanChernomyrdin/go-contacts-api/internal/shared/errors"
)

// Counter — минимальный интерфейс к бекенду счётчиков (Redis).
// Выделен, чтобы в тестах подсовывать in-memory реализацию.
type Counter interface {
	// Incr увеличивает счётчик и возвращает новое значение.
	Incr(ctx context.Context, key string) (int64, error)
	// Expire выставляет TTL ключа.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// redisCounter — реализация Counter поверх go-redis.
type redisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) Counter {
	return &redisCounter{client: client}
}

func (c *redisCounter) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, key).Result()
}

func (c *redisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

// RateLimiter ограничивает частоту запросов по алгоритму фиксированного окна:
// INCR по ключу "rl:<класс>:<пользователь>", на первом инкременте окна
// выставляется TTL. Чтение и запись контактов лимитируются раздельно.
//
// Ключ — id пользователя из access-токена; для неаутентифицированных
// запросов (до auth-middleware лимитер не ставится, но на всякий случай)
// используется IP клиента.
type RateLimiter struct {
	counter Counter
	window  time.Duration

	readLimit  int
	writeLimit int
}

func NewRateLimiter(counter Counter, readLimit, writeLimit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counter:    counter,
		window:     window,
		readLimit:  readLimit,
		writeLimit: writeLimit,
	}
}

// Read — лимитер GET-эндпоинтов контактов.
func (rl *RateLimiter) Read(next http.Handler) http.Handler {
	return rl.limit("read", rl.readLimit, next)
}

// Write — лимитер мутирующих эндпоинтов контактов.
func (rl *RateLimiter) Write(next http.Handler) http.Handler {
	return rl.limit("write", rl.writeLimit, next)
}

func (rl *RateLimiter) limit(class string, max int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := "rl:" + class + ":" + clientKey(r)

		n, err := rl.counter.Incr(r.Context(), key)
		if err != nil {
			// Redis лёг — запросы не режем
			next.ServeHTTP(w, r)
			return
		}
		if n == 1 {
			_ = rl.counter.Expire(r.Context(), key, rl.window)
		}

		if n > int64(max) {
			api.WriteError(w, serr.ErrRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey — идентификатор клиента: id пользователя, иначе его IP.
func clientKey(r *http.Request) string {
	if id, ok := api.UserIDFromContext(r.Context()); ok {
		return id.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
