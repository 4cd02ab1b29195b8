package middleware

import (
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-contacts-api/internal/shared/logger"
)

// responseWriter оборачивает http.ResponseWriter, чтобы запомнить
// статус и размер ответа для лога.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Logger логирует каждый запрос: метод, URI, статус, размер ответа
// и длительность обработки в миллисекундах.
func Logger(log *logger.HTTPLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			log.LogRequest(r.Method, r.RequestURI, rw.status, rw.size,
				float64(time.Since(start).Microseconds())/1000.0)
		})
	}
}
