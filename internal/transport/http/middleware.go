package http

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"auth-backend/internal/pkg/log"

	"github.com/google/uuid"
)

// responseWriter перехватывает статус ответа для итоговой логзаписи.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestLogger реализует логирование HTTP-запросов с контекстным логгером.
//
// Поведение и формат логов:
//   - Вытягивает X-Request-Id из заголовков, иначе генерирует UUID;
//   - Кладёт обогащённый *slog.Logger (request_id, метод, путь, peer)
//     в context (pkg/log), чтобы он был доступен глубже по стеку;
//   - После выполнения handler пишет одну строку уровня Info: msg="http",
//     status=<код ответа>, dur=<время выполнения>.
//
// Безопасность:
//   - Логи не содержат тел запросов и тем более паролей;
//   - Если базовый логгер не передан, используется slog.Default().
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rid := r.Header.Get("X-Request-Id")
			if rid == "" {
				rid = uuid.NewString()
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("peer", r.RemoteAddr),
			)
			ctx := log.Into(r.Context(), l)

			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r.WithContext(ctx))

			l.Info("http",
				slog.Int("status", ww.status),
				slog.Duration("dur", time.Since(start)),
			)
		})
	}
}

// Recover перехватывает паники в обработчиках, логирует их со стеком
// и отвечает клиенту нейтральным 500 без раскрытия внутренних деталей.
func Recover(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := log.From(r.Context())
			if l == slog.Default() && base != nil {
				l = base
			}

			defer func() {
				if rec := recover(); rec != nil {
					l.Error("panic_recovered",
						slog.String("path", r.URL.Path),
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_, _ = w.Write([]byte(`{"error":"internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// WithTimeout ограничивает время обработки запроса, если дедлайна ещё нет.
func WithTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := r.Context().Deadline(); ok || d <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
