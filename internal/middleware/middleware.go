package middleware

import (
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"memories/internal/apperror"
	handlers "memories/internal/handler"
	"memories/internal/identity"
	"memories/internal/service"
)

type Middleware func(http.Handler) http.Handler

// Authenticate resolves a bearer token into the caller identity. Requests
// without an Authorization header pass through anonymously; endpoints that
// need a caller check for one themselves.
func Authenticate(tokens service.TokenService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				handlers.WriteError(w, "Unauthenticated", http.StatusUnauthorized)
				return
			}

			id, err := tokens.Verify(r.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				appErr := apperror.As(err)
				if appErr.Kind == apperror.KindInternal {
					logrus.WithError(appErr.Err).Error("Failed to resolve token identity")
					handlers.WriteError(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				handlers.WriteError(w, "Unauthenticated", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(identity.NewContext(r.Context(), id)))
		})
	}
}

// statusRecorder keeps the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		entry := logrus.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  chimw.GetReqID(r.Context()),
			"remote_addr": r.RemoteAddr,
		})

		switch {
		case rw.statusCode >= http.StatusInternalServerError:
			entry.Error("Request failed")
		case rw.statusCode >= http.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	})
}

// CORSMiddleware allows the configured front-end origin.
func CORSMiddleware(origin string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"RateLimit-Limit", "RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// TrustedProxyHeaders takes the client address from X-Forwarded-For or
// X-Real-IP only when the server runs behind a trusted proxy. Otherwise the
// peer address is kept and the headers are ignored.
func TrustedProxyHeaders(trusted bool) Middleware {
	if trusted {
		return chimw.RealIP
	}
	return func(next http.Handler) http.Handler {
		return next
	}
}

// Chain wraps h so that the last middleware is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
