package catalog

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"catalog-service/internal/apperror"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

type ctxUserKey struct{}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxUserKey{}).(string)
	return id, ok && id != ""
}

// authMiddleware requires a valid bearer access token and stores its user id on
// the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			writeError(w, http.StatusUnauthorized, "missing authentication")
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, http.StatusUnauthorized, "invalid Authorization header")
			return
		}

		userID, err := s.tokens.ParseAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			s.writeFail(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireUser returns the authenticated user id or writes a 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		s.writeFail(w, r, apperror.Authentication("missing authentication"))
		return "", false
	}
	return userID, true
}

// RequestLogger logs one line per request with its status and duration.
func RequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"ip", clientIP(r),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[ip] = lim
	}
	return lim
}

// RateLimit allows rps requests per second per client IP with the given burst.
// A non-positive rps disables limiting.
func RateLimit(rps, burst int) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = rps
	}
	l := &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.get(clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP relies on middleware.RealIP having rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
