package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"rentshare/internal/config"
	"rentshare/internal/domain"
	"rentshare/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-Id"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware пишет одну строку на запрос и пробрасывает request id.
func loggingMiddleware(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		metrics.IncHTTP(r.URL.Path, strconv.Itoa(recorder.status))
		logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

// RateLimiter ограничивает частоту запросов: авторизованные пользователи
// считаются по заголовку идентификации в общем хранилище, анонимные —
// локальным token bucket по адресу клиента.
type RateLimiter struct {
	cfg      config.RateLimitConfig
	header   string
	repo     domain.RateLimitRepository
	logger   zerolog.Logger
	limiters sync.Map // map[string]*rate.Limiter
}

func NewRateLimiter(cfg config.RateLimitConfig, header string, repo domain.RateLimitRepository, logger zerolog.Logger) *RateLimiter {
	return &RateLimiter{cfg: cfg, header: header, repo: repo, logger: logger}
}

func (l *RateLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.cfg.Requests <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		if userID, err := strconv.ParseInt(strings.TrimSpace(r.Header.Get(l.header)), 10, 64); err == nil {
			window := time.Duration(l.cfg.Window) * time.Second
			allowed, err := l.repo.CheckRateLimit(r.Context(), userID, l.cfg.Requests, window)
			if err != nil {
				// Лимитер не должен ронять запросы при своей деградации.
				l.logger.Error().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		if !l.anonLimiter(clientAddr(r)).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimiter) anonLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	rps := l.cfg.RPS
	if rps <= 0 {
		rps = 5
	}
	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(rps), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}
