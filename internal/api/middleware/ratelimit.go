package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/errors"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/utils/response"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

type clientIPContextKey string

const ClientIPKey = clientIPContextKey("client_ip")

// limiterIdleTTL is how long a client's bucket is kept after its last request.
const limiterIdleTTL = 10 * time.Minute

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	limiters *gocache.Cache
	r        rate.Limit
	b        int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		limiters: gocache.New(limiterIdleTTL, limiterIdleTTL),
		r:        r,
		b:        b,
	}
}

// GetLimiter returns the bucket for ip, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {

	if cached, found := i.limiters.Get(ip); found {
		limiter := cached.(*rate.Limiter)
		i.limiters.SetDefault(ip, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)

	// Add fails when another request created the bucket first
	if err := i.limiters.Add(ip, limiter, gocache.DefaultExpiration); err != nil {
		if cached, found := i.limiters.Get(ip); found {
			return cached.(*rate.Limiter)
		}
	}

	return limiter
}

func (i *IPRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ip := clientIP(r)

		if !i.GetLimiter(ip).Allow() {
			LoggerFromContext(r.Context()).Warn("Request rate limit exceeded", slog.String("ip", ip))
			response.Error(w, errors.TooManyRequestsError("Too many requests").WithRetryAfter(1))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClientIP(r.Context(), ip)))
	})
}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ClientIPKey, ip)
}

// ClientIPFromContext returns "" for requests that did not pass the limiter.
func ClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ClientIPKey).(string)
	return ip
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
