package middleware

import (
	"math"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/newthinker/stagger/internal/api/response"
	"github.com/newthinker/stagger/internal/core"
)

// RateLimit returns middleware that applies one token bucket to all
// requests. A non-positive rps disables limiting. onReject, when set, is
// called for every rejected request.
func RateLimit(rps float64, burst int, onReject func()) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	retryAfter := strconv.Itoa(int(math.Ceil(1 / rps)))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if onReject != nil {
					onReject()
				}
				w.Header().Set("Retry-After", retryAfter)
				response.Error(w, http.StatusTooManyRequests, core.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
