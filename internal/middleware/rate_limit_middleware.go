package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/poofware/buyer-leads-service/internal/dtos"
	"github.com/poofware/buyer-leads-service/internal/services"
	"github.com/poofware/buyer-leads-service/internal/utils"
)

// RateLimitMiddleware rejects callers that exceed the fixed-window limit,
// keyed by client address. A failing limiter store lets the request through.
func RateLimitMiddleware(limiter services.RateLimiterService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := utils.GetClientAddress(r)

			decision, err := limiter.Check(r.Context(), key)
			if err != nil {
				utils.Logger.WithError(err).WithField("client", key).Error("Rate limiter unavailable; allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if !decision.Allowed {
				seconds := int(math.Ceil(decision.RetryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				utils.RespondErrorWithCode(
					w,
					http.StatusTooManyRequests,
					utils.ErrCodeRateLimitExceeded,
					"Too many requests, please try again later",
					dtos.RateLimitDetails{RetryAfterSeconds: seconds},
					utils.ErrRateLimitExceeded,
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
