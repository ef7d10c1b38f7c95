package middleware

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/poofware/buyer-leads-service/internal/utils"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request once the handler returns.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		entry := utils.Logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
			"client":   utils.GetClientAddress(r),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("request completed with server error")
			return
		}
		entry.Debug("request completed")
	})
}
