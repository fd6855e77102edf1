package gateway

import (
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/harmony-one/btcdash/internal/apierr"
	"github.com/harmony-one/btcdash/internal/rate"
	"github.com/harmony-one/btcdash/internal/utils"
)

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func recoverMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				var err error
				switch t := rec.(type) {
				case string:
					err = errors.New(t)
				case error:
					err = t
				default:
					err = errors.New(fmt.Sprint(t))
				}
				utils.Logger().Error().
					Err(err).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("Gateway handler panic")
				writeErrorBody(w, http.StatusInternalServerError, apierr.Unknown.String(), "internal error")
			}
		}()
		h.ServeHTTP(w, r)
	})
}

// requestIDHeader carries the id a request is logged under. A valid id sent
// by the client is kept.
const requestIDHeader = "X-Request-Id"

func loggerMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if uuid.Parse(id) == nil {
			id = uuid.New()
		}
		w.Header().Set(requestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(rec, r)
		utils.Logger().Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("Gateway request")
	})
}

// rateLimitMiddleware rejects requests of clients exceeding their share,
// keyed by remote IP.
func rateLimitMiddleware(limiter rate.IDLimiter, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := clientIP(r)
		if !limiter.AllowN(id, 1) {
			rateLimitedCounter.Inc()
			utils.Logger().Debug().Str("client", id).Msg("Gateway request rate limited")
			writeError(w, apierr.Newf(apierr.RateLimited, "too many requests from %v", id))
			return
		}
		h.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
