// Package gateway serves the btcdash HTTP API: thin proxies of single node
// queries and the aggregated dashboard.
package gateway

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/harmony-one/abool"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/harmony-one/btcdash/bitcoind"
	"github.com/harmony-one/btcdash/dashboard"
	ratelimit "github.com/harmony-one/btcdash/internal/rate"
	"github.com/harmony-one/btcdash/internal/utils"
)

// PathPrefix is the versioned prefix of every api endpoint.
const PathPrefix = "/api/v1"

const shutdownTimeout = 10 * time.Second

// Config is the config of the gateway service.
type Config struct {
	IP             string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string

	RateLimit RateLimitConfig
}

// RateLimitConfig is the per-client rate limit of inbound requests.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond int
	Burst             int
	// Capacity is the number of clients tracked before idle ones are evicted.
	Capacity int
	// Whitelist lists client IPs that are never limited.
	Whitelist []string
}

// Addr is the listen address of the service.
func (c Config) Addr() string {
	return net.JoinHostPort(c.IP, fmt.Sprint(c.Port))
}

// SnapshotSource computes dashboard snapshots.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*dashboard.Snapshot, error)
}

// Service is the api http service.
type Service struct {
	config    Config
	provider  bitcoind.Provider
	snapshots SnapshotSource
	limiter   ratelimit.IDLimiter

	router   *mux.Router
	server   *http.Server
	listener net.Listener
	started  abool.AtomicBool
}

// New returns the gateway service.
func New(config Config, provider bitcoind.Provider, snapshots SnapshotSource) *Service {
	s := &Service{
		config:    config,
		provider:  provider,
		snapshots: snapshots,
	}
	if config.RateLimit.Enabled {
		burst := config.RateLimit.Burst
		if burst <= 0 {
			burst = config.RateLimit.RequestsPerSecond
		}
		capacity := config.RateLimit.Capacity
		s.limiter = ratelimit.NewLimiterPerID(
			rate.Limit(config.RateLimit.RequestsPerSecond), burst, &ratelimit.Config{
				Capacity:  &capacity,
				Whitelist: config.RateLimit.Whitelist,
			},
		)
	}
	s.router = s.newRouter()
	return s
}

// Handler returns the api handler wrapped in its middleware chain.
func (s *Service) Handler() http.Handler {
	var h http.Handler = s.router
	if s.limiter != nil {
		h = rateLimitMiddleware(s.limiter, h)
	}
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return recoverMiddleware(c.Handler(loggerMiddleware(h)))
}

// Start starts listening and serving in the background.
func (s *Service) Start() error {
	if !s.started.SetToIf(false, true) {
		return errors.New("gateway service already started")
	}
	listener, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		s.started.UnSet()
		return errors.Wrapf(err, "cannot listen on %v", s.config.Addr())
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	if s.limiter != nil {
		s.limiter.Start()
	}
	utils.Logger().Info().Str("addr", listener.Addr().String()).Msg("[Gateway] Server started.")
	go func() {
		defer func() { utils.Logger().Debug().Msg("[Gateway] Server closed.") }()
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			utils.Logger().Warn().Err(err).Msg("[Gateway] Server error.")
		}
	}()
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Service) Stop() error {
	if !s.started.SetToIf(true, false) {
		return nil
	}
	utils.Logger().Info().Msg("Shutting down gateway service.")
	if s.limiter != nil {
		s.limiter.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "cannot shut down gateway server")
	}
	return nil
}

// Addr returns the address the service listens on, once started.
func (s *Service) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
