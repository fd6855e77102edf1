// Package prometheus defines a service which is used for metrics collection
// of a btcdash instance.
package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/harmony-one/abool"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harmony-one/btcdash/internal/utils"
)

// Config is the config for the prometheus service
type Config struct {
	Enabled bool
	IP      string
	Port    int
}

func (p Config) String() string {
	return fmt.Sprintf("%v, %v:%v", p.Enabled, p.IP, p.Port)
}

// Service provides Prometheus metrics via the /metrics route. This route will
// show all the metrics registered with PromRegistry.
type Service struct {
	config  Config
	server  *http.Server
	started abool.AtomicBool

	lock       sync.Mutex
	failStatus error
}

var (
	registryOnce sync.Once
	registry     *prometheus.Registry
)

// PromRegistry returns the registry every btcdash collector registers to.
func PromRegistry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
	return registry
}

// Handler serves the metrics of PromRegistry.
func Handler() http.Handler {
	reg := PromRegistry()
	return promhttp.InstrumentMetricHandler(
		reg,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)
}

// NewService sets up a new instance for a given address host:port.
// An empty host will match with any IP so an address like ":9900" is perfectly acceptable.
func NewService(config Config) *Service {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	endpoint := fmt.Sprintf("%s:%d", config.IP, config.Port)
	return &Service{
		config: config,
		server: &http.Server{
			Addr:              endpoint,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start the prometheus service.
func (s *Service) Start() error {
	if !s.config.Enabled {
		utils.Logger().Info().Msg("Prometheus http server disabled...")
		return nil
	}
	if !s.started.SetToIf(false, true) {
		return errors.New("prometheus service already started")
	}
	utils.Logger().Debug().Str("Config", s.config.String()).Msg("Prometheus")
	go func() {
		utils.Logger().Info().Str("address", s.server.Addr).Msg("Starting prometheus service")
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			utils.Logger().Error().Err(err).Msgf("Could not listen to host:port :%s", s.server.Addr)
			s.lock.Lock()
			s.failStatus = err
			s.lock.Unlock()
		}
	}()
	return nil
}

// Stop the prometheus service.
func (s *Service) Stop() error {
	if !s.started.SetToIf(true, false) {
		return nil
	}
	utils.Logger().Info().Msg("Shutting down prometheus service")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Status returns an error if the service failed to listen.
func (s *Service) Status() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.failStatus
}
