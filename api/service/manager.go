package service

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/harmony-one/btcdash/internal/utils"
)

// Type is service type.
type Type byte

// Constants for Type.
const (
	UnknownService Type = iota
	Gateway
	Prometheus
)

func (t Type) String() string {
	switch t {
	case Gateway:
		return "Gateway"
	case Prometheus:
		return "Prometheus"
	default:
		return "Unknown"
	}
}

// Service is the collection of functions any service needs to implement.
type Service interface {
	Start() error
	Stop() error
}

// Manager starts services in registration order and stops them in reverse.
type Manager struct {
	services []Service
	types    []Type

	logger zerolog.Logger
}

// NewManager creates a new manager
func NewManager() *Manager {
	return &Manager{
		logger: utils.Logger().With().Str("module", "service").Logger(),
	}
}

// Register registers new service to service store. A type can only be
// registered once.
func (m *Manager) Register(t Type, service Service) error {
	for _, registered := range m.types {
		if registered == t {
			return errors.Errorf("service [%v] already registered", t)
		}
	}
	m.logger.Info().Str("type", t.String()).Msg("Register service")
	m.services = append(m.services, service)
	m.types = append(m.types, t)
	return nil
}

// GetService get the specified service
func (m *Manager) GetService(t Type) Service {
	for i, registered := range m.types {
		if registered == t {
			return m.services[i]
		}
	}
	return nil
}

// StartServices run all registered services. If one of the starting service returns
// an error, closing all started services.
func (m *Manager) StartServices() (err error) {
	started := 0
	defer func() {
		if err != nil {
			if stopErr := m.stopServices(started); stopErr != nil {
				err = errors.Errorf("%v; %v", err, stopErr)
			}
		}
	}()

	for i, service := range m.services {
		m.logger.Info().Str("type", m.types[i].String()).Msg("Starting service")
		if err = service.Start(); err != nil {
			return errors.Wrapf(err, "cannot start service [%v]", m.types[i])
		}
		started++
	}
	return nil
}

// StopServices stops all services in the reverse order.
func (m *Manager) StopServices() error {
	return m.stopServices(len(m.services))
}

// stopServices stops the first n services in the reverse order.
func (m *Manager) stopServices(n int) error {
	var rErr error
	for i := n - 1; i >= 0; i-- {
		t := m.types[i]
		m.logger.Info().Str("type", t.String()).Msg("Stopping service")
		if err := m.services[i].Stop(); err != nil {
			err = errors.Wrapf(err, "failed to stop service [%v]", t)
			if rErr != nil {
				rErr = errors.Errorf("%v; %v", rErr, err)
			} else {
				rErr = err
			}
		}
	}
	return rErr
}
