package rate

import (
	"time"

	"golang.org/x/time/rate"
)

// Eviction defaults of a limiter built without an explicit Config.
const (
	defaultSweepInterval = time.Minute
	defaultIdleTTL       = 3 * time.Minute
	defaultCapacity      = 1000
)

// Config tunes the per-ID limiter. Nil fields keep their defaults.
type Config struct {
	// Capacity is the number of tracked IDs above which idle ones are evicted.
	Capacity *int
	// SweepInterval is the period of the eviction sweep.
	SweepInterval *time.Duration
	// IdleTTL is how long an ID must stay inactive before it can be evicted.
	IdleTTL *time.Duration
	// Whitelist lists IDs that are never limited.
	Whitelist []string
}

// settings is a Config resolved against the defaults.
type settings struct {
	limit         rate.Limit
	burst         int
	capacity      int
	sweepInterval time.Duration
	idleTTL       time.Duration
	exempt        map[string]struct{}
}

func (c *Config) resolve(limit rate.Limit, burst int) settings {
	s := settings{
		limit:         limit,
		burst:         burst,
		capacity:      defaultCapacity,
		sweepInterval: defaultSweepInterval,
		idleTTL:       defaultIdleTTL,
		exempt:        make(map[string]struct{}),
	}
	if c == nil {
		return s
	}
	if c.Capacity != nil && *c.Capacity > 0 {
		s.capacity = *c.Capacity
	}
	if c.SweepInterval != nil && *c.SweepInterval > 0 {
		s.sweepInterval = *c.SweepInterval
	}
	if c.IdleTTL != nil {
		s.idleTTL = *c.IdleTTL
	}
	for _, id := range c.Whitelist {
		s.exempt[id] = struct{}{}
	}
	return s
}
