package btcdash

import (
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
)

// BtcdashConfig contains all the configs user can set for running the btcdash
// binary. Served as the bridge from user set flags to the service configs.
// Also user can persist this structure to a toml file to avoid inputting all
// arguments. Node credentials are read from the environment only.
type BtcdashConfig struct {
	Version    string
	HTTP       HTTPConfig
	Node       NodeConfig
	Market     MarketConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
	Prometheus PrometheusConfig
}

// HTTPConfig is the config of the api server.
type HTTPConfig struct {
	IP             string
	Port           int
	ReadTimeout    string // Type: time.Duration
	WriteTimeout   string // Type: time.Duration
	IdleTimeout    string // Type: time.Duration
	AllowedOrigins []string
}

// NodeConfig is the config of the calls to bitcoind.
type NodeConfig struct {
	Timeout           string // Type: time.Duration
	RequestsPerSecond int    // 0 = unlimited
}

// MarketConfig is the source of the price and supply of the dashboard.
type MarketConfig struct {
	Price            float64
	TotalMoneySupply float64
	// SupplyFromUTXOSet replaces TotalMoneySupply by the total amount of the
	// node UTXO set.
	SupplyFromUTXOSet bool
}

// RateLimitConfig is the per-IP rate limit of the api.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond int
	Burst             int
	Capacity          int
	// Whitelist lists client IPs that are never limited.
	Whitelist []string
}

// LogConfig is the config of the global logger.
type LogConfig struct {
	Folder       string
	FileName     string
	RotateSize   string // Type: datasize.ByteSize, e.g. "100MB"
	RotateCount  int
	RotateMaxAge int
	Verbosity    int
	ToFile       bool
}

// PrometheusConfig is the config of the metrics server.
type PrometheusConfig struct {
	Enabled bool
	IP      string
	Port    int
}

// Durations are the parsed duration fields of a config.
type Durations struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	NodeTimeout  time.Duration
}

// ParseDurations parses every duration field of the config.
func (c BtcdashConfig) ParseDurations() (Durations, error) {
	var (
		d   Durations
		err error
	)
	fields := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"HTTP.ReadTimeout", c.HTTP.ReadTimeout, &d.ReadTimeout},
		{"HTTP.WriteTimeout", c.HTTP.WriteTimeout, &d.WriteTimeout},
		{"HTTP.IdleTimeout", c.HTTP.IdleTimeout, &d.IdleTimeout},
		{"Node.Timeout", c.Node.Timeout, &d.NodeTimeout},
	}
	for _, f := range fields {
		if *f.dst, err = time.ParseDuration(f.raw); err != nil {
			return Durations{}, errors.Wrapf(err, "invalid %v", f.name)
		}
		if *f.dst < 0 {
			return Durations{}, errors.Errorf("invalid %v: negative duration %v", f.name, f.raw)
		}
	}
	return d, nil
}

// RotateSizeMB parses RotateSize into the whole megabytes of a log file
// before rotation.
func (c LogConfig) RotateSizeMB() (int, error) {
	size, err := datasize.ParseString(c.RotateSize)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid Log.RotateSize %q", c.RotateSize)
	}
	if size < datasize.MB {
		return 0, errors.Errorf("invalid Log.RotateSize %q: less than 1MB", c.RotateSize)
	}
	return int(size / datasize.MB), nil
}
