package main

import (
	"time"

	"github.com/harmony-one/btcdash/internal/configs/btcdash"
)

const tomlConfigVersion = "1.0.0"

const (
	defHTTPPort       = 3030
	defPrometheusPort = 9900

	defReadTimeout  = 5 * time.Second
	defWriteTimeout = 120 * time.Second
	defIdleTimeout  = 120 * time.Second
	defNodeTimeout  = 30 * time.Second
)

var defaultConfig = btcdash.BtcdashConfig{
	Version: tomlConfigVersion,
	HTTP: btcdash.HTTPConfig{
		IP:             "127.0.0.1",
		Port:           defHTTPPort,
		ReadTimeout:    defReadTimeout.String(),
		WriteTimeout:   defWriteTimeout.String(),
		IdleTimeout:    defIdleTimeout.String(),
		AllowedOrigins: []string{"*"},
	},
	Node: btcdash.NodeConfig{
		Timeout:           defNodeTimeout.String(),
		RequestsPerSecond: 0,
	},
	Market: btcdash.MarketConfig{
		Price:             22122.0,
		TotalMoneySupply:  70000.1,
		SupplyFromUTXOSet: false,
	},
	RateLimit: btcdash.RateLimitConfig{
		Enabled:           false,
		RequestsPerSecond: 100,
		Burst:             100,
		Capacity:          1000,
		Whitelist:         []string{},
	},
	Log: btcdash.LogConfig{
		Folder:       "./latest",
		FileName:     "btcdash.log",
		RotateSize:   "100MB",
		RotateCount:  0,
		RotateMaxAge: 0,
		Verbosity:    3,
		ToFile:       false,
	},
	Prometheus: btcdash.PrometheusConfig{
		Enabled: false,
		IP:      "127.0.0.1",
		Port:    defPrometheusPort,
	},
}

func getDefaultBtcdashConfigCopy() btcdash.BtcdashConfig {
	config := defaultConfig
	config.HTTP.AllowedOrigins = append([]string{}, defaultConfig.HTTP.AllowedOrigins...)
	config.RateLimit.Whitelist = append([]string{}, defaultConfig.RateLimit.Whitelist...)
	return config
}
