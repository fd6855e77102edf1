package main

import (
	"github.com/spf13/cobra"

	"github.com/harmony-one/btcdash/internal/cli"
	"github.com/harmony-one/btcdash/internal/configs/btcdash"
)

var (
	httpFlags = []cli.Flag{
		httpIPFlag,
		httpPortFlag,
		httpOriginsFlag,
		httpReadTimeoutFlag,
		httpWriteTimeoutFlag,
		httpIdleTimeoutFlag,
	}

	nodeFlags = []cli.Flag{
		nodeTimeoutFlag,
		nodeRPSFlag,
	}

	marketFlags = []cli.Flag{
		marketPriceFlag,
		marketSupplyFlag,
		marketUTXOSupplyFlag,
	}

	rateLimitFlags = []cli.Flag{
		rateLimitEnabledFlag,
		rateLimitRPSFlag,
		rateLimitBurstFlag,
		rateLimitWhitelistFlag,
	}

	logFlags = []cli.Flag{
		logFolderFlag,
		logFileNameFlag,
		logToFileFlag,
		logRotateSizeFlag,
		logVerbosityFlag,
	}

	prometheusFlags = []cli.Flag{
		prometheusEnabledFlag,
		prometheusIPFlag,
		prometheusPortFlag,
	}
)

var configFlag = cli.StringFlag{
	Name:      "config",
	Usage:     "load btcdash config from the config toml file.",
	Shorthand: "c",
	DefValue:  "",
}

func getRootFlags() []cli.Flag {
	var flags []cli.Flag

	flags = append(flags, configFlag)
	flags = append(flags, httpFlags...)
	flags = append(flags, nodeFlags...)
	flags = append(flags, marketFlags...)
	flags = append(flags, rateLimitFlags...)
	flags = append(flags, logFlags...)
	flags = append(flags, prometheusFlags...)

	return flags
}

// http flags
var (
	httpIPFlag = cli.StringFlag{
		Name:     "http.ip",
		Usage:    "ip address to listen for api requests",
		DefValue: defaultConfig.HTTP.IP,
	}
	httpPortFlag = cli.IntFlag{
		Name:     "http.port",
		Usage:    "port to listen for api requests",
		DefValue: defaultConfig.HTTP.Port,
	}
	httpOriginsFlag = cli.StringSliceFlag{
		Name:     "http.origins",
		Usage:    "origins allowed for cross-origin requests (delimited by ,)",
		DefValue: defaultConfig.HTTP.AllowedOrigins,
	}
	httpReadTimeoutFlag = cli.DurationFlag{
		Name:     "http.read-timeout",
		Usage:    "maximum duration for reading an api request",
		DefValue: defReadTimeout,
	}
	httpWriteTimeoutFlag = cli.DurationFlag{
		Name:     "http.write-timeout",
		Usage:    "maximum duration for writing an api response",
		DefValue: defWriteTimeout,
	}
	httpIdleTimeoutFlag = cli.DurationFlag{
		Name:     "http.idle-timeout",
		Usage:    "maximum idle duration of a keep-alive api connection",
		DefValue: defIdleTimeout,
	}
)

func applyHTTPFlags(cmd *cobra.Command, config *btcdash.BtcdashConfig) {
	if cli.IsFlagChanged(cmd, httpIPFlag) {
		config.HTTP.IP = cli.GetStringFlagValue(cmd, httpIPFlag)
	}
	if cli.IsFlagChanged(cmd, httpPortFlag) {
		config.HTTP.Port = cli.GetIntFlagValue(cmd, httpPortFlag)
	}
	if cli.IsFlagChanged(cmd, httpOriginsFlag) {
		config.HTTP.AllowedOrigins = cli.GetStringSliceFlagValue(cmd, httpOriginsFlag)
	}
	if cli.IsFlagChanged(cmd, httpReadTimeoutFlag) {
		config.HTTP.ReadTimeout = cli.GetDurationFlagValue(cmd, httpReadTimeoutFlag).String()
	}
	if cli.IsFlagChanged(cmd, httpWriteTimeoutFlag) {
		config.HTTP.WriteTimeout = cli.GetDurationFlagValue(cmd, httpWriteTimeoutFlag).String()
	}
	if cli.IsFlagChanged(cmd, httpIdleTimeoutFlag) {
		config.HTTP.IdleTimeout = cli.GetDurationFlagValue(cmd, httpIdleTimeoutFlag).String()
	}
}

// node flags
var (
	nodeTimeoutFlag = cli.DurationFlag{
		Name:     "node.timeout",
		Usage:    "timeout of a single bitcoind call",
		DefValue: defNodeTimeout,
	}
	nodeRPSFlag = cli.IntFlag{
		Name:     "node.rps",
		Usage:    "maximum calls per second to bitcoind (0 for unlimited)",
		DefValue: defaultConfig.Node.RequestsPerSecond,
	}
)

func applyNodeFlags(cmd *cobra.Command, config *btcdash.BtcdashConfig) {
	if cli.IsFlagChanged(cmd, nodeTimeoutFlag) {
		config.Node.Timeout = cli.GetDurationFlagValue(cmd, nodeTimeoutFlag).String()
	}
	if cli.IsFlagChanged(cmd, nodeRPSFlag) {
		config.Node.RequestsPerSecond = cli.GetIntFlagValue(cmd, nodeRPSFlag)
	}
}

// market flags
var (
	marketPriceFlag = cli.Float64Flag{
		Name:     "market.price",
		Usage:    "price shown on the dashboard",
		DefValue: defaultConfig.Market.Price,
	}
	marketSupplyFlag = cli.Float64Flag{
		Name:     "market.supply",
		Usage:    "total money supply shown on the dashboard",
		DefValue: defaultConfig.Market.TotalMoneySupply,
	}
	marketUTXOSupplyFlag = cli.BoolFlag{
		Name:     "market.utxo-supply",
		Usage:    "read the total money supply from the bitcoind utxo set",
		DefValue: defaultConfig.Market.SupplyFromUTXOSet,
	}
)

func applyMarketFlags(cmd *cobra.Command, config *btcdash.BtcdashConfig) {
	if cli.IsFlagChanged(cmd, marketPriceFlag) {
		config.Market.Price = cli.GetFloat64FlagValue(cmd, marketPriceFlag)
	}
	if cli.IsFlagChanged(cmd, marketSupplyFlag) {
		config.Market.TotalMoneySupply = cli.GetFloat64FlagValue(cmd, marketSupplyFlag)
	}
	if cli.IsFlagChanged(cmd, marketUTXOSupplyFlag) {
		config.Market.SupplyFromUTXOSet = cli.GetBoolFlagValue(cmd, marketUTXOSupplyFlag)
	}
}

// rate limit flags
var (
	rateLimitEnabledFlag = cli.BoolFlag{
		Name:     "ratelimit",
		Usage:    "enable per-ip rate limiting of api requests",
		DefValue: defaultConfig.RateLimit.Enabled,
	}
	rateLimitRPSFlag = cli.IntFlag{
		Name:     "ratelimit.rps",
		Usage:    "api requests per second allowed for each ip",
		DefValue: defaultConfig.RateLimit.RequestsPerSecond,
	}
	rateLimitBurstFlag = cli.IntFlag{
		Name:     "ratelimit.burst",
		Usage:    "api request burst allowed for each ip",
		DefValue: defaultConfig.RateLimit.Burst,
	}
	rateLimitWhitelistFlag = cli.StringSliceFlag{
		Name:     "ratelimit.whitelist",
		Usage:    "client ips exempt from rate limiting (delimited by ,)",
		DefValue: defaultConfig.RateLimit.Whitelist,
	}
)

func applyRateLimitFlags(cmd *cobra.Command, config *btcdash.BtcdashConfig) {
	if cli.IsFlagChanged(cmd, rateLimitRPSFlag) {
		config.RateLimit.RequestsPerSecond = cli.GetIntFlagValue(cmd, rateLimitRPSFlag)
	}
	if cli.IsFlagChanged(cmd, rateLimitBurstFlag) {
		config.RateLimit.Burst = cli.GetIntFlagValue(cmd, rateLimitBurstFlag)
	}
	if cli.IsFlagChanged(cmd, rateLimitWhitelistFlag) {
		config.RateLimit.Whitelist = cli.GetStringSliceFlagValue(cmd, rateLimitWhitelistFlag)
	}
	if cli.HasFlagsChanged(cmd, []cli.Flag{rateLimitRPSFlag, rateLimitBurstFlag}) {
		config.RateLimit.Enabled = true
	}
	if cli.IsFlagChanged(cmd, rateLimitEnabledFlag) {
		config.RateLimit.Enabled = cli.GetBoolFlagValue(cmd, rateLimitEnabledFlag)
	}
}

// log flags
var (
	logFolderFlag = cli.StringFlag{
		Name:     "log.dir",
		Usage:    "directory path to put rotation logs",
		DefValue: defaultConfig.Log.Folder,
	}
	logFileNameFlag = cli.StringFlag{
		Name:     "log.name",
		Usage:    "log file name (e.g. btcdash.log)",
		DefValue: defaultConfig.Log.FileName,
	}
	logToFileFlag = cli.BoolFlag{
		Name:     "log.file",
		Usage:    "write logs to a rotating file instead of stderr",
		DefValue: defaultConfig.Log.ToFile,
	}
	logRotateSizeFlag = cli.StringFlag{
		Name:     "log.max-size",
		Usage:    "rotation log size (e.g. 100MB)",
		DefValue: defaultConfig.Log.RotateSize,
	}
	logVerbosityFlag = cli.IntFlag{
		Name:      "log.verbosity",
		Shorthand: "v",
		Usage:     "logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		DefValue:  defaultConfig.Log.Verbosity,
	}
)

func applyLogFlags(cmd *cobra.Command, config *btcdash.BtcdashConfig) {
	if cli.IsFlagChanged(cmd, logFolderFlag) {
		config.Log.Folder = cli.GetStringFlagValue(cmd, logFolderFlag)
	}
	if cli.IsFlagChanged(cmd, logFileNameFlag) {
		config.Log.FileName = cli.GetStringFlagValue(cmd, logFileNameFlag)
	}
	if cli.HasFlagsChanged(cmd, []cli.Flag{logFolderFlag, logFileNameFlag}) {
		config.Log.ToFile = true
	}
	if cli.IsFlagChanged(cmd, logToFileFlag) {
		config.Log.ToFile = cli.GetBoolFlagValue(cmd, logToFileFlag)
	}
	if cli.IsFlagChanged(cmd, logRotateSizeFlag) {
		config.Log.RotateSize = cli.GetStringFlagValue(cmd, logRotateSizeFlag)
	}
	if cli.IsFlagChanged(cmd, logVerbosityFlag) {
		config.Log.Verbosity = cli.GetIntFlagValue(cmd, logVerbosityFlag)
	}
}

// prometheus flags
var (
	prometheusEnabledFlag = cli.BoolFlag{
		Name:     "prometheus",
		Usage:    "enable the prometheus metrics server",
		DefValue: defaultConfig.Prometheus.Enabled,
	}
	prometheusIPFlag = cli.StringFlag{
		Name:     "prometheus.ip",
		Usage:    "ip address of the prometheus metrics server",
		DefValue: defaultConfig.Prometheus.IP,
	}
	prometheusPortFlag = cli.IntFlag{
		Name:     "prometheus.port",
		Usage:    "port of the prometheus metrics server",
		DefValue: defaultConfig.Prometheus.Port,
	}
)

func applyPrometheusFlags(cmd *cobra.Command, config *btcdash.BtcdashConfig) {
	if cli.IsFlagChanged(cmd, prometheusIPFlag) {
		config.Prometheus.IP = cli.GetStringFlagValue(cmd, prometheusIPFlag)
	}
	if cli.IsFlagChanged(cmd, prometheusPortFlag) {
		config.Prometheus.Port = cli.GetIntFlagValue(cmd, prometheusPortFlag)
	}
	if cli.HasFlagsChanged(cmd, []cli.Flag{prometheusIPFlag, prometheusPortFlag}) {
		config.Prometheus.Enabled = true
	}
	if cli.IsFlagChanged(cmd, prometheusEnabledFlag) {
		config.Prometheus.Enabled = cli.GetBoolFlagValue(cmd, prometheusEnabledFlag)
	}
}
