package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/harmony-one/btcdash/api/service"
	"github.com/harmony-one/btcdash/api/service/gateway"
	"github.com/harmony-one/btcdash/api/service/prometheus"
	"github.com/harmony-one/btcdash/bitcoind"
	"github.com/harmony-one/btcdash/dashboard"
	"github.com/harmony-one/btcdash/internal/cli"
	"github.com/harmony-one/btcdash/internal/configs/btcdash"
	"github.com/harmony-one/btcdash/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:   "btcdash [port]",
	Short: "serve a bitcoin dashboard api over a bitcoind node",
	Long: "serve a bitcoin dashboard api over a bitcoind node. The node is read from the " +
		"BITCOIND_URL, BITCOIND_USERNAME and BITCOIND_PASSWORD environment variables.",
	Args: cobra.MaximumNArgs(1),
	Run:  runBtcdash,
}

func init() {
	cli.SetParseErrorHandle(func(err error) {
		fmt.Println(err)
		os.Exit(128)
	})

	rootCmd.AddCommand(dumpConfigCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)

	if err := registerRootCmdFlags(); err != nil {
		os.Exit(2)
	}
	if err := registerSnapshotCmdFlags(); err != nil {
		os.Exit(2)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerRootCmdFlags() error {
	return cli.RegisterFlags(rootCmd, getRootFlags())
}

func runBtcdash(cmd *cobra.Command, args []string) {
	cfg, err := getBtcdashConfig(cmd, args)
	if err != nil {
		fmt.Println(err)
		cmd.Help()
		os.Exit(128)
	}
	if err := setupLog(cfg); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	client, err := dialNode(cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer client.Close()

	manager, err := setupServices(cfg, client)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := manager.StartServices(); err != nil {
		utils.Logger().Error().Err(err).Msg("cannot start services")
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("Started btcdash at: %v:%v\n", cfg.HTTP.IP, cfg.HTTP.Port)

	waitForSignal()
	if err := manager.StopServices(); err != nil {
		utils.Logger().Error().Err(err).Msg("cannot stop services")
	}
}

func setupLog(config btcdash.BtcdashConfig) error {
	utils.SetLogVerbosity(config.Log.Verbosity)
	if !config.Log.ToFile {
		return nil
	}
	maxSize, err := config.Log.RotateSizeMB()
	if err != nil {
		return err
	}
	return utils.AddLogFile(utils.LogFileConfig{
		Path:         filepath.Join(config.Log.Folder, config.Log.FileName),
		MaxSize:      maxSize,
		RotateCount:  config.Log.RotateCount,
		RotateMaxAge: config.Log.RotateMaxAge,
	})
}

// dialNode connects to the node named by the environment.
func dialNode(config btcdash.BtcdashConfig) (*bitcoind.Client, error) {
	nodeConfig, err := readNodeEnv()
	if err != nil {
		return nil, err
	}
	durations, err := config.ParseDurations()
	if err != nil {
		return nil, err
	}
	nodeConfig.Timeout = durations.NodeTimeout
	nodeConfig.RequestsPerSecond = config.Node.RequestsPerSecond
	return bitcoind.Dial(nodeConfig)
}

func newMarketSource(config btcdash.MarketConfig, provider bitcoind.Provider) dashboard.MarketSource {
	if config.SupplyFromUTXOSet {
		return &dashboard.UTXOSetMarket{Price: config.Price, Provider: provider}
	}
	return dashboard.StaticMarket{Price: config.Price, TotalMoneySupply: config.TotalMoneySupply}
}

func setupServices(config btcdash.BtcdashConfig, provider bitcoind.Provider) (*service.Manager, error) {
	durations, err := config.ParseDurations()
	if err != nil {
		return nil, err
	}
	aggregator := dashboard.NewAggregator(provider, newMarketSource(config.Market, provider))
	gw := gateway.New(gateway.Config{
		IP:             config.HTTP.IP,
		Port:           config.HTTP.Port,
		ReadTimeout:    durations.ReadTimeout,
		WriteTimeout:   durations.WriteTimeout,
		IdleTimeout:    durations.IdleTimeout,
		AllowedOrigins: config.HTTP.AllowedOrigins,
		RateLimit: gateway.RateLimitConfig{
			Enabled:           config.RateLimit.Enabled,
			RequestsPerSecond: config.RateLimit.RequestsPerSecond,
			Burst:             config.RateLimit.Burst,
			Capacity:          config.RateLimit.Capacity,
			Whitelist:         config.RateLimit.Whitelist,
		},
	}, provider, aggregator)

	manager := service.NewManager()
	if err := manager.Register(service.Gateway, gw); err != nil {
		return nil, err
	}
	if config.Prometheus.Enabled {
		prom := prometheus.NewService(prometheus.Config{
			Enabled: true,
			IP:      config.Prometheus.IP,
			Port:    config.Prometheus.Port,
		})
		if err := manager.Register(service.Prometheus, prom); err != nil {
			return nil, errors.Wrap(err, "cannot register prometheus")
		}
	}
	return manager, nil
}

func waitForSignal() {
	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigC
	utils.Logger().Info().Str("signal", sig.String()).Msg("Gracefully shutting down...")
	fmt.Printf("Got %s signal. Gracefully shutting down...\n", sig)
}
