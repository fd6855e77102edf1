package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harmony-one/btcdash/bitcoind"
	"github.com/harmony-one/btcdash/internal/cli"
	"github.com/harmony-one/btcdash/internal/configs/btcdash"
)

// Environment variables holding the node connection, without the prefix.
const (
	nodeEnvPrefix   = "bitcoind"
	nodeEnvURL      = "url"
	nodeEnvUsername = "username"
	nodeEnvPassword = "password"
)

var dumpConfigCmd = &cobra.Command{
	Use:   "dumpconfig [config_file]",
	Short: "dump the default config file for btcdash binary configurations",
	Long:  "dump the default config file for btcdash binary configurations",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeBtcdashConfigToFile(getDefaultBtcdashConfigCopy(), args[0]); err != nil {
			fmt.Println(err)
			os.Exit(128)
		}
	},
}

func getBtcdashConfig(cmd *cobra.Command, args []string) (btcdash.BtcdashConfig, error) {
	var (
		config btcdash.BtcdashConfig
		err    error
	)
	if cli.IsFlagChanged(cmd, configFlag) {
		configFile := cli.GetStringFlagValue(cmd, configFlag)
		config, err = loadBtcdashConfig(configFile)
	} else {
		config = getDefaultBtcdashConfigCopy()
	}
	if err != nil {
		return btcdash.BtcdashConfig{}, err
	}

	applyHTTPFlags(cmd, &config)
	applyNodeFlags(cmd, &config)
	applyMarketFlags(cmd, &config)
	applyRateLimitFlags(cmd, &config)
	applyLogFlags(cmd, &config)
	applyPrometheusFlags(cmd, &config)
	// the positional port overrides everything else
	if err := applyPortArg(args, &config); err != nil {
		return btcdash.BtcdashConfig{}, err
	}

	if err := validateBtcdashConfig(config); err != nil {
		return btcdash.BtcdashConfig{}, err
	}
	return config, nil
}

func applyPortArg(args []string, config *btcdash.BtcdashConfig) error {
	if len(args) == 0 {
		return nil
	}
	port, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Errorf("invalid port argument %q", args[0])
	}
	config.HTTP.Port = port
	return nil
}

func validateBtcdashConfig(config btcdash.BtcdashConfig) error {
	if config.Version != tomlConfigVersion {
		return fmt.Errorf("unsupported config version %q, expect %q", config.Version, tomlConfigVersion)
	}
	if err := checkPort("--http.port", config.HTTP.Port); err != nil {
		return err
	}
	if config.Prometheus.Enabled {
		if err := checkPort("--prometheus.port", config.Prometheus.Port); err != nil {
			return err
		}
		if config.Prometheus.Port == config.HTTP.Port && config.Prometheus.IP == config.HTTP.IP {
			return fmt.Errorf("prometheus and http servers cannot share %v:%v", config.HTTP.IP, config.HTTP.Port)
		}
	}
	if config.Node.RequestsPerSecond < 0 {
		return fmt.Errorf("invalid --node.rps: %v", config.Node.RequestsPerSecond)
	}
	if config.RateLimit.Enabled && config.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid --ratelimit.rps: %v", config.RateLimit.RequestsPerSecond)
	}
	if len(config.HTTP.AllowedOrigins) == 0 {
		return errors.New("no allowed origins")
	}
	if _, err := config.ParseDurations(); err != nil {
		return err
	}
	if _, err := config.Log.RotateSizeMB(); err != nil {
		return err
	}
	return nil
}

func checkPort(flag string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port for %s: %v", flag, port)
	}
	return nil
}

// readNodeEnv reads the node connection from the BITCOIND_* environment
// variables. Every variable is required.
func readNodeEnv() (bitcoind.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(nodeEnvPrefix)
	keys := []string{nodeEnvURL, nodeEnvUsername, nodeEnvPassword}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return bitcoind.Config{}, err
		}
		if v.GetString(key) == "" {
			return bitcoind.Config{}, errors.Errorf("%v env variable not set", nodeEnvName(key))
		}
	}
	return bitcoind.Config{
		URL:      v.GetString(nodeEnvURL),
		Username: v.GetString(nodeEnvUsername),
		Password: v.GetString(nodeEnvPassword),
	}, nil
}

func nodeEnvName(key string) string {
	return strings.ToUpper(nodeEnvPrefix + "_" + key)
}

func loadBtcdashConfig(file string) (btcdash.BtcdashConfig, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return btcdash.BtcdashConfig{}, err
	}

	var config btcdash.BtcdashConfig
	if err := toml.Unmarshal(b, &config); err != nil {
		return btcdash.BtcdashConfig{}, errors.Wrapf(err, "cannot parse config %v", file)
	}
	return config, nil
}

func writeBtcdashConfigToFile(config btcdash.BtcdashConfig, file string) error {
	b, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(file, b, 0644)
}
