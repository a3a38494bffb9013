package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chinmay1088/chainboard/api"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Network  string               `json:"network"`
	StateDir string               `json:"state_dir" yaml:"state_dir"`
	Chain    api.BlockchainConfig `json:"chain"`
	HTTP     HTTP                 `json:"http"`
	Log      Log                  `json:"log"`
	Metrics  Metrics              `json:"metrics"`
}

type HTTP struct {
	Timeout time.Duration `json:"timeout"`
	Retries int           `json:"retries"`
}

type Log struct {
	Level string `json:"level"`
}

type Metrics struct {
	Address string `json:"address"`
}

//nolint:golint,gochecknoglobals
var (
	ConfigFileKey       = "config"
	NetworkKey          = "network"
	StateDirKey         = "state_dir"
	ChainRPCURLKey      = "chain.rpc_url"
	ChainIDKey          = "chain.chain_id"
	ChainExplorerURLKey = "chain.explorer_url"
	HTTPTimeoutKey      = "http.timeout"
	HTTPRetriesKey      = "http.retries"
	LogLevelKey         = "log.level"
	MetricsAddressKey   = "metrics.address"
)

const (
	DefaultConfigPath  = "chainboard.yaml"
	DefaultHTTPTimeout = api.DefaultTimeout
	DefaultLogLevel    = "info"
)

// RegisterFlags adds the configuration flags to cmd and all its subcommands.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP(ConfigFileKey, "c", DefaultConfigPath, "Config file path")
	flags.String(NetworkKey, "", "Network preset (mainnet or testnet)")
	flags.String(StateDirKey, "", "Directory for saved settings (default ~/.chainboard)")
	flags.String(ChainRPCURLKey, "", "Node API base URL")
	flags.Int64(ChainIDKey, 0, "Chain ID")
	flags.String(ChainExplorerURLKey, "", "Block explorer URL")
	flags.Duration(HTTPTimeoutKey, DefaultHTTPTimeout, "HTTP request timeout")
	flags.Int(HTTPRetriesKey, 0, "Retries on transport failure")
	flags.String(LogLevelKey, DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.String(MetricsAddressKey, "", "Serve Prometheus metrics on this address (watch only)")
}

var (
	ErrNetworkUnknown  = errors.New("Unknown network")
	ErrChainIDInvalid  = errors.New("Chain ID must be positive")
	ErrTimeoutInvalid  = errors.New("HTTP timeout must not be negative")
	ErrRetriesInvalid  = errors.New("HTTP retries must not be negative")
	ErrLogLevelInvalid = errors.New("Invalid log level")
)

func (c *Config) Validate() error {
	if _, ok := presets[c.Network]; !ok {
		return ErrNetworkUnknown
	}
	if c.Chain.ChainID <= 0 {
		return ErrChainIDInvalid
	}
	if c.HTTP.Timeout < 0 {
		return ErrTimeoutInvalid
	}
	if c.HTTP.Retries < 0 {
		return ErrRetriesInvalid
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return ErrLogLevelInvalid
	}

	return nil
}

// LogLevel returns the configured slog level, or info when it does not parse.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// EnvName returns the environment variable read for a flag, e.g. CHAIN__RPC_URL.
func EnvName(flag string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.ToUpper(flag), "-", "_"), ".", "__")
}

func LoadConfig(cmd *cobra.Command) (*Config, error) {
	var config Config

	// Load flags from envs
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if ctx.Err() != nil {
			return
		}
		if val, ok := os.LookupEnv(EnvName(f.Name)); !f.Changed && ok {
			if err := f.Value.Set(val); err != nil {
				cancel(err)
			}
			f.Changed = true
		}
	})
	if ctx.Err() != nil {
		return &config, fmt.Errorf("failed to load env: %w", context.Cause(ctx))
	}

	configPath, err := cmd.Flags().GetString(ConfigFileKey)
	if err != nil {
		return &config, fmt.Errorf("failed to get config path: %w", err)
	}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return &config, fmt.Errorf("failed to read config: %w", err)
		} else if err == nil {
			if err := yaml.Unmarshal(data, &config); err != nil {
				return &config, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	err = overrideFlags(&config, cmd)
	if err != nil {
		return &config, fmt.Errorf("failed to override flags: %w", err)
	}

	// Defaults
	if config.StateDir == "" {
		config.StateDir, err = DefaultStateDir()
		if err != nil {
			return &config, err
		}
	}
	if config.Network == "" {
		config.Network = ReadNetwork(config.StateDir)
	}
	config.Network = strings.ToLower(config.Network)
	if preset, ok := Preset(config.Network); ok {
		if config.Chain.RPCURL == "" {
			config.Chain.RPCURL = preset.RPCURL
		}
		if config.Chain.ChainID == 0 {
			config.Chain.ChainID = preset.ChainID
		}
		if config.Chain.ExplorerURL == "" {
			config.Chain.ExplorerURL = preset.ExplorerURL
		}
	}
	if config.HTTP.Timeout == 0 {
		config.HTTP.Timeout = DefaultHTTPTimeout
	}
	if config.Log.Level == "" {
		config.Log.Level = DefaultLogLevel
	}

	return &config, nil
}

func overrideFlags(config *Config, cmd *cobra.Command) error {
	var err error
	if cmd.Flags().Changed(NetworkKey) {
		config.Network, err = cmd.Flags().GetString(NetworkKey)
		if err != nil {
			return fmt.Errorf("failed to get network: %w", err)
		}
	}

	if cmd.Flags().Changed(StateDirKey) {
		config.StateDir, err = cmd.Flags().GetString(StateDirKey)
		if err != nil {
			return fmt.Errorf("failed to get state directory: %w", err)
		}
	}

	if cmd.Flags().Changed(ChainRPCURLKey) {
		config.Chain.RPCURL, err = cmd.Flags().GetString(ChainRPCURLKey)
		if err != nil {
			return fmt.Errorf("failed to get RPC URL: %w", err)
		}
	}

	if cmd.Flags().Changed(ChainIDKey) {
		config.Chain.ChainID, err = cmd.Flags().GetInt64(ChainIDKey)
		if err != nil {
			return fmt.Errorf("failed to get chain ID: %w", err)
		}
	}

	if cmd.Flags().Changed(ChainExplorerURLKey) {
		config.Chain.ExplorerURL, err = cmd.Flags().GetString(ChainExplorerURLKey)
		if err != nil {
			return fmt.Errorf("failed to get explorer URL: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPTimeoutKey) {
		config.HTTP.Timeout, err = cmd.Flags().GetDuration(HTTPTimeoutKey)
		if err != nil {
			return fmt.Errorf("failed to get HTTP timeout: %w", err)
		}
	}

	if cmd.Flags().Changed(HTTPRetriesKey) {
		config.HTTP.Retries, err = cmd.Flags().GetInt(HTTPRetriesKey)
		if err != nil {
			return fmt.Errorf("failed to get HTTP retries: %w", err)
		}
	}

	if cmd.Flags().Changed(LogLevelKey) {
		config.Log.Level, err = cmd.Flags().GetString(LogLevelKey)
		if err != nil {
			return fmt.Errorf("failed to get log level: %w", err)
		}
	}

	if cmd.Flags().Changed(MetricsAddressKey) {
		config.Metrics.Address, err = cmd.Flags().GetString(MetricsAddressKey)
		if err != nil {
			return fmt.Errorf("failed to get metrics address: %w", err)
		}
	}

	return nil
}
