package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chinmay1088/chainboard/api"
	"github.com/chinmay1088/chainboard/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	config.RegisterFlags(cmd)
	return cmd
}

func load(t *testing.T, args ...string) *config.Config {
	t.Helper()
	cmd := newCommand()
	base := []string{"--state_dir", t.TempDir(), "--config", ""}
	require.NoError(t, cmd.ParseFlags(append(base, args...)))
	cfg, err := config.LoadConfig(cmd)
	require.NoError(t, err)
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := load(t)

	assert.Equal(t, config.NetworkMainnet, cfg.Network)
	assert.Equal(t, api.DefaultConfig(), cfg.Chain)
	assert.Equal(t, api.DefaultTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, 0, cfg.HTTP.Retries)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestTestnetPreset(t *testing.T) {
	cfg := load(t, "--network", "testnet")

	preset, ok := config.Preset(config.NetworkTestnet)
	require.True(t, ok)
	assert.Equal(t, preset, cfg.Chain)
	assert.Equal(t, int64(11155111), cfg.Chain.ChainID)
}

func TestFlagsOverridePreset(t *testing.T) {
	cfg := load(t,
		"--chain.rpc_url", "http://localhost:8545",
		"--chain.chain_id", "1337",
		"--http.timeout", "5s",
		"--http.retries", "2",
		"--log.level", "debug",
	)

	assert.Equal(t, "http://localhost:8545", cfg.Chain.RPCURL)
	assert.Equal(t, int64(1337), cfg.Chain.ChainID)
	assert.Equal(t, api.DefaultExplorerURL, cfg.Chain.ExplorerURL)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 2, cfg.HTTP.Retries)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "DEBUG", cfg.LogLevel().String())
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chainboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
network: testnet
chain:
  rpc_url: http://node.internal:8080
http:
  timeout: 2s
  retries: 1
log:
  level: warn
metrics:
  address: 127.0.0.1:9100
`), 0600))

	cfg := load(t, "--config", path)

	assert.Equal(t, config.NetworkTestnet, cfg.Network)
	assert.Equal(t, "http://node.internal:8080", cfg.Chain.RPCURL)
	assert.Equal(t, int64(11155111), cfg.Chain.ChainID)
	assert.Equal(t, 2*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 1, cfg.HTTP.Retries)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Address)
	assert.NoError(t, cfg.Validate())
}

func TestMissingConfigFileIsIgnored(t *testing.T) {
	cfg := load(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, api.DefaultRPCURL, cfg.Chain.RPCURL)
}

func TestBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chain: [unclosed"), 0600))

	cmd := newCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--state_dir", t.TempDir(), "--config", path}))
	_, err := config.LoadConfig(cmd)
	assert.ErrorContains(t, err, "failed to unmarshal config")
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chainboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chain:\n  rpc_url: http://from-file\n"), 0600))

	t.Setenv("CHAIN__RPC_URL", "http://from-env")
	t.Setenv("HTTP__RETRIES", "4")

	cfg := load(t, "--config", path)
	assert.Equal(t, "http://from-env", cfg.Chain.RPCURL)
	assert.Equal(t, 4, cfg.HTTP.Retries)
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("CHAIN__CHAIN_ID", "5")
	cfg := load(t, "--chain.chain_id", "10")
	assert.Equal(t, int64(10), cfg.Chain.ChainID)
}

func TestBadEnv(t *testing.T) {
	t.Setenv("HTTP__TIMEOUT", "soon")

	cmd := newCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--state_dir", t.TempDir(), "--config", ""}))
	_, err := config.LoadConfig(cmd)
	assert.ErrorContains(t, err, "failed to load env")
}

func TestSavedNetwork(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.WriteNetwork(dir, config.NetworkTestnet))

	cmd := newCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--state_dir", dir, "--config", ""}))
	cfg, err := config.LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, config.NetworkTestnet, cfg.Network)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown network", []string{"--network", "devnet"}, config.ErrNetworkUnknown},
		{"negative chain id", []string{"--chain.chain_id", "-1"}, config.ErrChainIDInvalid},
		{"negative timeout", []string{"--http.timeout", "-1s"}, config.ErrTimeoutInvalid},
		{"negative retries", []string{"--http.retries", "-2"}, config.ErrRetriesInvalid},
		{"bad log level", []string{"--log.level", "loud"}, config.ErrLogLevelInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := load(t, tt.args...)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "CHAIN__RPC_URL", config.EnvName(config.ChainRPCURLKey))
	assert.Equal(t, "STATE_DIR", config.EnvName(config.StateDirKey))
	assert.Equal(t, "METRICS__ADDRESS", config.EnvName(config.MetricsAddressKey))
}
