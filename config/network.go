package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chinmay1088/chainboard/api"
)

// Network names
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

const networkFile = "network.txt"

var presets = map[string]api.BlockchainConfig{
	NetworkMainnet: api.DefaultConfig(),
	NetworkTestnet: {
		RPCURL:      "https://ethereum-sepolia.publicnode.com",
		ChainID:     11155111,
		ExplorerURL: "https://sepolia.etherscan.io",
	},
}

// Preset returns the built-in chain settings for network.
func Preset(network string) (api.BlockchainConfig, bool) {
	cfg, ok := presets[network]
	return cfg, ok
}

// DefaultStateDir returns ~/.chainboard.
func DefaultStateDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".chainboard"), nil
}

// ReadNetwork returns the network saved in dir. A missing or invalid file
// means mainnet.
func ReadNetwork(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, networkFile))
	if err != nil {
		return NetworkMainnet
	}

	network := strings.TrimSpace(string(data))
	if _, ok := presets[network]; !ok {
		return NetworkMainnet
	}
	return network
}

// WriteNetwork saves network in dir so later runs pick it up.
func WriteNetwork(dir, network string) error {
	if _, ok := presets[network]; !ok {
		return fmt.Errorf("invalid network: %s. Use 'mainnet' or 'testnet'", network)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, networkFile), []byte(network), 0600); err != nil {
		return fmt.Errorf("failed to write network file: %w", err)
	}
	return nil
}
