package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chinmay1088/chainboard/api"
	"github.com/chinmay1088/chainboard/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreset(t *testing.T) {
	mainnet, ok := config.Preset(config.NetworkMainnet)
	require.True(t, ok)
	assert.Equal(t, api.DefaultConfig(), mainnet)

	_, ok = config.Preset("devnet")
	assert.False(t, ok)
}

func TestReadNetwork(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, config.NetworkMainnet, config.ReadNetwork(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "network.txt"), []byte("garbage\n"), 0600))
	assert.Equal(t, config.NetworkMainnet, config.ReadNetwork(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "network.txt"), []byte("testnet\n"), 0600))
	assert.Equal(t, config.NetworkTestnet, config.ReadNetwork(dir))
}

func TestWriteNetwork(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	require.NoError(t, config.WriteNetwork(dir, config.NetworkTestnet))

	info, err := os.Stat(filepath.Join(dir, "network.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	assert.Equal(t, config.NetworkTestnet, config.ReadNetwork(dir))

	assert.Error(t, config.WriteNetwork(dir, "devnet"))
	assert.Equal(t, config.NetworkTestnet, config.ReadNetwork(dir))
}
