package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/chinmay1088/chainboard/api"
	"github.com/chinmay1088/chainboard/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network [mainnet|testnet]",
	Short: "Show or change network",
	Long: `Show the current network or switch between mainnet and testnet.

The choice is saved in the state directory and used by later runs.
--network and the chain.* flags still take precedence.

Examples:
  chainboard network            # Show current network
  chainboard network mainnet    # Switch to mainnet
  chainboard network testnet    # Switch to testnet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNetwork,
}

func runNetwork(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	// If no arguments provided, show current network
	if len(args) == 0 {
		showNetwork(out, cfg.Network, cfg.Chain)
		return nil
	}

	network := strings.ToLower(args[0])
	if _, ok := config.Preset(network); !ok {
		return fmt.Errorf("invalid network: %s. Use 'mainnet' or 'testnet'", network)
	}

	if err := config.WriteNetwork(cfg.StateDir, network); err != nil {
		return err
	}

	fmt.Fprintf(out, "🌐 Switched to %s network\n", strings.ToUpper(network))
	preset, _ := config.Preset(network)
	fmt.Fprintln(out)
	printChain(out, preset)
	if network == config.NetworkTestnet {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "⚠️  You are now on TESTNET mode")
	} else {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "✅ You are now on MAINNET mode")
	}
	return nil
}

func showNetwork(out io.Writer, network string, chain api.BlockchainConfig) {
	fmt.Fprintf(out, "🌐 Current network: %s\n", networkLabel(network))
	fmt.Fprintln(out)
	printChain(out, chain)
}

func printChain(out io.Writer, chain api.BlockchainConfig) {
	fmt.Fprintln(out, "Network details:")
	fmt.Fprintf(out, "   - Node API: %s\n", chain.RPCURL)
	fmt.Fprintf(out, "   - Chain ID: %d\n", chain.ChainID)
	if chain.ExplorerURL != "" {
		fmt.Fprintf(out, "   - Explorer: %s\n", chain.ExplorerURL)
	} else {
		fmt.Fprintf(out, "   - Explorer: %s\n", color.RedString("Not configured"))
	}
}
