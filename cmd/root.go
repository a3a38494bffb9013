package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chinmay1088/chainboard/api"
	"github.com/chinmay1088/chainboard/config"
	"github.com/chinmay1088/chainboard/dashboard"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "chainboard",
	Aliases: []string{"cb"},
	Short:   "A command-line dashboard for blockchain node APIs",
	Long: `Chainboard queries a blockchain node's HTTP API and shows balances,
transactions, accounts and node information.

Features:
  • Node info, account and transaction listings
  • Balance and transaction count per address
  • Parallel overview dashboard with explorer links
  • Watch mode with Prometheus metrics
  • Mainnet and Testnet presets

Configuration is read from flags, environment variables (CHAIN__RPC_URL, ...)
and an optional YAML file (chainboard.yaml).

Examples:
  chainboard info                          # Show node information
  chainboard balance 0x1234...             # Show the balance of an address
  chainboard dashboard 0x1234...           # Overview of an address
  chainboard call transactions --param page=2
  chainboard network testnet               # Switch to testnet mode`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	config.RegisterFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(txCountCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Chainboard v%s\n", version)
	},
}

// setupLogging installs the default slog handler before any command runs.
func setupLogging(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level := cfg.LogLevel()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("chainboard", "version", version, "network", cfg.Network, "rpc_url", cfg.Chain.RPCURL)
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newShell builds the dashboard shell for cfg.
func newShell(cfg *config.Config, opts ...api.Option) *dashboard.Shell {
	opts = append([]api.Option{
		api.WithTimeout(cfg.HTTP.Timeout),
		api.WithMaxRetries(cfg.HTTP.Retries),
		api.WithLogger(slog.Default()),
	}, opts...)
	return dashboard.NewShell(cfg.Chain, opts...)
}
