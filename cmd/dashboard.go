package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chinmay1088/chainboard/dashboard"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var decimalsFlag int32

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <address>",
	Short: "Show an overview of an address",
	Long: `Fetch node info, balance and transaction count of an address in parallel
and show them together.

Examples:
  chainboard dashboard 0x1234...                # Raw balance
  chainboard dashboard 0x1234... --decimals 18  # Balance in ether`,
	Aliases: []string{"dash"},
	Args:    cobra.ExactArgs(1),
	RunE:    runDashboard,
}

func init() {
	dashboardCmd.Flags().Int32Var(&decimalsFlag, "decimals", 0, "Shift the balance by this many decimal places")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	shell := newShell(cfg)
	out := cmd.OutOrStdout()

	var progress dashboard.ProgressFunc
	if isTerminal(os.Stdout) {
		bar := progressbar.NewOptions(3,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription("[cyan]Loading dashboard...[reset]"),
		)
		defer bar.Finish()
		progress = func(string) { _ = bar.Add(1) }
	}

	overview, err := shell.Overview(cmd.Context(), args[0], progress)
	if err != nil {
		return err
	}

	renderOverview(out, cfg.Network, overview, decimalsFlag)
	return nil
}

// renderOverview prints one line per panel, failed panels included.
func renderOverview(out io.Writer, network string, o *dashboard.Overview, decimals int32) {
	fmt.Fprintln(out, "📊 Dashboard")
	fmt.Fprintf(out, "🌐 Network: %s (chain %d)\n", networkLabel(network), o.ChainID)
	fmt.Fprintf(out, "📍 Address: %s\n", o.Address)
	fmt.Fprintln(out)

	if o.Info.Err != nil {
		fmt.Fprintf(out, "❌ Node info: Error - %v\n", o.Info.Err)
	} else {
		fmt.Fprintf(out, "🔷 Node info: %s\n", o.Info.Raw.String())
	}

	if o.Balance.Err != nil {
		fmt.Fprintf(out, "❌ Balance: Error - %v\n", o.Balance.Err)
	} else {
		fmt.Fprintf(out, "💰 Balance: %s\n", color.GreenString(dashboard.FormatUnits(o.Amount, decimals)))
	}

	if o.TxCount.Err != nil {
		fmt.Fprintf(out, "❌ Transactions: Error - %v\n", o.TxCount.Err)
	} else {
		fmt.Fprintf(out, "📜 Transactions: %d\n", o.Count)
	}

	if o.ExplorerURL != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "💡 View on explorer: %s\n", color.BlueString(o.ExplorerURL))
	}
	fmt.Fprintf(out, "⏱️ Loaded in %v\n", o.Elapsed.Round(time.Millisecond*10))
}

func networkLabel(network string) string {
	switch network {
	case "testnet":
		return color.YellowString("Testnet")
	default:
		return color.GreenString("Mainnet")
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
