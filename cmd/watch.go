package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/chinmay1088/chainboard/api"
	"github.com/chinmay1088/chainboard/dashboard"
	"github.com/chinmay1088/chainboard/metrics"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var (
	intervalFlag time.Duration
	countFlag    int
)

var watchCmd = &cobra.Command{
	Use:   "watch <address>",
	Short: "Refresh the overview of an address periodically",
	Long: `Refresh balance and transaction count of an address until interrupted.

With --metrics.address set, request counters and latencies are served
in Prometheus format on /metrics.

Examples:
  chainboard watch 0x1234...                          # Every 10 seconds
  chainboard watch 0x1234... --interval 1m --count 5  # Five refreshes
  chainboard watch 0x1234... --metrics.address :9100`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&intervalFlag, "interval", 10*time.Second, "Time between refreshes")
	watchCmd.Flags().IntVar(&countFlag, "count", 0, "Stop after this many refreshes (0 runs until interrupted)")
	watchCmd.Flags().Int32Var(&decimalsFlag, "decimals", 0, "Shift the balance by this many decimal places")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if intervalFlag <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if countFlag < 0 {
		return fmt.Errorf("count must not be negative")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var opts []api.Option
	if cfg.Metrics.Address != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		opts = append(opts, api.WithRecorder(metrics.NewMetrics(reg)))

		server := metrics.NewServer(cfg.Metrics.Address, reg)
		if err := server.Start(); err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer func() {
			if err := server.Stop(); err != nil {
				slog.Error("Failed to stop metrics server", "error", err.Error())
			}
		}()
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shell := newShell(cfg, opts...)
	fmt.Fprintf(cmd.OutOrStdout(), "👀 Watching %s every %v (Ctrl+C to stop)\n", args[0], intervalFlag)
	return watch(ctx, cmd.OutOrStdout(), shell, args[0], intervalFlag, countFlag, decimalsFlag)
}

// watch refreshes the overview every interval until ctx is done or count
// refreshes have run. A count of 0 means no limit.
func watch(ctx context.Context, out io.Writer, shell *dashboard.Shell, address string, interval time.Duration, count int, decimals int32) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 1; ; i++ {
		overview, err := shell.Overview(ctx, address, nil)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, summaryLine(time.Now(), overview, decimals))

		if count > 0 && i >= count {
			return nil
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "👋 Stopped watching")
			return nil
		case <-ticker.C:
		}
	}
}

func summaryLine(now time.Time, o *dashboard.Overview, decimals int32) string {
	balance := color.GreenString(dashboard.FormatUnits(o.Amount, decimals))
	if o.Balance.Err != nil {
		balance = color.RedString("error")
	}
	txs := fmt.Sprintf("%d", o.Count)
	if o.TxCount.Err != nil {
		txs = color.RedString("error")
	}

	line := fmt.Sprintf("[%s] 💰 %s  📜 %s  ⏱️ %v", now.Format(time.TimeOnly), balance, txs, o.Elapsed.Round(time.Millisecond))
	for _, p := range o.Failed() {
		slog.Warn("Panel failed", "panel", p.Name, "error", p.Err)
	}
	return line
}
