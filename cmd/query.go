package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/chinmay1088/chainboard/api"
	"github.com/chinmay1088/chainboard/config"
	"github.com/chinmay1088/chainboard/dashboard"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	pageFlag   int
	limitFlag  int
	paramFlags []string
	rawFlag    bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show node and chain information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, api.GetBlockchainInfo(), nil)
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts known to the node",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, api.GetAccounts(), nil)
	},
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List recent transactions with pagination",
	Long: `List recent transactions reported by the node.

When the node returns a list, it is paginated locally.

Examples:
  chainboard transactions                 # First 10 transactions
  chainboard transactions --page 2        # Next 10 transactions
  chainboard transactions --limit 5 --param address=0x1234...`,
	Aliases: []string{"txs"},
	Args:    cobra.NoArgs,
	RunE:    runTransactions,
}

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show the balance of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, api.GetBalance(args[0]), nil)
	},
}

var txCountCmd = &cobra.Command{
	Use:   "tx-count <address>",
	Short: "Show the transaction count of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuery(cmd, api.GetTransactionCount(args[0]), nil)
	},
}

var callCmd = &cobra.Command{
	Use:   "call <endpoint> [address]",
	Short: "Send a request to any endpoint",
	Long: `Send a request to a node endpoint with custom body params.

Endpoints: ` + strings.Join(api.Endpoints(), ", ") + `

Param values are parsed as JSON when possible and sent as strings otherwise.

Examples:
  chainboard call accounts
  chainboard call balance 0x1234...
  chainboard call transactions --param page=2 --param verbose=true`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCall,
}

func init() {
	transactionsCmd.Flags().IntVarP(&pageFlag, "page", "p", 1, "Page number")
	transactionsCmd.Flags().IntVarP(&limitFlag, "limit", "l", 10, "Transactions per page (1-100)")
	transactionsCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "Body param as key=value (repeatable)")
	callCmd.Flags().StringArrayVar(&paramFlags, "param", nil, "Body param as key=value (repeatable)")

	for _, c := range []*cobra.Command{infoCmd, accountsCmd, transactionsCmd, balanceCmd, txCountCmd, callCmd} {
		c.Flags().BoolVar(&rawFlag, "raw", false, "Print compact JSON only")
	}
}

func runCall(cmd *cobra.Command, args []string) error {
	address := ""
	if len(args) == 2 {
		address = args[1]
	}
	ep, err := api.ParseEndpoint(args[0], address)
	if err != nil {
		return err
	}

	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}
	return runQuery(cmd, ep, params)
}

func runTransactions(cmd *cobra.Command, args []string) error {
	offset, err := pageOffset(pageFlag, limitFlag)
	if err != nil {
		return err
	}

	params, err := parseParams(paramFlags)
	if err != nil {
		return err
	}

	resp, _, err := fetch(cmd, api.NewRequest(api.GetTransactions(), params))
	if err != nil {
		return err
	}

	value := resp.Value()
	if items, ok := value.AsArray(); ok {
		value = api.Array(applyPagination(items, offset, limitFlag)...)
		if !rawFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "📜 Transactions (page %d, %d per page, %d total)\n", pageFlag, limitFlag, len(items))
		}
	}
	return printValue(cmd.OutOrStdout(), value, rawFlag)
}

func runQuery(cmd *cobra.Command, ep api.Endpoint, params api.Params) error {
	resp, cfg, err := fetch(cmd, api.NewRequest(ep, params))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if rawFlag {
		return printValue(out, resp.Value(), true)
	}

	printHeader(out, ep, resp)
	if err := printValue(out, resp.Value(), false); err != nil {
		return err
	}
	if link := explorerLink(cfg.Chain.ExplorerURL, ep.Address()); link != "" {
		fmt.Fprintln(out, link)
	}
	return nil
}

// fetch loads the config, sends req and turns a failed response into an error.
func fetch(cmd *cobra.Command, req api.Request) (api.Response, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return api.Response{}, nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resp := newShell(cfg).Client().Send(ctx, req)
	if err := resp.Err(); err != nil {
		return resp, cfg, fmt.Errorf("failed to fetch %s: %w", req.Endpoint, err)
	}
	return resp, cfg, nil
}

func printHeader(out io.Writer, ep api.Endpoint, resp api.Response) {
	status := color.GreenString("%d", resp.StatusCode)
	if resp.StatusCode >= 400 {
		status = color.RedString("%d", resp.StatusCode)
	}
	fmt.Fprintf(out, "🔷 %s (HTTP %s)\n", color.CyanString(ep.String()), status)
}

func printValue(out io.Writer, v api.Value, raw bool) error {
	var (
		data []byte
		err  error
	)
	if raw {
		data, err = json.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// parseParams turns key=value pairs into body params. Values that parse as
// JSON keep their type; anything else is sent as a string.
func parseParams(pairs []string) (api.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	params := make(api.Params, len(pairs))
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid param %q, expected key=value", pair)
		}
		if v, err := api.ParseValue([]byte(raw)); err == nil {
			params[key] = v
		} else {
			params[key] = api.String(raw)
		}
	}
	return params, nil
}

// pageOffset validates page and limit and returns the index of the first item.
func pageOffset(page, limit int) (int, error) {
	if page < 1 {
		return 0, fmt.Errorf("page must be at least 1")
	}
	if limit < 1 || limit > 100 {
		return 0, fmt.Errorf("limit must be between 1 and 100")
	}
	if page-1 > math.MaxInt/limit {
		return 0, fmt.Errorf("page %d is out of range", page)
	}
	return (page - 1) * limit, nil
}

// applyPagination applies pagination to a slice of items
func applyPagination(items []api.Value, offset, limit int) []api.Value {
	if offset < 0 || offset >= len(items) {
		return []api.Value{}
	}

	end := offset + limit
	if limit < 0 || end < offset || end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}

// explorerLink formats an explorer URL for terminal output.
func explorerLink(explorer, address string) string {
	link := dashboard.ExplorerAddressURL(explorer, address)
	if link == "" {
		return ""
	}
	return fmt.Sprintf("💡 View on explorer: %s", color.BlueString(link))
}
