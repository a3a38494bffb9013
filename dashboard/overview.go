package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chinmay1088/chainboard/api"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Panel names, in display order.
const (
	PanelInfo    = "info"
	PanelBalance = "balance"
	PanelTxCount = "transaction-count"
)

// Panel is one section of the overview. Err is set when the panel could not
// be filled; the other panels are unaffected.
type Panel struct {
	Name       string
	Raw        api.Value
	StatusCode int
	Err        error
}

// Overview is a snapshot of one address.
type Overview struct {
	Address     string
	ExplorerURL string
	ChainID     int64

	Info    Panel
	Balance Panel
	TxCount Panel

	Amount decimal.Decimal
	Count  uint64

	Elapsed time.Duration
}

// Failed returns the panels that carry an error.
func (o *Overview) Failed() []Panel {
	var failed []Panel
	for _, p := range []Panel{o.Info, o.Balance, o.TxCount} {
		if p.Err != nil {
			failed = append(failed, p)
		}
	}
	return failed
}

// ProgressFunc is called once per finished panel. It may be called from
// several goroutines at once.
type ProgressFunc func(panel string)

// Overview fetches node info, balance and transaction count for address in
// parallel. Failures are recorded per panel.
func (s *Shell) Overview(ctx context.Context, address string, progress ProgressFunc) (*Overview, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	cfg := s.client.Config()
	overview := &Overview{
		Address:     address,
		ExplorerURL: ExplorerAddressURL(cfg.ExplorerURL, address),
		ChainID:     cfg.ChainID,
	}

	var (
		g  errgroup.Group
		mu sync.Mutex
	)
	start := time.Now()

	fetch := func(name string, ep api.Endpoint, apply func(*Overview, api.Response)) {
		g.Go(func() error {
			resp := s.client.Send(ctx, api.NewRequest(ep, nil))

			mu.Lock()
			apply(overview, resp)
			mu.Unlock()

			if progress != nil {
				progress(name)
			}
			return nil
		})
	}

	fetch(PanelInfo, api.GetBlockchainInfo(), func(o *Overview, resp api.Response) {
		o.Info = panelFrom(PanelInfo, resp)
	})
	fetch(PanelBalance, api.GetBalance(address), func(o *Overview, resp api.Response) {
		o.Balance = panelFrom(PanelBalance, resp)
		if o.Balance.Err != nil {
			return
		}
		amount, err := BalanceFrom(o.Balance.Raw)
		if err != nil {
			o.Balance.Err = fmt.Errorf("failed to parse balance: %w", err)
			return
		}
		o.Amount = amount
	})
	fetch(PanelTxCount, api.GetTransactionCount(address), func(o *Overview, resp api.Response) {
		o.TxCount = panelFrom(PanelTxCount, resp)
		if o.TxCount.Err != nil {
			return
		}
		count, err := CountFrom(o.TxCount.Raw)
		if err != nil {
			o.TxCount.Err = fmt.Errorf("failed to parse transaction count: %w", err)
			return
		}
		o.Count = count
	})

	// Fetches never fail the group. Errors stay on their panel.
	g.Wait()
	overview.Elapsed = time.Since(start)
	return overview, nil
}

func panelFrom(name string, resp api.Response) Panel {
	return Panel{
		Name:       name,
		Raw:        resp.Value(),
		StatusCode: resp.StatusCode,
		Err:        resp.Err(),
	}
}
