package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chinmay1088/chainboard/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T, handler http.HandlerFunc) *Shell {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewShell(api.BlockchainConfig{
		RPCURL:      server.URL,
		ChainID:     1,
		ExplorerURL: "https://etherscan.io",
	})
}

func TestShell(t *testing.T) {
	cfg := api.DefaultConfig()
	shell := NewShell(cfg)

	assert.Equal(t, RootScreenID, shell.Root().ID)
	assert.NotNil(t, shell.Client())
	assert.Equal(t, cfg, shell.Config())
	assert.Equal(t, cfg, shell.Client().Config())
}

func TestShell_Overview(t *testing.T) {
	shell := newTestShell(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/blockchain/info":
			fmt.Fprint(w, `{"height":100,"network":"mainnet"}`)
		case "/api/balance/0xabc":
			fmt.Fprint(w, `{"balance":"42"}`)
		case "/api/transaction-count/0xabc":
			fmt.Fprint(w, `{"count":"0x3"}`)
		default:
			http.NotFound(w, r)
		}
	})

	var done atomic.Int32
	overview, err := shell.Overview(context.Background(), "0xabc", func(string) { done.Add(1) })
	require.NoError(t, err)

	assert.Empty(t, overview.Failed())
	assert.Equal(t, int32(3), done.Load())
	assert.Equal(t, "42", overview.Amount.String())
	assert.Equal(t, uint64(3), overview.Count)
	assert.Equal(t, int64(1), overview.ChainID)
	assert.Equal(t, "https://etherscan.io/address/0xabc", overview.ExplorerURL)
	assert.Equal(t, `"mainnet"`, overview.Info.Raw.Get("network").String())
	assert.Equal(t, PanelInfo, overview.Info.Name)
}

func TestShell_OverviewPartialFailure(t *testing.T) {
	shell := newTestShell(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/blockchain/info":
			fmt.Fprint(w, "not json")
		case "/api/balance/0xabc":
			fmt.Fprint(w, `{"balance":true}`)
		case "/api/transaction-count/0xabc":
			fmt.Fprint(w, `{"count":12}`)
		}
	})

	overview, err := shell.Overview(context.Background(), "0xabc", nil)
	require.NoError(t, err)

	failed := overview.Failed()
	require.Len(t, failed, 2)
	assert.ErrorIs(t, overview.Info.Err, api.ErrDecode)
	assert.ErrorContains(t, overview.Balance.Err, "failed to parse balance")
	assert.NoError(t, overview.TxCount.Err)
	assert.Equal(t, uint64(12), overview.Count)
}

func TestShell_OverviewFailedPanelDoesNotCancelOthers(t *testing.T) {
	shell := newTestShell(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/blockchain/info":
			// empty body
		case "/api/balance/0xabc":
			time.Sleep(50 * time.Millisecond)
			fmt.Fprint(w, `{"balance":"7"}`)
		case "/api/transaction-count/0xabc":
			time.Sleep(50 * time.Millisecond)
			fmt.Fprint(w, `{"count":1}`)
		}
	})

	var done atomic.Int32
	overview, err := shell.Overview(context.Background(), "0xabc", func(string) { done.Add(1) })
	require.NoError(t, err)

	assert.Equal(t, int32(3), done.Load())
	assert.ErrorIs(t, overview.Info.Err, api.ErrNoData)
	require.NoError(t, overview.Balance.Err)
	require.NoError(t, overview.TxCount.Err)
	assert.Equal(t, "7", overview.Amount.String())
	assert.Equal(t, uint64(1), overview.Count)
}

func TestShell_OverviewRequiresAddress(t *testing.T) {
	shell := NewShell(api.DefaultConfig())
	_, err := shell.Overview(context.Background(), "", nil)
	assert.Error(t, err)
}
