package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointPath(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
		want     string
	}{
		{"info", GetBlockchainInfo(), "/api/blockchain/info"},
		{"accounts", GetAccounts(), "/api/accounts"},
		{"transactions", GetTransactions(), "/api/transactions"},
		{"balance", GetBalance("0xabc"), "/api/balance/0xabc"},
		{"tx count", GetTransactionCount("0xabc"), "/api/transaction-count/0xabc"},
		{"zero value", Endpoint{}, "/api/blockchain/info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.endpoint.Path())
		})
	}
}

func TestEndpointPathKeepsAddressVerbatim(t *testing.T) {
	addresses := []string{
		"0x52908400098527886E0F7030069857D2E4169EE7",
		"a/b",
		"with space",
		"100%",
		"x?y=1",
	}

	for _, addr := range addresses {
		assert.Equal(t, "/api/balance/"+addr, GetBalance(addr).Path())
		assert.Equal(t, "/api/transaction-count/"+addr, GetTransactionCount(addr).Path())
	}
}

func TestEndpointName(t *testing.T) {
	assert.Equal(t, "blockchain-info", GetBlockchainInfo().Name())
	assert.Equal(t, "balance", GetBalance("0x1").Name())
	assert.Equal(t, "balance(0x1)", GetBalance("0x1").String())
	assert.Equal(t, "accounts", GetAccounts().String())
	assert.Equal(t, "unknown", Endpoint{kind: EndpointKind(42)}.Name())
}

func TestParseEndpoint(t *testing.T) {
	ep, err := ParseEndpoint("balance", "0xabc")
	require.NoError(t, err)
	assert.Equal(t, GetBalance("0xabc"), ep)

	ep, err = ParseEndpoint("TX-COUNT", "0xabc")
	require.NoError(t, err)
	assert.Equal(t, GetTransactionCount("0xabc"), ep)

	ep, err = ParseEndpoint("info", "")
	require.NoError(t, err)
	assert.Equal(t, GetBlockchainInfo(), ep)

	for _, name := range Endpoints() {
		addr := ""
		if name == "balance" || name == "transaction-count" {
			addr = "0x1"
		}
		ep, err := ParseEndpoint(name, addr)
		require.NoError(t, err, name)
		assert.Equal(t, name, ep.Name())
	}
}

func TestParseEndpointErrors(t *testing.T) {
	_, err := ParseEndpoint("blocks", "")
	assert.ErrorContains(t, err, "unknown endpoint")

	_, err = ParseEndpoint("balance", "")
	assert.ErrorContains(t, err, "requires an address")

	_, err = ParseEndpoint("accounts", "0x1")
	assert.ErrorContains(t, err, "does not take an address")
}
