package api

import (
	"fmt"
	"strings"
)

// EndpointKind identifies one of the node API operations.
type EndpointKind int

const (
	KindBlockchainInfo EndpointKind = iota
	KindAccounts
	KindTransactions
	KindBalance
	KindTransactionCount
)

// API paths
const (
	PathBlockchainInfo   = "/api/blockchain/info"
	PathAccounts         = "/api/accounts"
	PathTransactions     = "/api/transactions"
	PathBalance          = "/api/balance/"
	PathTransactionCount = "/api/transaction-count/"
)

var endpointNames = map[EndpointKind]string{
	KindBlockchainInfo:   "blockchain-info",
	KindAccounts:         "accounts",
	KindTransactions:     "transactions",
	KindBalance:          "balance",
	KindTransactionCount: "transaction-count",
}

// Endpoint is a single node API operation. The zero value is GetBlockchainInfo.
type Endpoint struct {
	kind    EndpointKind
	address string
}

// GetBlockchainInfo returns the node info endpoint.
func GetBlockchainInfo() Endpoint { return Endpoint{kind: KindBlockchainInfo} }

// GetAccounts returns the account list endpoint.
func GetAccounts() Endpoint { return Endpoint{kind: KindAccounts} }

// GetTransactions returns the transaction list endpoint.
func GetTransactions() Endpoint { return Endpoint{kind: KindTransactions} }

// GetBalance returns the balance endpoint for address.
func GetBalance(address string) Endpoint {
	return Endpoint{kind: KindBalance, address: address}
}

// GetTransactionCount returns the transaction count endpoint for address.
func GetTransactionCount(address string) Endpoint {
	return Endpoint{kind: KindTransactionCount, address: address}
}

// Kind returns the endpoint variant.
func (e Endpoint) Kind() EndpointKind { return e.kind }

// Address returns the address of a parameterized endpoint, or "" for the others.
func (e Endpoint) Address() string { return e.address }

// Name returns a stable label for the endpoint, used in logs and metrics.
func (e Endpoint) Name() string {
	if name, ok := endpointNames[e.kind]; ok {
		return name
	}
	return "unknown"
}

// Path returns the URL path of the endpoint. The address is inserted as is,
// without escaping, so "a/b" yields two path segments.
func (e Endpoint) Path() string {
	switch e.kind {
	case KindAccounts:
		return PathAccounts
	case KindTransactions:
		return PathTransactions
	case KindBalance:
		return PathBalance + e.address
	case KindTransactionCount:
		return PathTransactionCount + e.address
	default:
		return PathBlockchainInfo
	}
}

func (e Endpoint) String() string {
	if e.address == "" {
		return e.Name()
	}
	return e.Name() + "(" + e.address + ")"
}

// NeedsAddress reports whether the endpoint takes an address.
func (e Endpoint) NeedsAddress() bool {
	return e.kind == KindBalance || e.kind == KindTransactionCount
}

// Endpoints lists the endpoint names accepted by ParseEndpoint.
func Endpoints() []string {
	return []string{
		endpointNames[KindBlockchainInfo],
		endpointNames[KindAccounts],
		endpointNames[KindTransactions],
		endpointNames[KindBalance],
		endpointNames[KindTransactionCount],
	}
}

// ParseEndpoint resolves an endpoint by name. Parameterized endpoints require a
// non-empty address; the others reject one.
func ParseEndpoint(name, address string) (Endpoint, error) {
	var ep Endpoint
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "blockchain-info", "info":
		ep = GetBlockchainInfo()
	case "accounts":
		ep = GetAccounts()
	case "transactions", "txs":
		ep = GetTransactions()
	case "balance":
		ep = GetBalance(address)
	case "transaction-count", "tx-count":
		ep = GetTransactionCount(address)
	default:
		return Endpoint{}, fmt.Errorf("unknown endpoint: %s. Supported endpoints: %s", name, strings.Join(Endpoints(), ", "))
	}

	if ep.NeedsAddress() && address == "" {
		return Endpoint{}, fmt.Errorf("endpoint %s requires an address", ep.Name())
	}
	if !ep.NeedsAddress() && address != "" {
		return Endpoint{}, fmt.Errorf("endpoint %s does not take an address", ep.Name())
	}
	return ep, nil
}
