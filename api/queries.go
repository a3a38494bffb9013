package api

import "context"

// BlockchainInfo fetches node and chain information.
func (c *Client) BlockchainInfo(ctx context.Context) Response {
	return c.Send(ctx, NewRequest(GetBlockchainInfo(), nil))
}

// Accounts fetches the account list known to the node.
func (c *Client) Accounts(ctx context.Context) Response {
	return c.Send(ctx, NewRequest(GetAccounts(), nil))
}

// Transactions fetches recent transactions. params are passed through to the node.
func (c *Client) Transactions(ctx context.Context, params Params) Response {
	return c.Send(ctx, NewRequest(GetTransactions(), params))
}

// Balance fetches the balance of address.
func (c *Client) Balance(ctx context.Context, address string) Response {
	return c.Send(ctx, NewRequest(GetBalance(address), nil))
}

// TransactionCount fetches the number of transactions sent from address.
func (c *Client) TransactionCount(ctx context.Context, address string) Response {
	return c.Send(ctx, NewRequest(GetTransactionCount(address), nil))
}
