package api

// Default network values used when nothing else is configured.
const (
	DefaultRPCURL      = "https://mainnetrpc.com"
	DefaultChainID     = 1
	DefaultExplorerURL = "https://etherscan.io"
)

// BlockchainConfig describes the node a Client talks to. It is copied into the
// client on construction and never changed afterwards.
type BlockchainConfig struct {
	RPCURL      string `json:"rpc_url" yaml:"rpc_url"`
	ChainID     int64  `json:"chain_id" yaml:"chain_id"`
	ExplorerURL string `json:"explorer_url" yaml:"explorer_url"`
}

// DefaultConfig returns the mainnet configuration.
func DefaultConfig() BlockchainConfig {
	return BlockchainConfig{
		RPCURL:      DefaultRPCURL,
		ChainID:     DefaultChainID,
		ExplorerURL: DefaultExplorerURL,
	}
}
