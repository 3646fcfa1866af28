package explorers

import "context"

type BlockExplorer interface {
	GetABIString(ctx context.Context, address string) (string, error)
	GetContractName(ctx context.Context, address string) (string, error)
}

const defaultEtherscanAPIKey = "UBB257TI824FC7HUSPT66KZUMGBPRN3IWV"

// NewEtherscanV2 returns an explorer for the unified etherscan v2 API which
// serves every chain it supports from one domain, selected by chainid.
func NewEtherscanV2(chainID uint64) *EtherscanLikeExplorer {
	return NewEtherscanLikeExplorer(chainID, "https://api.etherscan.io/v2", defaultEtherscanAPIKey)
}
