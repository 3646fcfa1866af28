package networks

import (
	"time"

	"github.com/tranvictor/nftmeta/explorers"
)

type Network interface {
	explorers.BlockExplorer

	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetBlockTime() time.Duration

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	GetBlockExplorerAPIKeyVariableName() string
	GetBlockExplorerAPIURL() string
}
