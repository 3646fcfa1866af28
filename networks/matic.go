package networks

var Matic Network = NewMatic()

type matic struct {
	*GenericEtherscanNetwork
}

func NewMatic() *matic {
	return &matic{
		GenericEtherscanNetwork: NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
			Name:              "matic",
			AlternativeNames:  []string{"polygon"},
			ChainID:           137,
			NativeTokenSymbol: "POL",
			BlockTime:         2,
			NodeVariableName:  "MATIC_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"polygon-rpc": "https://polygon-rpc.com",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
		}),
	}
}
