package networks

var BaseMainnet Network = NewBaseMainnet()

type baseMainnet struct {
	*GenericEtherscanNetwork
}

func NewBaseMainnet() *baseMainnet {
	return &baseMainnet{
		GenericEtherscanNetwork: NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
			Name:              "base",
			ChainID:           8453,
			NativeTokenSymbol: "ETH",
			BlockTime:         2,
			NodeVariableName:  "BASE_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"base": "https://mainnet.base.org",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
		}),
	}
}
