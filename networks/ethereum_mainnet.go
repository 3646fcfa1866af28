package networks

var EthereumMainnet Network = NewEthereumMainnet()

type ethereumMainnet struct {
	*GenericEtherscanNetwork
}

func NewEthereumMainnet() *ethereumMainnet {
	return &ethereumMainnet{
		GenericEtherscanNetwork: NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
			Name:              "mainnet",
			AlternativeNames:  []string{"ethereum", "eth"},
			ChainID:           1,
			NativeTokenSymbol: "ETH",
			BlockTime:         12,
			NodeVariableName:  "ETHEREUM_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"mainnet-ankr":       "https://rpc.ankr.com/eth",
				"mainnet-cloudflare": "https://cloudflare-eth.com",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
		}),
	}
}
