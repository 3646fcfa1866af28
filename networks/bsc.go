package networks

var BSCMainnet Network = NewBSCMainnet()

type bscMainnet struct {
	*GenericEtherscanNetwork
}

func NewBSCMainnet() *bscMainnet {
	return &bscMainnet{
		GenericEtherscanNetwork: NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
			Name:              "bsc",
			AlternativeNames:  []string{"binance"},
			ChainID:           56,
			NativeTokenSymbol: "BNB",
			BlockTime:         3,
			NodeVariableName:  "BSC_MAINNET_NODE",
			DefaultNodes: map[string]string{
				"binance":  "https://bsc-dataseed.binance.org",
				"defibit":  "https://bsc-dataseed1.defibit.io",
				"ninicoin": "https://bsc-dataseed1.ninicoin.io",
			},
			BlockExplorerAPIKeyVariableName: "ETHERSCAN_API_KEY",
		}),
	}
}
