package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/nftmeta/networks"
	"github.com/tranvictor/nftmeta/ui"
)

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "List all networks nftmeta can read from",
	Run: func(cmd *cobra.Command, args []string) {
		u := ui.NewTerminalUI()
		rows := [][]string{}
		for _, n := range networks.GetSupportedNetworks() {
			rows = append(rows, []string{
				n.GetName(),
				fmt.Sprintf("%d", n.GetChainID()),
				n.GetNativeTokenSymbol(),
				n.GetNodeVariableName(),
			})
		}
		u.Table([]string{"Name", "Chain ID", "Token", "Node env var"}, rows)
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Inspect supported networks",
	Long: `Supported networks are built in plus any custom network defined as a
json file under ~/.nftmeta/networks/. A custom network file looks like:

	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"block_time": 12,
		"node_variable_name": "CUSTOM_NODE",
		"default_nodes": {
			"node_name_1": "node_url_1"
		},
		"block_explorer_api_key_variable_name": "CUSTOM_ETHERSCAN_API_KEY"
	}`,
}

func init() {
	networkCmd.AddCommand(listNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
