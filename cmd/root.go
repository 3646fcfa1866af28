// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/nftmeta/common"
	"github.com/tranvictor/nftmeta/config"
	"github.com/tranvictor/nftmeta/networks"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nftmeta",
	Short: "Browse and resolve NFT collection metadata from the command line",
	Long: `nftmeta resolves NFT collection metadata straight from the chain and the
collection's metadata hosts.

Point it at a contract address, a known collection name or a metadata url
template and it will:

	1. Figure out how the contract exposes token metadata, using the
	verified ABI from the block explorer when available and probing the
	contract directly when it is not.

	2. Enumerate the collection's token ids, fetch every token's metadata
	document concurrently, and normalize the wildly inconsistent JSON
	out there into one shape.

	3. Stream progress as it goes so large collections render
	incrementally instead of after minutes of silence.

nftmeta ships with a book of well known collections (BAYC, Azuki,
Doodles...) so you can browse by name without remembering addresses. Add
your own entries in ~/.nftmeta/collections.json.

Custom networks can be added as json files under ~/.nftmeta/networks/ and
selected with --network. Node urls can be overridden per network with the
env var each network documents (e.g. ETHEREUM_MAINNET_NODE).

For more information or support, reach me at https://github.com/tranvictor.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadFile(); err != nil {
			return err
		}
		if config.Verbose {
			common.SetVerboseLogging()
		}
		if config.Network != "" {
			if err := networks.SetNetwork(config.Network); err != nil {
				return err
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "", "network to read contracts from. Valid values: \"mainnet\", \"matic\", \"bsc\", \"base\", \"arbitrum\" or any custom network under ~/.nftmeta/networks/.")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "print internal resolution steps")
	rootCmd.PersistentFlags().StringVar(&config.IPFSGateway, "ipfs-gateway", config.IPFSGateway, "https gateway used to fetch ipfs:// uris")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
