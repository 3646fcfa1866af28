package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/nftmeta/common"
	"github.com/tranvictor/nftmeta/config"
	"github.com/tranvictor/nftmeta/networks"
	"github.com/tranvictor/nftmeta/reader"
	"github.com/tranvictor/nftmeta/resolver"
	"github.com/tranvictor/nftmeta/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <address>",
	Short: "Show how a contract exposes its token metadata",
	Long: `inspect resolves a contract's metadata interface without fetching any
tokens: which uri method it answers, its supply, whether ids start at 0
or 1 and where the information came from (verified ABI or probing).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := ui.NewTerminalUI()
		if !common.IsAddress(args[0]) {
			return fmt.Errorf("'%s' is not a contract address", args[0])
		}
		addr, err := common.NormalizeAddress(args[0])
		if err != nil {
			return err
		}

		n := networks.CurrentNetwork()
		r := reader.NewEthReaderForNetwork(n)
		rs := resolver.NewResolver(r, n, n.GetChainID())

		ctx, cancel := context.WithTimeout(context.Background(), config.FetchTimeout)
		defer cancel()

		stop := u.Spinner(fmt.Sprintf("Inspecting %s...", common.ShortAddress(addr)))
		iface, err := rs.Resolve(ctx, addr)
		stop()
		if err != nil {
			return err
		}

		rows := [][2]string{
			{"Address", iface.Address},
			{"Chain", n.GetName()},
		}
		if iface.Name != "" {
			rows = append(rows, [2]string{"Name", iface.Name})
		}
		if iface.Symbol != "" {
			rows = append(rows, [2]string{"Symbol", iface.Symbol})
		}
		if iface.URIMethod != "" {
			rows = append(rows, [2]string{"URI method", iface.URISignature})
		}
		if iface.BaseURI != "" {
			rows = append(rows, [2]string{"Base URI", iface.BaseURI})
		}
		if iface.HasTotalSupply {
			rows = append(rows, [2]string{"Supply", fmt.Sprintf("%d", iface.TotalSupply)})
		} else {
			rows = append(rows, [2]string{"Supply", "not exposed"})
		}
		rows = append(rows, [2]string{"First token id", fmt.Sprintf("%d", iface.IDOffset)})
		u.KeyValue(rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
