package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tranvictor/nftmeta/config"
	"github.com/tranvictor/nftmeta/metadata"
	"github.com/tranvictor/nftmeta/networks"
	"github.com/tranvictor/nftmeta/reader"
	"github.com/tranvictor/nftmeta/resolver"
	"github.com/tranvictor/nftmeta/ui"
	"github.com/tranvictor/nftmeta/worker"
)

var tokenCmd = &cobra.Command{
	Use:   "token <collection> <id>",
	Short: "Resolve the metadata of a single token",
	Long: `token resolves one token and prints its full metadata, attributes
included. The collection is given the same way as for browse.

Examples:

	nftmeta token bayc 8888
	nftmeta token 0xed5af388653567af2f388e6224dc7c4b3241c544 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := ui.NewTerminalUI()
		tokenID, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("'%s' is not a valid token id", args[1])
		}
		source, display, err := sourceFromInput(u, args[0], 0, 0, false)
		if err != nil {
			return err
		}

		n := networks.CurrentNetwork()
		r := reader.NewEthReaderForNetwork(n)
		f := metadata.NewFetcher(r)

		ctx, cancel := context.WithTimeout(context.Background(), config.FetchTimeout)
		defer cancel()

		stop := u.Spinner(fmt.Sprintf("Fetching %s #%d...", display, tokenID))
		var token *metadata.TokenMetadata
		if source.Kind == worker.SourceContract {
			rs := resolver.NewResolver(r, n, n.GetChainID())
			iface, rerr := rs.Resolve(ctx, source.Address)
			if rerr != nil {
				stop()
				return rerr
			}
			token, err = f.FetchContractToken(ctx, iface, tokenID)
		} else {
			token, err = f.FetchTemplateToken(ctx, source.Template, tokenID)
		}
		stop()
		if err != nil {
			return err
		}

		if config.RawJSON {
			fmt.Fprintf(u.Writer(), "%s\n", string(token.Raw))
			return nil
		}
		printTokenDetail(u, token)
		return nil
	},
}

func printTokenDetail(u ui.UI, token *metadata.TokenMetadata) {
	u.Section(token.Name)
	rows := [][2]string{}
	if token.Description != "" {
		rows = append(rows, [2]string{"Description", token.Description})
	}
	if token.Image != "" {
		rows = append(rows, [2]string{"Image", token.Image})
	}
	if token.AnimationURL != "" {
		rows = append(rows, [2]string{"Animation", token.AnimationURL})
	}
	if token.ExternalURL != "" {
		rows = append(rows, [2]string{"External URL", token.ExternalURL})
	}
	if token.CreatedBy != "" {
		rows = append(rows, [2]string{"Created by", token.CreatedBy})
	}
	u.KeyValue(rows)
	if len(token.Attributes) == 0 {
		return
	}
	attrRows := [][]string{}
	for _, a := range token.Attributes {
		attrRows = append(attrRows, []string{a.Trait, a.Value})
	}
	u.Info("")
	u.Table([]string{"Trait", "Value"}, attrRows)
}

func init() {
	tokenCmd.Flags().BoolVar(&config.RawJSON, "json", false, "print the token's raw metadata json")
	rootCmd.AddCommand(tokenCmd)
}
