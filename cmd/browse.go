package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tranvictor/nftmeta/collection"
	"github.com/tranvictor/nftmeta/config"
	"github.com/tranvictor/nftmeta/metadata"
	"github.com/tranvictor/nftmeta/resolver"
	"github.com/tranvictor/nftmeta/ui"
	"github.com/tranvictor/nftmeta/worker"
)

var (
	browseStart   uint64
	browseSupply  uint64
	browseOnchain bool
)

var browseCmd = &cobra.Command{
	Use:   "browse <collection>",
	Short: "Resolve and stream the metadata of a whole collection",
	Long: `browse resolves every token of a collection and prints them as they come
in. The collection can be given as a contract address, a name from the
collection book or a metadata url template (with or without {id}).

Examples:

	nftmeta browse 0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d
	nftmeta browse azuki
	nftmeta browse "https://meta.hapeprime.com/{id}" --supply 8192
	nftmeta browse bayc --limit 50 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u := ui.NewTerminalUI()
		source, display, err := sourceFromInput(u, args[0], browseStart, browseSupply, browseOnchain)
		if err != nil {
			return err
		}

		w := buildWorker()
		col := collection.NewCollection(display, source.Address)

		stop := u.Spinner(fmt.Sprintf("Resolving %s...", display))
		w.Start(source)

		stopped := false
		stopSpinner := func() {
			if !stopped {
				stopped = true
				stop()
			}
		}
		defer stopSpinner()

		for ev := range w.Events() {
			switch ev.Kind {
			case worker.EventResolved:
				stopSpinner()
				printIface(u, ev.Iface)
				if ev.Iface.Name != "" {
					col.Name = ev.Iface.Name
				}

			case worker.EventProgress:
				stopSpinner()
				if err := col.Add(ev.Token); err != nil {
					u.Warn("dropping duplicate token %d", ev.Token.ID)
					continue
				}
				printToken(u, ev.Token)
				if config.Limit > 0 && uint64(ev.Stats.Resolved+ev.Stats.Failed) >= config.Limit {
					w.Cancel()
					printSummary(u, col)
					return nil
				}

			case worker.EventProgressFailed:
				stopSpinner()
				col.RecordFailure(ev.TokenID, ev.Reason)
				u.Error("#%d failed: %s", ev.TokenID, ev.Reason)
				if config.Limit > 0 && uint64(ev.Stats.Resolved+ev.Stats.Failed) >= config.Limit {
					w.Cancel()
					printSummary(u, col)
					return nil
				}

			case worker.EventCompleted:
				stopSpinner()
				if ev.Stats.TotalKnown {
					col.SetTotal(ev.Stats.Total)
				}
				printSummary(u, col)
				return nil

			case worker.EventFatal:
				stopSpinner()
				return fmt.Errorf("resolving %s failed: %w", display, ev.Err)
			}
		}
		return nil
	},
}

func printIface(u ui.UI, iface *resolver.ContractIface) {
	if iface == nil {
		return
	}
	rows := [][2]string{
		{"Address", iface.Address},
	}
	if iface.Name != "" {
		rows = append(rows, [2]string{"Name", iface.Name})
	}
	if iface.Symbol != "" {
		rows = append(rows, [2]string{"Symbol", iface.Symbol})
	}
	if iface.URIMethod != "" {
		rows = append(rows, [2]string{"URI method", iface.URISignature})
	} else if iface.BaseURI != "" {
		rows = append(rows, [2]string{"Base URI", iface.BaseURI})
	}
	if iface.HasTotalSupply {
		rows = append(rows, [2]string{"Supply", fmt.Sprintf("%d", iface.TotalSupply)})
	}
	u.KeyValue(rows)
	u.Info("")
}

func printToken(u ui.UI, token *metadata.TokenMetadata) {
	if config.RawJSON {
		fmt.Fprintf(u.Writer(), "%s\n", string(token.Raw))
		return
	}
	line := fmt.Sprintf("#%d  %s", token.ID, token.Name)
	if token.Image != "" {
		line += "  " + token.Image
	}
	u.Success("%s", line)
}

func printSummary(u ui.UI, col *collection.Collection) {
	stats := col.Stats()
	u.Section(col.Name)
	p := message.NewPrinter(language.English)
	total := "unknown"
	if stats.TotalKnown {
		total = p.Sprintf("%d", stats.Total)
	}
	u.KeyValue([][2]string{
		{"Resolved", p.Sprintf("%d", stats.Resolved)},
		{"Failed", p.Sprintf("%d", stats.Failed)},
		{"Total", total},
	})
	failures := col.Failures()
	if len(failures) == 0 {
		return
	}
	u.Info("")
	shown := failures
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, f := range shown {
		u.Error("#%d: %s", f.TokenID, f.Reason)
	}
	if len(failures) > len(shown) {
		u.Error("... and %d more failures", len(failures)-len(shown))
	}
}

func init() {
	browseCmd.Flags().Uint64Var(&browseStart, "start", 0, "first token id to fetch (url template sources)")
	browseCmd.Flags().Uint64Var(&browseSupply, "supply", 0, "number of tokens to fetch (url template sources)")
	browseCmd.Flags().BoolVar(&browseOnchain, "onchain", false, "resolve through the contract even when the book has a base uri")
	browseCmd.Flags().Uint64VarP(&config.Limit, "limit", "l", 0, "stop after this many tokens (0 = all)")
	browseCmd.Flags().BoolVar(&config.RawJSON, "json", false, "print each token's raw metadata json instead of a summary line")
	rootCmd.AddCommand(browseCmd)
}
