package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/nftmeta/bleve"
	"github.com/tranvictor/nftmeta/db"
	"github.com/tranvictor/nftmeta/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the collection book",
	Long: `search looks up collections in the built-in book plus your own entries
from ~/.nftmeta/collections.json, by full-text and fuzzy match.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		u := ui.NewTerminalUI()
		matches, _ := bleve.GetCollections(args[0])
		if len(matches) == 0 {
			matches, _ = db.GetCollections(args[0])
		}
		if len(matches) == 0 {
			u.Warn("no collection found for '%s'", args[0])
			return
		}
		rows := [][]string{}
		for _, m := range matches {
			supply := ""
			if m.Supply > 0 {
				supply = fmt.Sprintf("%d", m.Supply)
			}
			rows = append(rows, []string{m.Name, m.Address, supply})
		}
		u.Table([]string{"Name", "Address", "Supply"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
