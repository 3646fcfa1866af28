package cmd

import (
	"fmt"
	"strings"

	"github.com/tranvictor/nftmeta/bleve"
	"github.com/tranvictor/nftmeta/common"
	"github.com/tranvictor/nftmeta/db"
	"github.com/tranvictor/nftmeta/metadata"
	"github.com/tranvictor/nftmeta/networks"
	"github.com/tranvictor/nftmeta/reader"
	"github.com/tranvictor/nftmeta/resolver"
	"github.com/tranvictor/nftmeta/ui"
	"github.com/tranvictor/nftmeta/worker"
)

// isMetadataURL reports whether input is a direct metadata url template
// rather than a contract address or a collection name.
func isMetadataURL(input string) bool {
	return strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://") ||
		strings.HasPrefix(input, "ipfs://")
}

// lookupCollection finds a book entry matching input, asking the user to
// pick when the query is ambiguous.
func lookupCollection(u ui.UI, input string) (db.CollectionDesc, error) {
	matches, scores := bleve.GetCollections(input)
	if len(matches) == 0 {
		matches, scores = db.GetCollections(input)
	}
	if len(matches) == 0 {
		return db.CollectionDesc{}, fmt.Errorf("no collection found for '%s'", input)
	}
	if len(matches) == 1 || scores[0] != scores[1] {
		return matches[0], nil
	}
	options := []string{}
	for _, m := range matches {
		options = append(options, fmt.Sprintf("%s (%s)", m.Name, m.Address))
	}
	idx := u.Choose("Which collection did you mean?", options)
	return matches[idx], nil
}

// sourceFromInput turns the user's argument into a resolution source. It
// accepts a contract address, a metadata url template or a collection name
// from the book. The second return value is the display name.
func sourceFromInput(u ui.UI, input string, start, supply uint64, onchain bool) (worker.Source, string, error) {
	if common.IsAddress(input) {
		addr, err := common.NormalizeAddress(input)
		if err != nil {
			return worker.Source{}, "", err
		}
		return worker.ContractSource(addr), common.ShortAddress(addr), nil
	}

	if isMetadataURL(input) {
		return worker.TemplateSource(input, start, supply), input, nil
	}

	desc, err := lookupCollection(u, input)
	if err != nil {
		return worker.Source{}, "", err
	}
	if !onchain && desc.BaseURI != "" {
		s := desc.StartToken
		if start > 0 {
			s = start
		}
		n := desc.Supply
		if supply > 0 {
			n = supply
		}
		return worker.TemplateSource(desc.BaseURI, s, n), desc.Name, nil
	}
	if desc.Address == "" {
		return worker.Source{}, "", fmt.Errorf("collection '%s' has no contract address in the book", desc.Name)
	}
	return worker.ContractSource(desc.Address), desc.Name, nil
}

// buildWorker wires a worker against the currently selected network.
func buildWorker() *worker.Worker {
	n := networks.CurrentNetwork()
	r := reader.NewEthReaderForNetwork(n)
	rs := resolver.NewResolver(r, n, n.GetChainID())
	f := metadata.NewFetcher(r)
	return worker.NewWorker(rs, f)
}
