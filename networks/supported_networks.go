package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// Insert more Network implementation here to support more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	Matic,
	BSCMainnet,
	BaseMainnet,
	ArbitrumMainnet,
}

var globalSupportedNetworks = newSupportedNetworks()

var ErrNetworkNotFound = fmt.Errorf("network not found")

type networkRegistry struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func newSupportedNetworks() *networkRegistry {
	result := networkRegistry{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if _, found := result.networks[n.GetName()]; found {
			panic(fmt.Errorf("network with name or alternative name of '%s' already exists", n.GetName()))
		}
		result.networks[n.GetName()] = n
		result.networksByID[n.GetChainID()] = n
		for _, an := range n.GetAlternativeNames() {
			if _, found := result.networks[an]; found {
				panic(fmt.Errorf("network with name or alternative name of '%s' already exists", an))
			}
			result.networks[an] = n
		}
	}

	customNetworks, err := loadCustomNetworks()
	if err != nil {
		fmt.Printf("WARNING: Failed to load custom networks: %s. Ignore and continue with built-in networks.\n", err)
		return &result
	}
	for _, n := range customNetworks {
		result.networks[n.GetName()] = n
		result.networksByID[n.GetChainID()] = n
	}
	return &result
}

// loadCustomNetworks reads extra network definitions from
// ~/.nftmeta/networks/*.json so users can browse collections on chains we
// don't ship built-in support for.
func loadCustomNetworks() ([]Network, error) {
	usr, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	files, err := filepath.Glob(filepath.Join(usr.HomeDir, ".nftmeta", "networks", "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob custom network files: %w", err)
	}
	result := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		network, err := NewNetworkFromJSON(content)
		if err != nil {
			fmt.Printf("failed to parse network from file %s: %s. Ignore and continue with other custom networks.\n", file, err)
			continue
		}
		result = append(result, network)
	}
	return result, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericEtherscanNetworkConfig{}
	if err := json.Unmarshal(content, &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	return NewGenericEtherscanNetwork(networkConfig), nil
}

func GetSupportedNetworks() []Network {
	res := []Network{}
	for _, n := range supportedNetworks {
		res = append(res, n)
	}
	return res
}

func GetNetwork(name string) (Network, error) {
	res, found := globalSupportedNetworks.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func GetNetworkByID(id uint64) (Network, error) {
	res, found := globalSupportedNetworks.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d is not supported", id)
	}
	return res, nil
}

func GetSupportedNetworkNames() []string {
	res := []string{}
	for _, n := range globalSupportedNetworks.networks {
		res = append(res, n.GetName())
	}
	return res
}
