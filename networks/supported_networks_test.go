package networks_test

import (
	"errors"
	"testing"

	"github.com/tranvictor/nftmeta/networks"
)

func TestGetNetworkByNameAndAlias(t *testing.T) {
	n, err := networks.GetNetwork("mainnet")
	if err != nil {
		t.Fatalf("mainnet: %s", err)
	}
	if n.GetChainID() != 1 {
		t.Errorf("mainnet chain id: got %d", n.GetChainID())
	}

	alias, err := networks.GetNetwork("eth")
	if err != nil {
		t.Fatalf("alias lookup: %s", err)
	}
	if alias.GetChainID() != 1 {
		t.Errorf("alias must resolve to the same network")
	}

	_, err = networks.GetNetwork("dogechain")
	if !errors.Is(err, networks.ErrNetworkNotFound) {
		t.Errorf("expected ErrNetworkNotFound, got %v", err)
	}
}

func TestGetNetworkByID(t *testing.T) {
	n, err := networks.GetNetworkByID(8453)
	if err != nil {
		t.Fatalf("base: %s", err)
	}
	if n.GetName() != "base" {
		t.Errorf("chain 8453: got %q", n.GetName())
	}
	if _, err := networks.GetNetworkByID(424242); err == nil {
		t.Errorf("expected error for unknown chain id")
	}
}

func TestNewNetworkFromJSON(t *testing.T) {
	content := []byte(`{
		"name": "testchain",
		"alternative_names": ["tc"],
		"chain_id": 999,
		"native_token_symbol": "TST",
		"block_time": 2,
		"node_variable_name": "TESTCHAIN_NODE",
		"default_nodes": {"n1": "https://rpc.test"}
	}`)
	n, err := networks.NewNetworkFromJSON(content)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	if n.GetName() != "testchain" || n.GetChainID() != 999 {
		t.Errorf("got %s/%d", n.GetName(), n.GetChainID())
	}
	if n.GetDefaultNodes()["n1"] != "https://rpc.test" {
		t.Errorf("default nodes: %v", n.GetDefaultNodes())
	}
	if _, err := networks.NewNetworkFromJSON([]byte("{")); err == nil {
		t.Errorf("expected error for malformed json")
	}
}
