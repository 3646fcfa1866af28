package networks

import (
	"sync"

	"github.com/tranvictor/nftmeta/config"
)

var (
	cachedNetwork Network
	mu            sync.Mutex
)

// CurrentNetwork returns the network selected via config.Network, falling
// back to ethereum mainnet when the name is unknown.
func CurrentNetwork() Network {
	mu.Lock()
	defer mu.Unlock()
	if cachedNetwork != nil {
		return cachedNetwork
	}
	n, err := GetNetwork(config.Network)
	if err != nil {
		cachedNetwork = EthereumMainnet
	} else {
		cachedNetwork = n
	}
	return cachedNetwork
}

func SetNetwork(networkStr string) error {
	mu.Lock()
	defer mu.Unlock()
	n, err := GetNetwork(networkStr)
	if err != nil {
		return err
	}
	cachedNetwork = n
	return nil
}
