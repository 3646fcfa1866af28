package reader_test

import (
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/tranvictor/nftmeta/reader"
)

func TestEthClientConcurrentFirstUse(t *testing.T) {
	// http transports dial lazily, so no node has to be listening here
	onr := reader.NewOneNodeReader("test-node", "http://127.0.0.1:18545")

	const callers = 8
	clients := make([]*ethclient.Client, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := onr.EthClient()
			if err != nil {
				t.Errorf("caller %d: %s", i, err)
				return
			}
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if clients[i] != clients[0] {
			t.Errorf("caller %d got a different connection", i)
		}
	}
}
