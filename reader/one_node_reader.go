package reader

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const TIMEOUT time.Duration = 8 * time.Second

// OneNodeReader is a lazy JSON-RPC connection to a single node. The dial
// happens on first use so constructing readers for every configured node is
// free until one is actually hit.
type OneNodeReader struct {
	nodeName  string
	nodeURL   string
	client    *rpc.Client
	ethClient *ethclient.Client
	mu        sync.Mutex
}

func NewOneNodeReader(name, url string) *OneNodeReader {
	return &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
	}
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

// EthClient returns the shared connection, dialing it on first use. The
// nil check stays under the mutex so concurrent first calls agree on one
// connection.
func (onr *OneNodeReader) EthClient() (*ethclient.Client, error) {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.ethClient != nil {
		return onr.ethClient, nil
	}
	client, err := rpc.Dial(onr.NodeURL())
	if err != nil {
		return nil, fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	onr.ethClient = ethclient.NewClient(onr.client)
	return onr.ethClient, nil
}

func (onr *OneNodeReader) GetCode(ctx context.Context, address string) ([]byte, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.CodeAt(timeout, ethcommon.HexToAddress(address), nil)
}

// EthCall issues a read-only contract call with preencoded calldata and
// returns the raw return bytes. Reverts surface as errors from the node.
func (onr *OneNodeReader) EthCall(ctx context.Context, to string, data []byte) ([]byte, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	contract := ethcommon.HexToAddress(to)
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	return ethcli.CallContract(timeout, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
}

func (onr *OneNodeReader) CurrentBlock(ctx context.Context) (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()
	header, err := ethcli.HeaderByNumber(timeout, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}
