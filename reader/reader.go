package reader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tranvictor/nftmeta/networks"
)

// EthNode is the read surface the resolution pipeline needs from a node.
type EthNode interface {
	NodeName() string
	EthCall(ctx context.Context, to string, data []byte) ([]byte, error)
	GetCode(ctx context.Context, address string) ([]byte, error)
	CurrentBlock(ctx context.Context) (uint64, error)
}

// EthReader fans a read out to all of its nodes at once and returns the
// first successful response. Public RPC endpoints fail often enough that
// racing them is the difference between a usable browse session and not.
type EthReader struct {
	nodes map[string]EthNode
}

// NewEthReaderWithNodes builds a reader over pre-constructed nodes. Used
// to wire non-rpc nodes, eg. fakes in tests.
func NewEthReaderWithNodes(nodes ...EthNode) *EthReader {
	ns := map[string]EthNode{}
	for _, n := range nodes {
		ns[n.NodeName()] = n
	}
	return &EthReader{nodes: ns}
}

func NewEthReaderGeneric(nodes map[string]string) *EthReader {
	ns := map[string]EthNode{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url)
	}
	return &EthReader{nodes: ns}
}

// NewEthReaderForNetwork builds a reader from the network's default nodes,
// overridden by the network's node env var when set (comma separated urls).
func NewEthReaderForNetwork(n networks.Network) *EthReader {
	nodes := n.GetDefaultNodes()
	if custom := strings.Trim(os.Getenv(n.GetNodeVariableName()), " "); custom != "" {
		nodes = map[string]string{}
		for i, url := range strings.Split(custom, ",") {
			nodes[fmt.Sprintf("custom-%d", i)] = strings.TrimSpace(url)
		}
	}
	return NewEthReaderGeneric(nodes)
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type ethCallResult struct {
	Data  []byte
	Error error
}

func (er *EthReader) EthCall(ctx context.Context, to string, data []byte) ([]byte, error) {
	resCh := make(chan ethCallResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			out, err := n.EthCall(ctx, to, data)
			resCh <- ethCallResult{
				Data:  out,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Data, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type getCodeResult struct {
	Code  []byte
	Error error
}

func (er *EthReader) GetCode(ctx context.Context, address string) ([]byte, error) {
	resCh := make(chan getCodeResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			code, err := n.GetCode(ctx, address)
			resCh <- getCodeResult{
				Code:  code,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Code, nil
		}
		errs = append(errs, result.Error)
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

type currentBlockResult struct {
	Block uint64
	Error error
}

func (er *EthReader) CurrentBlock(ctx context.Context) (uint64, error) {
	resCh := make(chan currentBlockResult, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			block, err := n.CurrentBlock(ctx)
			resCh <- currentBlockResult{
				Block: block,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Block, nil
		}
		errs = append(errs, result.Error)
	}
	return 0, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}
