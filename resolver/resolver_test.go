package resolver_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/tranvictor/nftmeta/codec"
	"github.com/tranvictor/nftmeta/explorers"
	"github.com/tranvictor/nftmeta/reader"
	"github.com/tranvictor/nftmeta/resolver"
)

var errReverted = errors.New("execution reverted")

func stringReturn(t *testing.T, s string) []byte {
	t.Helper()
	typ, err := abi.NewType("string", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := abi.Arguments{{Type: typ}}.Pack(s)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func uintReturn(t *testing.T, n uint64) []byte {
	t.Helper()
	typ, err := abi.NewType("uint256", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := abi.Arguments{{Type: typ}}.Pack(new(big.Int).SetUint64(n))
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// fakeNode answers eth_call by dispatching on the 4-byte selector. Handlers
// for token methods additionally see the token id argument.
type fakeNode struct {
	code     []byte
	handlers map[string]func(tokenID uint64) ([]byte, error)
}

func (f *fakeNode) NodeName() string { return "fake" }

func (f *fakeNode) EthCall(ctx context.Context, to string, data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("calldata too short")
	}
	handler, found := f.handlers[fmt.Sprintf("%x", data[:4])]
	if !found {
		return nil, errReverted
	}
	tokenID := uint64(0)
	if len(data) >= 36 {
		tokenID = new(big.Int).SetBytes(data[4:36]).Uint64()
	}
	return handler(tokenID)
}

func (f *fakeNode) GetCode(ctx context.Context, address string) ([]byte, error) {
	return f.code, nil
}

func (f *fakeNode) CurrentBlock(ctx context.Context) (uint64, error) {
	return 1, nil
}

func (f *fakeNode) on(signature string, handler func(tokenID uint64) ([]byte, error)) {
	if f.handlers == nil {
		f.handlers = map[string]func(uint64) ([]byte, error){}
	}
	f.handlers[fmt.Sprintf("%x", codec.Selector(signature))] = handler
}

type fakeExplorer struct {
	abiString string
	name      string
	err       error
	abiCalls  int64
}

func (f *fakeExplorer) GetABIString(ctx context.Context, address string) (string, error) {
	atomic.AddInt64(&f.abiCalls, 1)
	if f.err != nil {
		return "", f.err
	}
	return f.abiString, nil
}

func (f *fakeExplorer) GetContractName(ctx context.Context, address string) (string, error) {
	if f.name == "" {
		return "", fmt.Errorf("not verified")
	}
	return f.name, nil
}

// testAddr builds a distinct well-formed address per test so the on-disk
// ABI cache of one test never leaks into another.
func testAddr(n uint64) string {
	return fmt.Sprintf("0x%040x", n)
}

const erc721ABI = `[
  {"type":"function","name":"tokenURI","inputs":[{"type":"uint256"}],"outputs":[{"type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"totalSupply","inputs":[],"outputs":[{"type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"name","inputs":[],"outputs":[{"type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"symbol","inputs":[],"outputs":[{"type":"string"}],"stateMutability":"view"}
]`

func TestResolveFromVerifiedABI(t *testing.T) {
	node := &fakeNode{code: []byte{0x60}}
	node.on("tokenURI(uint256)", func(id uint64) ([]byte, error) {
		if id == 0 {
			return nil, errReverted
		}
		return stringReturn(t, fmt.Sprintf("ipfs://QmHash/%d", id)), nil
	})
	node.on("totalSupply()", func(uint64) ([]byte, error) {
		return uintReturn(t, 10), nil
	})
	node.on("symbol()", func(uint64) ([]byte, error) {
		return stringReturn(t, "FAKE"), nil
	})

	explorer := &fakeExplorer{abiString: erc721ABI, name: "FakeApes"}
	rs := resolver.NewResolver(reader.NewEthReaderWithNodes(node), explorer, 909000001)

	iface, err := rs.Resolve(context.Background(), testAddr(909000001))
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if !iface.HasTokenURI() {
		t.Errorf("expected tokenURI method, got %q", iface.URIMethod)
	}
	if iface.URISignature != "tokenURI(uint256)" {
		t.Errorf("signature: got %q", iface.URISignature)
	}
	if !iface.HasTotalSupply || iface.TotalSupply != 10 {
		t.Errorf("supply: got known=%v total=%d, want 10", iface.HasTotalSupply, iface.TotalSupply)
	}
	if iface.IDOffset != 1 {
		t.Errorf("id offset: got %d, want 1 since id 0 reverts", iface.IDOffset)
	}
	if iface.Name != "FakeApes" {
		t.Errorf("explorer contract name should win, got %q", iface.Name)
	}
	if iface.Symbol != "FAKE" {
		t.Errorf("symbol: got %q", iface.Symbol)
	}
}

func TestResolveByProbingWhenNotVerified(t *testing.T) {
	node := &fakeNode{code: []byte{0x60}}
	node.on("uri(uint256)", func(id uint64) ([]byte, error) {
		return stringReturn(t, "https://x/{id}.json"), nil
	})

	explorer := &fakeExplorer{err: explorers.ErrABINotAvailable}
	rs := resolver.NewResolver(reader.NewEthReaderWithNodes(node), explorer, 909000002)

	iface, err := rs.Resolve(context.Background(), testAddr(909000002))
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if !iface.HasURI() {
		t.Errorf("expected uri method, got %q", iface.URIMethod)
	}
	if iface.IDOffset != 0 {
		t.Errorf("id offset: got %d, want 0", iface.IDOffset)
	}
	if iface.HasTotalSupply {
		t.Errorf("supply should be unknown when totalSupply reverts")
	}
	if iface.Name != "" {
		t.Errorf("name should be empty, got %q", iface.Name)
	}
}

func TestResolveBaseURIOnlyContract(t *testing.T) {
	node := &fakeNode{code: []byte{0x60}}
	node.on("baseURI()", func(uint64) ([]byte, error) {
		return stringReturn(t, "https://api.x/tokens/"), nil
	})

	explorer := &fakeExplorer{err: explorers.ErrABINotAvailable}
	rs := resolver.NewResolver(reader.NewEthReaderWithNodes(node), explorer, 909000003)

	iface, err := rs.Resolve(context.Background(), testAddr(909000003))
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if iface.URIMethod != "" {
		t.Errorf("expected no per-token uri method, got %q", iface.URIMethod)
	}
	if iface.BaseURI != "https://api.x/tokens/" {
		t.Errorf("base uri: got %q", iface.BaseURI)
	}
}

func TestResolveUnsupportedContract(t *testing.T) {
	node := &fakeNode{code: []byte{0x60}} // a contract, just not a token one
	explorer := &fakeExplorer{err: explorers.ErrABINotAvailable}
	rs := resolver.NewResolver(reader.NewEthReaderWithNodes(node), explorer, 909000004)

	_, err := rs.Resolve(context.Background(), testAddr(909000004))
	if !errors.Is(err, resolver.ErrUnsupportedContract) {
		t.Fatalf("expected ErrUnsupportedContract, got %v", err)
	}
}

func TestResolveNoContractAtAddress(t *testing.T) {
	node := &fakeNode{} // GetCode returns nothing
	explorer := &fakeExplorer{err: explorers.ErrABINotAvailable}
	rs := resolver.NewResolver(reader.NewEthReaderWithNodes(node), explorer, 909000005)

	_, err := rs.Resolve(context.Background(), testAddr(909000005))
	if !errors.Is(err, resolver.ErrUnsupportedContract) {
		t.Fatalf("expected ErrUnsupportedContract, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "no contract deployed") {
		t.Errorf("message should say there is no contract, got %v", err)
	}
}

func TestResolveExplorerOutageDegradesToProbing(t *testing.T) {
	node := &fakeNode{code: []byte{0x60}}
	node.on("tokenURI(uint256)", func(id uint64) ([]byte, error) {
		return stringReturn(t, fmt.Sprintf("https://x/%d", id)), nil
	})

	explorer := &fakeExplorer{err: fmt.Errorf("explorer unreachable")}
	rs := resolver.NewResolver(reader.NewEthReaderWithNodes(node), explorer, 909000006)

	iface, err := rs.Resolve(context.Background(), testAddr(909000006))
	if err != nil {
		t.Fatalf("an explorer outage must not fail resolution: %s", err)
	}
	if !iface.HasTokenURI() {
		t.Errorf("expected tokenURI via probing, got %q", iface.URIMethod)
	}
}

func TestResolveCachesPerSession(t *testing.T) {
	node := &fakeNode{code: []byte{0x60}}
	node.on("uri(uint256)", func(id uint64) ([]byte, error) {
		return stringReturn(t, "https://x/{id}.json"), nil
	})
	explorer := &fakeExplorer{err: explorers.ErrABINotAvailable}
	rs := resolver.NewResolver(reader.NewEthReaderWithNodes(node), explorer, 909000007)

	first, err := rs.Resolve(context.Background(), testAddr(909000007))
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	second, err := rs.Resolve(context.Background(), testAddr(909000007))
	if err != nil {
		t.Fatalf("resolve again: %s", err)
	}
	if first != second {
		t.Errorf("expected the cached iface pointer on the second resolve")
	}
	if calls := atomic.LoadInt64(&explorer.abiCalls); calls != 1 {
		t.Errorf("explorer should be asked once per session, got %d calls", calls)
	}
}
