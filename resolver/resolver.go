// Package resolver discovers which token-standard interface a contract
// implements. It asks the chain explorer for a verified ABI first; when no
// ABI is available it probes a ranked list of well-known method signatures
// directly against the node. The resulting ContractIface is an explicit
// capability record, resolved once per session and read-only afterwards:
// everything downstream dispatches on its fields instead of re-probing.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"go.uber.org/zap"

	"github.com/tranvictor/nftmeta/cache"
	"github.com/tranvictor/nftmeta/codec"
	"github.com/tranvictor/nftmeta/common"
	"github.com/tranvictor/nftmeta/explorers"
	"github.com/tranvictor/nftmeta/reader"
)

// ErrUnsupportedContract is terminal: the address exposes no usable
// metadata interface and nothing downstream can proceed.
var ErrUnsupportedContract = errors.New("contract exposes no usable metadata interface")

// ContractIface is the resolved capability set of a contract address.
// Signatures are the exact ones found on chain, the names of which can vary
// in casing across real deployments.
type ContractIface struct {
	Address string
	ChainID uint64

	// display sugar, best effort
	Name   string
	Symbol string

	// URIMethod is the codec method used to fetch a token's metadata uri:
	// tokenURI (single-asset style) or uri (multi-token style). Empty only
	// during resolution, never in a returned iface.
	URIMethod    string
	URISignature string

	// BaseURI is a url template discovered via baseURI(), used when the
	// contract exposes no per-token uri method.
	BaseURI string

	HasTotalSupply       bool
	TotalSupplySignature string
	TotalSupply          uint64

	// IDOffset is 0 or 1: some collections start their token ids at 1.
	IDOffset uint64
}

func (ci *ContractIface) HasTokenURI() bool {
	return ci.URIMethod == codec.MethodTokenURI
}

func (ci *ContractIface) HasURI() bool {
	return ci.URIMethod == codec.MethodURI
}

type Resolver struct {
	reader   *reader.EthReader
	explorer explorers.BlockExplorer
	chainID  uint64
	logger   *zap.Logger

	mu       sync.Mutex
	resolved map[string]*ContractIface
}

func NewResolver(r *reader.EthReader, be explorers.BlockExplorer, chainID uint64) *Resolver {
	return &Resolver{
		reader:   r,
		explorer: be,
		chainID:  chainID,
		logger:   common.Logger(),
		resolved: map[string]*ContractIface{},
	}
}

// Resolve determines the interface of the contract at address. The result
// is cached for the resolver's lifetime: an interface never changes within
// a session.
func (r *Resolver) Resolve(ctx context.Context, address string) (*ContractIface, error) {
	addr, err := common.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if iface, found := r.resolved[addr]; found {
		r.mu.Unlock()
		return iface, nil
	}
	r.mu.Unlock()

	iface, err := r.resolve(ctx, addr)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.resolved[addr] = iface
	r.mu.Unlock()
	return iface, nil
}

func (r *Resolver) resolve(ctx context.Context, addr string) (*ContractIface, error) {
	iface := &ContractIface{
		Address: addr,
		ChainID: r.chainID,
	}

	hasBaseURI := false
	abiString, err := r.verifiedABIString(ctx, addr)
	switch {
	case err == nil:
		if hasBaseURI, err = r.inspectABI(iface, abiString); err != nil {
			r.logger.Warn("verified ABI doesn't parse, falling back to probing",
				zap.String("address", addr), zap.Error(err))
		}
	case errors.Is(err, explorers.ErrABINotAvailable):
		r.logger.Debug("no verified ABI, probing", zap.String("address", addr))
	default:
		// Explorer unreachable or key rejected after retries. The node can
		// still answer probes, so degrade rather than fail the session.
		r.logger.Warn("explorer lookup failed, falling back to probing",
			zap.String("address", addr), zap.Error(err))
	}

	if iface.URIMethod == "" && hasBaseURI {
		if base, err := r.callString(ctx, addr, codec.MethodBaseURI); err == nil && base != "" {
			iface.BaseURI = base
		}
	}

	if iface.URIMethod == "" && iface.BaseURI == "" {
		if err := r.probe(ctx, iface); err != nil {
			return nil, err
		}
	}

	if iface.URIMethod == "" && iface.BaseURI == "" {
		return nil, fmt.Errorf("%s: %w", addr, ErrUnsupportedContract)
	}

	if err := r.fillSupply(ctx, iface); err != nil {
		return nil, err
	}
	r.fillOffset(ctx, iface)
	r.fillIdentity(ctx, iface)

	r.logger.Info("contract interface resolved",
		zap.String("address", addr),
		zap.String("uri_method", iface.URIMethod),
		zap.String("base_uri", iface.BaseURI),
		zap.Bool("has_total_supply", iface.HasTotalSupply),
		zap.Uint64("total_supply", iface.TotalSupply),
		zap.Uint64("id_offset", iface.IDOffset),
	)
	return iface, nil
}

func (r *Resolver) verifiedABIString(ctx context.Context, addr string) (string, error) {
	key := fmt.Sprintf("abi:%d:%s", r.chainID, addr)
	if cached, found := cache.GetCache(key); found {
		return cached, nil
	}
	abiString, err := r.explorer.GetABIString(ctx, addr)
	if err != nil {
		return "", err
	}
	if err := cache.SetCache(key, abiString); err != nil {
		r.logger.Debug("couldn't persist ABI cache", zap.Error(err))
	}
	return abiString, nil
}

// inspectABI records which of the supported methods the verified ABI
// declares, keeping the exact signatures found. Matching is case
// insensitive because real contracts disagree on casing (tokenUri,
// TokenURI, ...).
func (r *Resolver) inspectABI(iface *ContractIface, abiString string) (hasBaseURI bool, err error) {
	parsed, err := abi.JSON(strings.NewReader(abiString))
	if err != nil {
		return false, fmt.Errorf("couldn't parse verified ABI: %w", err)
	}

	var uriSig, tokenURISig string
	for _, method := range parsed.Methods {
		switch {
		case strings.EqualFold(method.Name, codec.MethodTokenURI) && isUintToString(method):
			tokenURISig = method.Sig
		case strings.EqualFold(method.Name, codec.MethodURI) && isUintToString(method):
			uriSig = method.Sig
		case strings.EqualFold(method.Name, codec.MethodBaseURI) && isNullaryString(method):
			hasBaseURI = true
		case strings.EqualFold(method.Name, codec.MethodTotalSupply) && isNullaryUint(method):
			iface.HasTotalSupply = true
			iface.TotalSupplySignature = method.Sig
		}
	}

	// tokenURI outranks uri: single-asset metadata is the common case and
	// multi-token contracts often return unsubstituted {id} templates.
	switch {
	case tokenURISig != "":
		iface.URIMethod = codec.MethodTokenURI
		iface.URISignature = tokenURISig
	case uriSig != "":
		iface.URIMethod = codec.MethodURI
		iface.URISignature = uriSig
	}
	return hasBaseURI, nil
}

func isUintToString(m abi.Method) bool {
	return len(m.Inputs) == 1 && m.Inputs[0].Type.T == abi.UintTy &&
		len(m.Outputs) == 1 && m.Outputs[0].Type.T == abi.StringTy
}

func isNullaryString(m abi.Method) bool {
	return len(m.Inputs) == 0 && len(m.Outputs) == 1 && m.Outputs[0].Type.T == abi.StringTy
}

func isNullaryUint(m abi.Method) bool {
	return len(m.Inputs) == 0 && len(m.Outputs) == 1 && m.Outputs[0].Type.T == abi.UintTy
}

// probe tries the ranked candidate methods directly against the node and
// accepts the first that returns a well-formed response rather than a
// revert. Probe failures of individual candidates are expected and never
// fatal on their own.
func (r *Resolver) probe(ctx context.Context, iface *ContractIface) error {
	for _, method := range []string{codec.MethodTokenURI, codec.MethodURI} {
		for _, id := range []uint64{0, 1} {
			uri, err := r.callTokenString(ctx, iface.Address, method, id)
			if err != nil {
				continue
			}
			if uri == "" {
				continue
			}
			iface.URIMethod = method
			iface.URISignature, _ = codec.Signature(method)
			iface.IDOffset = id
			return nil
		}
	}

	if base, err := r.callString(ctx, iface.Address, codec.MethodBaseURI); err == nil && base != "" {
		iface.BaseURI = base
		return nil
	}

	// Distinguish "not a contract" from "contract without the methods" so
	// the user gets an accurate terminal message.
	code, err := r.reader.GetCode(ctx, iface.Address)
	if err != nil {
		return fmt.Errorf("couldn't probe %s: %w", iface.Address, err)
	}
	if len(code) == 0 {
		return fmt.Errorf("no contract deployed at %s: %w", iface.Address, ErrUnsupportedContract)
	}
	return nil
}

// fillSupply reads totalSupply when available. When the verified ABI never
// declared it, its absence on probe is a valid unknown-total state; when the
// ABI promised it, a failing call is a real error.
func (r *Resolver) fillSupply(ctx context.Context, iface *ContractIface) error {
	data, err := codec.EncodeCall(codec.MethodTotalSupply)
	if err != nil {
		return err
	}
	out, err := r.reader.EthCall(ctx, iface.Address, data)
	if err != nil {
		if iface.HasTotalSupply {
			return fmt.Errorf("totalSupply call failed: %w", err)
		}
		return nil
	}
	supply, err := codec.DecodeReturnUint(codec.MethodTotalSupply, out)
	if err != nil {
		if iface.HasTotalSupply {
			return err
		}
		return nil
	}
	iface.HasTotalSupply = true
	if iface.TotalSupplySignature == "" {
		iface.TotalSupplySignature, _ = codec.Signature(codec.MethodTotalSupply)
	}
	iface.TotalSupply = clampUint64(supply)
	return nil
}

// fillOffset decides whether the collection starts at id 0 or 1 by checking
// whether id 0 resolves. Offset 1 collections are common enough that
// skipping this check would mark the first token of every such collection
// as failed.
func (r *Resolver) fillOffset(ctx context.Context, iface *ContractIface) {
	if iface.URIMethod == "" || iface.IDOffset != 0 {
		return
	}
	if _, err := r.callTokenString(ctx, iface.Address, iface.URIMethod, 0); err == nil {
		return
	}
	if _, err := r.callTokenString(ctx, iface.Address, iface.URIMethod, 1); err == nil {
		iface.IDOffset = 1
	}
}

func (r *Resolver) fillIdentity(ctx context.Context, iface *ContractIface) {
	if name, err := r.explorer.GetContractName(ctx, iface.Address); err == nil && name != "" {
		iface.Name = name
	}
	if iface.Name == "" {
		if name, err := r.callString(ctx, iface.Address, codec.MethodName); err == nil {
			iface.Name = name
		}
	}
	if symbol, err := r.callString(ctx, iface.Address, codec.MethodSymbol); err == nil {
		iface.Symbol = symbol
	}
}

func (r *Resolver) callString(ctx context.Context, addr, method string) (string, error) {
	data, err := codec.EncodeCall(method)
	if err != nil {
		return "", err
	}
	out, err := r.reader.EthCall(ctx, addr, data)
	if err != nil {
		return "", err
	}
	return codec.DecodeReturnString(method, out)
}

func (r *Resolver) callTokenString(ctx context.Context, addr, method string, tokenID uint64) (string, error) {
	data, err := codec.EncodeTokenCall(method, tokenID)
	if err != nil {
		return "", err
	}
	out, err := r.reader.EthCall(ctx, addr, data)
	if err != nil {
		return "", err
	}
	return codec.DecodeReturnString(method, out)
}

func clampUint64(n *big.Int) uint64 {
	if !n.IsUint64() {
		return ^uint64(0)
	}
	return n.Uint64()
}
