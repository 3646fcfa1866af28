// Package codec encodes call payloads and decodes return values for the
// small fixed set of read methods the metadata pipeline speaks: collection
// identity (name, symbol), supply, per-token uri and ownership. It is pure
// computation on bytes, no I/O.
package codec

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	MethodName        = "name"
	MethodSymbol      = "symbol"
	MethodTotalSupply = "totalSupply"
	MethodTokenURI    = "tokenURI"
	MethodURI         = "uri"
	MethodBaseURI     = "baseURI"
	MethodOwnerOf     = "ownerOf"
)

const readerABIJSON = `[
  {"type":"function","name":"name","inputs":[],"outputs":[{"type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"symbol","inputs":[],"outputs":[{"type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"totalSupply","inputs":[],"outputs":[{"type":"uint256"}],"stateMutability":"view"},
  {"type":"function","name":"tokenURI","inputs":[{"type":"uint256"}],"outputs":[{"type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"uri","inputs":[{"type":"uint256"}],"outputs":[{"type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"baseURI","inputs":[],"outputs":[{"type":"string"}],"stateMutability":"view"},
  {"type":"function","name":"ownerOf","inputs":[{"type":"uint256"}],"outputs":[{"type":"address"}],"stateMutability":"view"}
]`

var readerABI abi.ABI

func init() {
	var err error
	readerABI, err = abi.JSON(strings.NewReader(readerABIJSON))
	if err != nil {
		panic(fmt.Errorf("builtin reader abi doesn't parse: %w", err))
	}
}

// DecodeError indicates that raw call-result bytes don't decode as the
// declared return type of the method: truncated words, a string length
// prefix overrunning the buffer, or an empty return from a revert.
type DecodeError struct {
	Method string
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding %s return: %s: %s", e.Method, e.Reason, e.Err)
	}
	return fmt.Sprintf("decoding %s return: %s", e.Method, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Signature returns the canonical signature string of a supported method,
// eg. "tokenURI(uint256)".
func Signature(method string) (string, error) {
	m, found := readerABI.Methods[method]
	if !found {
		return "", fmt.Errorf("method %s is not supported", method)
	}
	return m.Sig, nil
}

// Selector returns the 4-byte method id of a canonical signature string.
func Selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// EncodeCall builds calldata for one of the supported methods. Token ids are
// passed as *big.Int per the uint256 inputs.
func EncodeCall(method string, args ...interface{}) ([]byte, error) {
	data, err := readerABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("couldn't pack %s call: %w", method, err)
	}
	return data, nil
}

// EncodeTokenCall is EncodeCall specialized for the single-uint256 methods.
func EncodeTokenCall(method string, tokenID uint64) ([]byte, error) {
	return EncodeCall(method, new(big.Int).SetUint64(tokenID))
}

func unpackSingle(method string, data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Method: method, Reason: "empty return data"}
	}
	if len(data)%32 != 0 {
		return nil, &DecodeError{
			Method: method,
			Reason: fmt.Sprintf("return data length %d is not a multiple of 32", len(data)),
		}
	}
	values, err := readerABI.Unpack(method, data)
	if err != nil {
		return nil, &DecodeError{Method: method, Reason: "malformed return data", Err: err}
	}
	if len(values) != 1 {
		return nil, &DecodeError{
			Method: method,
			Reason: fmt.Sprintf("expected a single return value, got %d", len(values)),
		}
	}
	return values[0], nil
}

// DecodeReturn decodes a single return value (string, uint256 or address)
// from raw call-result bytes for one of the supported methods.
func DecodeReturn(method string, data []byte) (interface{}, error) {
	return unpackSingle(method, data)
}

func DecodeReturnString(method string, data []byte) (string, error) {
	value, err := unpackSingle(method, data)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", &DecodeError{Method: method, Reason: fmt.Sprintf("return value is %T, not string", value)}
	}
	return s, nil
}

func DecodeReturnUint(method string, data []byte) (*big.Int, error) {
	value, err := unpackSingle(method, data)
	if err != nil {
		return nil, err
	}
	n, ok := value.(*big.Int)
	if !ok {
		return nil, &DecodeError{Method: method, Reason: fmt.Sprintf("return value is %T, not uint256", value)}
	}
	return n, nil
}

func DecodeReturnAddress(method string, data []byte) (ethcommon.Address, error) {
	value, err := unpackSingle(method, data)
	if err != nil {
		return ethcommon.Address{}, err
	}
	addr, ok := value.(ethcommon.Address)
	if !ok {
		return ethcommon.Address{}, &DecodeError{Method: method, Reason: fmt.Sprintf("return value is %T, not address", value)}
	}
	return addr, nil
}
