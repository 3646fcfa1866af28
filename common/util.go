package common

import (
	"fmt"
	"regexp"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsAddress reports whether input looks like a hex encoded ethereum address.
func IsAddress(input string) bool {
	return addressPattern.MatchString(strings.TrimSpace(input))
}

func HexToAddress(hex string) ethcommon.Address {
	return ethcommon.HexToAddress(hex)
}

// NormalizeAddress returns the EIP-55 checksummed form of addr or an error
// if addr is not a valid hex address.
func NormalizeAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if !IsAddress(addr) {
		return "", fmt.Errorf("'%s' is not a valid ethereum address", addr)
	}
	return ethcommon.HexToAddress(addr).Hex(), nil
}

// ShortAddress renders addr in the usual 0x1234…abcd display form.
func ShortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return fmt.Sprintf("%s…%s", addr[:6], addr[len(addr)-4:])
}

// Truncate cuts s to at most max runes, appending … when anything was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
