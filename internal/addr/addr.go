// Package addr validates and formats 20-byte hex addresses.
package addr

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidAddress = errors.New("addr: invalid address")

// Display truncation defaults: "0xabcd...ef12".
const (
	DefaultPrefixLen = 6
	DefaultSuffixLen = 4
)

// Validate checks that s is 40 hex characters after an optional 0x
// prefix, in any casing, and returns the canonical EIP-55 checksummed
// form.
func Validate(s string) (string, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return common.HexToAddress(s).Hex(), nil
}

// IsValid is the predicate form of Validate.
func IsValid(s string) bool {
	return common.IsHexAddress(s)
}

// Truncate shortens an address for display using the default prefix and
// suffix lengths. The 0x marker counts toward the prefix.
func Truncate(s string) string {
	return TruncateN(s, DefaultPrefixLen, DefaultSuffixLen)
}

// TruncateN keeps the first prefixLen and last suffixLen characters with
// "..." between them. Purely cosmetic; the input is sliced as-is.
func TruncateN(s string, prefixLen, suffixLen int) string {
	if prefixLen < 0 {
		prefixLen = 0
	}
	if suffixLen < 0 {
		suffixLen = 0
	}
	if len(s) <= prefixLen+suffixLen {
		return s
	}
	return s[:prefixLen] + "..." + s[len(s)-suffixLen:]
}
