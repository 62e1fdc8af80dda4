// Package memo encodes short UTF-8 notes into the fixed 32-byte memo
// field carried by token transfers.
package memo

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// FieldSize is the on-chain memo field width in bytes.
const FieldSize = 32

// MaxLen is the longest memo in bytes. One byte of the field stays zero
// so decoders can always find the end of the text.
const MaxLen = FieldSize - 1

var ErrTooLong = errors.New("memo: too long")

// Encode right-pads the UTF-8 bytes of text into a 32-byte field and
// returns it as a fixed-length hex string (0x + 64 hex characters).
func Encode(text string) (string, error) {
	field, err := EncodeBytes32(text)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(field[:]), nil
}

// EncodeBytes32 is the raw form of Encode, for ABI packing.
func EncodeBytes32(text string) ([FieldSize]byte, error) {
	var field [FieldSize]byte
	if len(text) > MaxLen {
		return field, fmt.Errorf("%w: %d bytes, max %d", ErrTooLong, len(text), MaxLen)
	}
	copy(field[:], text)
	return field, nil
}

// Decode reverses Encode, trimming the zero padding.
func Decode(s string) (string, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return "", fmt.Errorf("memo: %w", err)
	}
	if len(b) != FieldSize {
		return "", fmt.Errorf("memo: field must be %d bytes, got %d", FieldSize, len(b))
	}
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end]), nil
}
