package memo

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexFieldPattern = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

func TestEncode(t *testing.T) {
	got, err := Encode("test")
	require.NoError(t, err)

	assert.Regexp(t, hexFieldPattern, got)
	assert.Equal(t, "0x74657374"+strings.Repeat("00", 28), got)
}

func TestEncode_Empty(t *testing.T) {
	got, err := Encode("")
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("00", 32), got)
}

func TestEncode_MaxLength(t *testing.T) {
	got, err := Encode(strings.Repeat("x", MaxLen))
	require.NoError(t, err)
	assert.Regexp(t, hexFieldPattern, got)
}

func TestEncode_TooLong(t *testing.T) {
	_, err := Encode(strings.Repeat("x", 32))
	assert.True(t, errors.Is(err, ErrTooLong), "got %v", err)
}

func TestEncode_MultibyteCountsBytes(t *testing.T) {
	// 11 runes, 33 bytes: over the limit even though the rune count is not.
	_, err := Encode(strings.Repeat("€", 11))
	assert.True(t, errors.Is(err, ErrTooLong), "got %v", err)

	// 10 runes, 30 bytes: fits.
	got, err := Encode(strings.Repeat("€", 10))
	require.NoError(t, err)
	assert.Regexp(t, hexFieldPattern, got)
}

func TestDecode_RoundTrip(t *testing.T) {
	for _, text := range []string{"", "test", "hello world", "café", strings.Repeat("x", MaxLen)} {
		encoded, err := Encode(text)
		require.NoError(t, err)

		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, text, decoded)
	}
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode("not hex")
	assert.Error(t, err)

	_, err = Decode("0x1234")
	assert.Error(t, err)
}
