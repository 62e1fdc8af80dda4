package addr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase to checksum",
			input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			want:  "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:  "uppercase to checksum",
			input: "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED",
			want:  "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:  "already checksummed",
			input: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			want:  "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:  "missing 0x prefix",
			input: "fb6916095ca1df60bb79ce92ce3ea74c37c5d359",
			want:  "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"garbage", "invalid"},
		{"too short", "0x123"},
		{"too long", "0xabcdef1234567890abcdef1234567890abcdef1234"},
		{"non-hex characters", "0xzzcdef1234567890abcdef1234567890abcdef12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.input)
			assert.True(t, errors.Is(err, ErrInvalidAddress), "got %v", err)
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("0xabcdef1234567890abcdef1234567890abcdef12"))
	assert.True(t, IsValid("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"))
	assert.False(t, IsValid("invalid"))
	assert.False(t, IsValid("0x123"))
	assert.False(t, IsValid(""))
}

func TestTruncate(t *testing.T) {
	got := Truncate("0xabcdef1234567890abcdef1234567890abcdef12")
	assert.Equal(t, "0xabcd...ef12", got)
}

func TestTruncateN(t *testing.T) {
	addr := "0xabcdef1234567890abcdef1234567890abcdef12"

	assert.Equal(t, "0xabcdef12...cdef12", TruncateN(addr, 10, 6))
	assert.Equal(t, "0x...2", TruncateN(addr, 2, 1))

	// Inputs shorter than the window pass through untouched.
	assert.Equal(t, "0x1234", TruncateN("0x1234", 6, 4))
	assert.Equal(t, "", TruncateN("", 6, 4))

	// Negative lengths clamp to zero.
	assert.Equal(t, "...ef12", TruncateN(addr, -1, 4))
}
