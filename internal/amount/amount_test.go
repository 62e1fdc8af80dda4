package amount

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestParse_ValidAmounts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"whole hundred", "100", 100_000_000},
		{"one and a half", "1.5", 1_500_000},
		{"smallest unit", "0.000001", 1},
		{"one token", "1", 1_000_000},
		{"fifty cents", "0.50", 500_000},
		{"six decimals", "1.123456", 1_123_456},
		{"no whole part", ".25", 250_000},
		{"trailing dot", "2.", 2_000_000},
		{"leading zeros", "007.5", 7_500_000},
		{"explicit plus", "+3", 3_000_000},
		{"negative", "-1.5", -1_500_000},
		{"zero", "0", 0},
		{"zero with decimals", "0.000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if got.Int64() != tt.expected {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got.Int64(), tt.expected)
			}
		})
	}
}

func TestParse_InvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bare dot", "."},
		{"bare sign", "-"},
		{"alphabetic", "abc"},
		{"trailing letters", "12abc"},
		{"multiple dots", "1.2.3"},
		{"seven decimals", "1.1234567"},
		{"comma separator", "1,5"},
		{"embedded space", "1 5"},
		{"hex digits", "0x10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidAmount", tt.input, err)
			}
		})
	}
}

func TestParse_VeryLargeAmount(t *testing.T) {
	got, err := Parse("99999999999999999999.999999")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	expected, _ := new(big.Int).SetString("99999999999999999999999999", 10)
	if got.Cmp(expected) != 0 {
		t.Errorf("Parse very large = %s, want %s", got, expected)
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int64
	}{
		{"whole", 100, 100_000_000},
		{"fraction", 1.5, 1_500_000},
		{"smallest unit", 0.000001, 1},
		{"round up", 0.0000015, 2},
		{"negative", -2.25, -2_250_000},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFloat(tt.input)
			if err != nil {
				t.Fatalf("ParseFloat(%v) error: %v", tt.input, err)
			}
			if got.Int64() != tt.expected {
				t.Errorf("ParseFloat(%v) = %d, want %d", tt.input, got.Int64(), tt.expected)
			}
		})
	}
}

func TestParseFloat_NonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := ParseFloat(f); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ParseFloat(%v) error = %v, want ErrInvalidAmount", f, err)
		}
	}
}

func TestParseFloat_ScaleOverflow(t *testing.T) {
	// Finite inputs so large that multiplying by 10^6 overflows to Inf
	// must be rejected, never returned as a nil amount.
	for _, f := range []float64{1e303, -1e303, math.MaxFloat64} {
		v, err := ParseFloat(f)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("ParseFloat(%v) error = %v, want ErrInvalidAmount", f, err)
		}
		if err == nil && v == nil {
			t.Errorf("ParseFloat(%v) returned nil amount with nil error", f)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{"hundred", 100_000_000, "100"},
		{"one and a half", 1_500_000, "1.5"},
		{"smallest unit", 1, "0.000001"},
		{"zero", 0, "0"},
		{"whole omits point", 42_000_000, "42"},
		{"trims trailing zeros", 1_230_000, "1.23"},
		{"negative", -1_500_000, "-1.5"},
		{"sub-unit", 10, "0.00001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(big.NewInt(tt.input))
			if got != tt.expected {
				t.Errorf("Format(%d) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormat_Nil(t *testing.T) {
	if got := Format(nil); got != "0" {
		t.Errorf("Format(nil) = %q, want \"0\"", got)
	}
}

func TestRoundTrip_ParseFormat(t *testing.T) {
	// Parse(Format(n)) == n for any value with at most 6 fractional digits.
	values := []int64{0, 1, 7, 999_999, 1_000_000, 1_500_000, 100_000_000,
		123_456_789, 999_999_999_999, -1, -1_500_000}

	for _, n := range values {
		want := big.NewInt(n)
		got, err := Parse(Format(want))
		if err != nil {
			t.Fatalf("Parse(Format(%d)) error: %v", n, err)
		}
		if got.Cmp(want) != 0 {
			t.Errorf("Parse(Format(%d)) = %s", n, got)
		}
	}
}

func TestApplySlippage(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		bps      int
		expected int64
	}{
		{"one percent", 100_000_000, 100, 99_000_000},
		{"half percent", 100_000_000, 50, 99_500_000},
		{"zero bps is identity", 123_456_789, 0, 123_456_789},
		{"full tolerance", 123_456_789, 10000, 0},
		{"floors the result", 101, 50, 100}, // 101*9950/10000 = 100.4945
		{"zero amount", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplySlippage(big.NewInt(tt.amount), tt.bps)
			if err != nil {
				t.Fatalf("ApplySlippage error: %v", err)
			}
			if got.Int64() != tt.expected {
				t.Errorf("ApplySlippage(%d, %d) = %d, want %d", tt.amount, tt.bps, got.Int64(), tt.expected)
			}
		})
	}
}

func TestApplySlippage_LargeAmountNoDrift(t *testing.T) {
	// 10^30 * 9900 / 10000 must be exact; a float64 intermediate would not be.
	v, _ := new(big.Int).SetString("1000000000000000000000000000000", 10)
	want, _ := new(big.Int).SetString("990000000000000000000000000000", 10)

	got, err := ApplySlippage(v, 100)
	if err != nil {
		t.Fatalf("ApplySlippage error: %v", err)
	}
	if got.Cmp(want) != 0 {
		t.Errorf("ApplySlippage large = %s, want %s", got, want)
	}
}

func TestApplySlippage_Invalid(t *testing.T) {
	if _, err := ApplySlippage(big.NewInt(-1), 100); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative amount error = %v, want ErrInvalidAmount", err)
	}
	if _, err := ApplySlippage(nil, 100); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("nil amount error = %v, want ErrInvalidAmount", err)
	}
	for _, bps := range []int{-1, 10001} {
		if _, err := ApplySlippage(big.NewInt(1), bps); !errors.Is(err, ErrInvalidBasisPoints) {
			t.Errorf("bps=%d error = %v, want ErrInvalidBasisPoints", bps, err)
		}
	}
}

func TestProRataShare(t *testing.T) {
	tests := []struct {
		name                string
		total, part, whole  int64
		expected            int64
	}{
		{"half", 100, 50, 100, 50},
		{"full position gets everything", 123_456, 77, 77, 123_456},
		{"zero part", 100, 0, 5, 0},
		{"floors", 100, 1, 3, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProRataShare(big.NewInt(tt.total), big.NewInt(tt.part), big.NewInt(tt.whole))
			if err != nil {
				t.Fatalf("ProRataShare error: %v", err)
			}
			if got.Int64() != tt.expected {
				t.Errorf("ProRataShare(%d, %d, %d) = %d, want %d",
					tt.total, tt.part, tt.whole, got.Int64(), tt.expected)
			}
		})
	}
}

func TestProRataShare_Invalid(t *testing.T) {
	if _, err := ProRataShare(big.NewInt(1), big.NewInt(1), big.NewInt(0)); !errors.Is(err, ErrInvalidLiquidity) {
		t.Errorf("zero whole error = %v, want ErrInvalidLiquidity", err)
	}
	if _, err := ProRataShare(big.NewInt(1), big.NewInt(2), big.NewInt(1)); !errors.Is(err, ErrInvalidLiquidity) {
		t.Errorf("part > whole error = %v, want ErrInvalidLiquidity", err)
	}
	if _, err := ProRataShare(big.NewInt(-1), big.NewInt(1), big.NewInt(1)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative total error = %v, want ErrInvalidAmount", err)
	}
}
