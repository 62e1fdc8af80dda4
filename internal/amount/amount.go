// Package amount provides fixed-point token amount utilities.
//
// Token amounts use 6 decimal places and are stored as big.Int in the
// smallest unit (1 token = 1,000,000 units). Parsing of text input uses
// exact integer arithmetic on the decimal digits so "0.000001" parses to
// exactly 1; floating-point input goes through a separate multiply-and-
// round path that accepts the representation error inherent to floats.
package amount

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Decimals is the fixed number of fractional digits.
const Decimals = 6

// BpsDenom is the basis-point denominator (100% = 10000 bps).
const BpsDenom = 10000

// Scale is 10^Decimals, the number of smallest units per whole token.
var Scale = big.NewInt(1_000_000)

var (
	ErrInvalidAmount      = errors.New("amount: invalid amount")
	ErrInvalidBasisPoints = errors.New("amount: basis points out of range")
	ErrInvalidLiquidity   = errors.New("amount: invalid liquidity")
)

// Parse converts a decimal string (e.g. "1.50") to its smallest-unit
// big.Int representation (1500000).
//
// Rules:
//   - An optional leading sign is accepted
//   - At most one decimal point, digits only on either side
//   - At most 6 fractional digits; more is rejected, never silently
//     truncated
//   - Empty input (or a bare "." / "-") is rejected
func Parse(s string) (*big.Int, error) {
	in := s
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, in)
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, in)
	}
	if len(frac) > Decimals {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, in, Decimals)
	}

	for len(frac) < Decimals {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}

	v, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, in)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// isDigits reports whether s consists only of ASCII digits. The empty
// string counts as digits; callers reject the all-empty case themselves.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseFloat converts a floating-point token amount to smallest units by
// multiplying by 10^6 and rounding half away from zero. Use Parse for
// text input; this path carries the float's binary representation error.
func ParseFloat(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	scaled := math.Round(f * 1e6)
	// Scaling can overflow to infinity even for finite input.
	if math.IsInf(scaled, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, f)
	}
	v, _ := new(big.Float).SetFloat64(scaled).Int(nil)
	return v, nil
}

// Format converts a smallest-unit big.Int to its minimal decimal string:
// integer part, then fractional digits with trailing zeros trimmed, and
// no decimal point at all when the fraction is zero.
//
//	100000000 -> "100"
//	1500000   -> "1.5"
//	1         -> "0.000001"
func Format(v *big.Int) string {
	if v == nil || v.Sign() == 0 {
		return "0"
	}
	neg := v.Sign() < 0
	abs := new(big.Int).Abs(v)

	q, r := new(big.Int).QuoRem(abs, Scale, new(big.Int))
	out := q.String()
	if r.Sign() != 0 {
		frac := fmt.Sprintf("%0*d", Decimals, r.Int64())
		out += "." + strings.TrimRight(frac, "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}

// ApplySlippage returns floor(v * (10000 - bps) / 10000), the minimum
// acceptable amount after allowing for a slippage tolerance of bps basis
// points. Integer arithmetic throughout; no rounding drift on large
// amounts.
func ApplySlippage(v *big.Int, bps int) (*big.Int, error) {
	if v == nil || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: slippage amount must be non-negative", ErrInvalidAmount)
	}
	if bps < 0 || bps > BpsDenom {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBasisPoints, bps)
	}
	out := new(big.Int).Mul(v, big.NewInt(int64(BpsDenom-bps)))
	return out.Quo(out, big.NewInt(BpsDenom)), nil
}

// ProRataShare returns floor(total * part / whole): the liquidity-weighted
// share of total owned by a position holding part out of whole.
func ProRataShare(total, part, whole *big.Int) (*big.Int, error) {
	if total == nil || total.Sign() < 0 {
		return nil, fmt.Errorf("%w: total must be non-negative", ErrInvalidAmount)
	}
	if whole == nil || whole.Sign() <= 0 {
		return nil, fmt.Errorf("%w: whole must be positive", ErrInvalidLiquidity)
	}
	if part == nil || part.Sign() < 0 || part.Cmp(whole) > 0 {
		return nil, fmt.Errorf("%w: part must be in [0, whole]", ErrInvalidLiquidity)
	}
	out := new(big.Int).Mul(total, part)
	return out.Quo(out, whole), nil
}
