// Package tickmath converts between discrete price ticks and prices.
//
// The pool prices sit on a geometric grid where price = 1.0001^tick, so
// adjacent ticks are one basis point apart. Ticks are bounded to the
// range the pool's fixed-point price type can represent.
package tickmath

import (
	"errors"
	"fmt"
	"math"
)

// Base is the grid's price ratio between adjacent ticks.
const Base = 1.0001

// MinTick and MaxTick bound the representable price range.
const (
	MinTick = -887272
	MaxTick = 887272
)

var (
	ErrInvalidPrice   = errors.New("tickmath: price must be a positive finite number")
	ErrTickOutOfRange = errors.New("tickmath: tick out of range")
)

var logBase = math.Log(Base)

// PriceToTick returns the tick whose price is closest to p on the grid:
// round(log(p) / log(1.0001)).
func PriceToTick(p float64) (int, error) {
	if p <= 0 || math.IsInf(p, 0) || math.IsNaN(p) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, p)
	}
	tick := int(math.Round(math.Log(p) / logBase))
	if tick < MinTick || tick > MaxTick {
		return 0, fmt.Errorf("%w: %d", ErrTickOutOfRange, tick)
	}
	return tick, nil
}

// TickToPrice returns 1.0001^tick.
//
// For any valid price p, TickToPrice(PriceToTick(p)) is within a relative
// 1e-4 of p; the grid has finite resolution so exact recovery is not
// possible.
func TickToPrice(tick int) (float64, error) {
	if tick < MinTick || tick > MaxTick {
		return 0, fmt.Errorf("%w: %d", ErrTickOutOfRange, tick)
	}
	return math.Pow(Base, float64(tick)), nil
}
