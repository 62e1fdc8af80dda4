package tickmath

import (
	"errors"
	"math"
	"testing"
)

func TestPriceToTick(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		expected int
	}{
		{"unit price", 1.0, 0},
		{"one tick up", 1.0001, 1},
		{"one tick down", 1 / 1.0001, -1},
		{"ten ticks", math.Pow(1.0001, 10), 10},
		{"rounds to nearest", math.Pow(1.0001, 1.6), 2},
		{"rounds down", math.Pow(1.0001, 1.4), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceToTick(tt.price)
			if err != nil {
				t.Fatalf("PriceToTick(%v) error: %v", tt.price, err)
			}
			if got != tt.expected {
				t.Errorf("PriceToTick(%v) = %d, want %d", tt.price, got, tt.expected)
			}
		})
	}
}

func TestPriceToTick_InvalidPrice(t *testing.T) {
	for _, p := range []float64{0, -1, math.Inf(1), math.Inf(-1), math.NaN()} {
		if _, err := PriceToTick(p); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("PriceToTick(%v) error = %v, want ErrInvalidPrice", p, err)
		}
	}
}

func TestPriceToTick_OutOfRange(t *testing.T) {
	// 1.0001^887272 overflows the grid; a price beyond it must be rejected.
	if _, err := PriceToTick(math.MaxFloat64); !errors.Is(err, ErrTickOutOfRange) {
		t.Errorf("huge price error = %v, want ErrTickOutOfRange", err)
	}
	if _, err := PriceToTick(math.SmallestNonzeroFloat64); !errors.Is(err, ErrTickOutOfRange) {
		t.Errorf("tiny price error = %v, want ErrTickOutOfRange", err)
	}
}

func TestTickToPrice(t *testing.T) {
	tests := []struct {
		name     string
		tick     int
		expected float64
	}{
		{"tick zero", 0, 1.0},
		{"tick one", 1, 1.0001},
		{"negative tick", -1, 1 / 1.0001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TickToPrice(tt.tick)
			if err != nil {
				t.Fatalf("TickToPrice(%d) error: %v", tt.tick, err)
			}
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("TickToPrice(%d) = %v, want %v", tt.tick, got, tt.expected)
			}
		})
	}
}

func TestTickToPrice_OutOfRange(t *testing.T) {
	for _, tick := range []int{MinTick - 1, MaxTick + 1} {
		if _, err := TickToPrice(tick); !errors.Is(err, ErrTickOutOfRange) {
			t.Errorf("TickToPrice(%d) error = %v, want ErrTickOutOfRange", tick, err)
		}
	}
}

func TestTickToPrice_Bounds(t *testing.T) {
	for _, tick := range []int{MinTick, MaxTick} {
		p, err := TickToPrice(tick)
		if err != nil {
			t.Fatalf("TickToPrice(%d) error: %v", tick, err)
		}
		if p <= 0 || math.IsInf(p, 0) {
			t.Errorf("TickToPrice(%d) = %v, want positive finite", tick, p)
		}
	}
}

func TestRoundTrip_PriceTickPrice(t *testing.T) {
	// tickToPrice(priceToTick(p)) stays within a relative 1e-4 of p.
	prices := []float64{0.0001, 0.5, 0.9999, 1, 1.0001, 2, 10, 1234.5678, 1e6, 1e12}

	for _, p := range prices {
		tick, err := PriceToTick(p)
		if err != nil {
			t.Fatalf("PriceToTick(%v) error: %v", p, err)
		}
		back, err := TickToPrice(tick)
		if err != nil {
			t.Fatalf("TickToPrice(%d) error: %v", tick, err)
		}
		if rel := math.Abs(back-p) / p; rel > 1e-4 {
			t.Errorf("round trip %v -> %d -> %v: relative error %v > 1e-4", p, tick, back, rel)
		}
	}
}

func TestRoundTrip_TickPriceTick(t *testing.T) {
	for _, tick := range []int{-100000, -1000, -1, 0, 1, 1000, 100000} {
		p, err := TickToPrice(tick)
		if err != nil {
			t.Fatalf("TickToPrice(%d) error: %v", tick, err)
		}
		back, err := PriceToTick(p)
		if err != nil {
			t.Fatalf("PriceToTick(%v) error: %v", p, err)
		}
		if back != tick {
			t.Errorf("round trip %d -> %v -> %d", tick, p, back)
		}
	}
}
