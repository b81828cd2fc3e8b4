package stockmarket

import (
	"errors"
	"testing"
	"time"
)

func mustOrder(t *testing.T, symbol string, side Side, limit float64, created time.Time) Order {
	t.Helper()
	o, err := NewOrder(symbol, side, usd(limit), Q(10), created)
	if err != nil {
		t.Fatalf("NewOrder(%q): %v", symbol, err)
	}
	return o
}

func TestOrderBookPriority(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		side   Side
		limits []float64
		want   []float64
	}{
		{name: "buy: higher limit first", side: BuySide, limits: []float64{100, 105, 95}, want: []float64{105, 100, 95}},
		{name: "sell: lower limit first", side: SellSide, limits: []float64{100, 105, 95}, want: []float64{95, 100, 105}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book := NewOrderBook(tt.side)
			for i, limit := range tt.limits {
				o := mustOrder(t, "AAPL", tt.side, limit, t0.Add(time.Duration(i)*time.Minute))
				if err := book.Add(o); err != nil {
					t.Fatalf("Add: %v", err)
				}
			}

			for i, want := range tt.want {
				o, ok := book.Poll()
				if !ok {
					t.Fatalf("Poll()[%d] empty, want limit %v", i, want)
				}
				if !o.Limit().Equal(usd(want)) {
					t.Errorf("Poll()[%d] limit = %s, want %s", i, o.Limit(), usd(want))
				}
			}
			if _, ok := book.Poll(); ok {
				t.Errorf("Poll() on a drained book reports an order")
			}
		})
	}
}

func TestOrderBookCreationTiebreak(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	book := NewOrderBook(BuySide)

	// same limit: the earlier order wins, regardless of insertion order.
	late := mustOrder(t, "LATE", BuySide, 100, t0.Add(time.Hour))
	early := mustOrder(t, "EARLY", BuySide, 100, t0)
	if err := book.Add(late); err != nil {
		t.Fatal(err)
	}
	if err := book.Add(early); err != nil {
		t.Fatal(err)
	}

	o, ok := book.Peek()
	if !ok || o.Symbol() != "EARLY" {
		t.Errorf("Peek() = %q, want EARLY", o.Symbol())
	}
	// Peek does not consume.
	if got := book.Len(); got != 2 {
		t.Errorf("Len() = %d after Peek, want 2", got)
	}
}

func TestOrderBookSideMismatch(t *testing.T) {
	book := NewOrderBook(BuySide)
	o := mustOrder(t, "AAPL", SellSide, 100, time.Now())

	if err := book.Add(o); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Add(sell order) err = %v, want ErrInvalidArgument", err)
	}
	if got := book.Len(); got != 0 {
		t.Errorf("Len() = %d after rejected order, want 0", got)
	}
}

func TestNewOrderValidation(t *testing.T) {
	now := time.Now()
	if _, err := NewOrder("", BuySide, usd(100), Q(10), now); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty symbol err = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewOrder("AAPL", BuySide, usd(-1), Q(10), now); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative limit err = %v, want ErrInvalidArgument", err)
	}
	if _, err := NewOrder("AAPL", BuySide, usd(100), Q(0), now); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero quantity err = %v, want ErrInvalidArgument", err)
	}
}
