package stockmarket

import (
	"container/heap"
	"fmt"
	"time"
)

// Side identifies which side of the book an order belongs to.
type Side int

const (
	BuySide Side = iota
	SellSide
)

func (s Side) String() string {
	switch s {
	case BuySide:
		return "BUY"
	case SellSide:
		return "SELL"
	default:
		return "unknown"
	}
}

// Order is a pending limit order. It takes no part in portfolio
// accounting; the book only ranks orders by matching priority.
type Order struct {
	symbol   string
	side     Side
	limit    Money
	quantity Quantity
	created  time.Time
}

// NewOrder creates a pending limit order.
func NewOrder(symbol string, side Side, limit Money, quantity Quantity, created time.Time) (Order, error) {
	if symbol == "" {
		return Order{}, fmt.Errorf("%w: symbol is missing", ErrInvalidArgument)
	}
	if limit.IsNegative() {
		return Order{}, fmt.Errorf("%w: limit price %s is negative", ErrInvalidArgument, limit)
	}
	if !quantity.IsPositive() {
		return Order{}, fmt.Errorf("%w: quantity %s is not positive", ErrInvalidArgument, quantity)
	}
	return Order{symbol: symbol, side: side, limit: limit, quantity: quantity, created: created}, nil
}

func (o Order) Symbol() string     { return o.symbol }
func (o Order) Side() Side         { return o.side }
func (o Order) Limit() Money       { return o.limit }
func (o Order) Quantity() Quantity { return o.quantity }
func (o Order) Created() time.Time { return o.created }

// OrderBook ranks the pending orders of one side by matching priority:
// on the BUY side a higher limit price comes first, on the SELL side a
// lower one; the earlier creation time breaks ties.
type OrderBook struct {
	side   Side
	orders orderHeap
}

// NewOrderBook creates an empty book for the given side.
func NewOrderBook(side Side) *OrderBook {
	return &OrderBook{side: side, orders: orderHeap{side: side}}
}

// Side returns the side this book ranks.
func (b *OrderBook) Side() Side { return b.side }

// Len returns the number of pending orders.
func (b *OrderBook) Len() int { return len(b.orders.items) }

// Add inserts an order into the book. The order's side must match the book's.
func (b *OrderBook) Add(o Order) error {
	if o.side != b.side {
		return fmt.Errorf("%w: %s order in a %s book", ErrInvalidArgument, o.side, b.side)
	}
	heap.Push(&b.orders, o)
	return nil
}

// Peek returns the highest-priority order without removing it.
func (b *OrderBook) Peek() (Order, bool) {
	if len(b.orders.items) == 0 {
		return Order{}, false
	}
	return b.orders.items[0], true
}

// Poll removes and returns the highest-priority order.
func (b *OrderBook) Poll() (Order, bool) {
	if len(b.orders.items) == 0 {
		return Order{}, false
	}
	return heap.Pop(&b.orders).(Order), true
}

// orderHeap implements heap.Interface with the side's priority rule.
type orderHeap struct {
	side  Side
	items []Order
}

func (h orderHeap) Len() int      { return len(h.items) }
func (h orderHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h orderHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if !a.limit.Equal(b.limit) {
		if h.side == BuySide {
			return a.limit.GreaterThan(b.limit)
		}
		return a.limit.LessThan(b.limit)
	}
	return a.created.Before(b.created)
}

func (h *orderHeap) Push(x any) { h.items = append(h.items, x.(Order)) }

func (h *orderHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}
