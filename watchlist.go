package stockmarket

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// WatchList is a set of symbols the investor keeps an eye on. It carries
// no quantities; it only answers membership questions.
type WatchList struct {
	symbols map[string]struct{}
}

// NewWatchList creates an empty watch list.
func NewWatchList() *WatchList {
	return &WatchList{symbols: make(map[string]struct{})}
}

// Add inserts a symbol and reports whether it was not already present.
func (w *WatchList) Add(symbol string) (bool, error) {
	if symbol == "" {
		return false, fmt.Errorf("%w: symbol is missing", ErrInvalidArgument)
	}
	if _, ok := w.symbols[symbol]; ok {
		return false, nil
	}
	w.symbols[symbol] = struct{}{}
	return true, nil
}

// Contains reports whether the symbol is on the list.
func (w *WatchList) Contains(symbol string) bool {
	_, ok := w.symbols[symbol]
	return ok
}

// Len returns the number of watched symbols.
func (w *WatchList) Len() int { return len(w.symbols) }

// Symbols iterates over the watched symbols in sorted order.
func (w *WatchList) Symbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		symbols := slices.Collect(maps.Keys(w.symbols))
		slices.Sort(symbols)
		for _, symbol := range symbols {
			if !yield(symbol) {
				return
			}
		}
	}
}
