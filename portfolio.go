package stockmarket

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Portfolio owns a cash ledger and one position per held symbol.
//
// A position exists for a symbol if and only if its total quantity is
// positive: positions are created on the first buy of a symbol and
// deleted when a sale brings the quantity to zero.
type Portfolio struct {
	cash      Money
	positions map[string]*Position
}

// NewPortfolio creates a portfolio holding the given initial cash.
func NewPortfolio(initialCash Money) (*Portfolio, error) {
	if initialCash.IsNegative() {
		return nil, fmt.Errorf("%w: initial cash %s is negative", ErrInvalidArgument, initialCash)
	}
	return &Portfolio{
		cash:      initialCash,
		positions: make(map[string]*Position),
	}, nil
}

// Cash returns the available cash.
func (p *Portfolio) Cash() Money { return p.cash }

// Currency returns the portfolio's cash currency.
func (p *Portfolio) Currency() string { return p.cash.Currency() }

// HoldingsCount returns the number of open positions.
func (p *Portfolio) HoldingsCount() int { return len(p.positions) }

// Position returns the open position for symbol, or nil if none.
func (p *Portfolio) Position(symbol string) *Position { return p.positions[symbol] }

// Positions iterates over the open positions in sorted symbol order.
func (p *Portfolio) Positions() iter.Seq2[string, *Position] {
	return func(yield func(string, *Position) bool) {
		symbols := slices.Collect(maps.Keys(p.positions))
		slices.Sort(symbols)
		for _, symbol := range symbols {
			if !yield(symbol, p.positions[symbol]) {
				return
			}
		}
	}
}

// Buy acquires quantity units of asset on the given date.
//
// The cash cost is the asset's acquisition cost at its current market
// price (including any variant fee). The supplied unitPrice is recorded
// as the new lot's cost basis only; it does not enter the cash movement.
//
// Buy is atomic: when the cost exceeds the available cash it fails with
// ErrInsufficientFunds and nothing changes.
func (p *Portfolio) Buy(asset Asset, quantity Quantity, on Date, unitPrice Money) error {
	if asset == nil {
		return fmt.Errorf("%w: asset is missing", ErrInvalidArgument)
	}
	if !quantity.IsPositive() {
		return fmt.Errorf("%w: quantity %s is not positive", ErrInvalidArgument, quantity)
	}

	cost := asset.AcquisitionCost(quantity)
	if cost.GreaterThan(p.cash) {
		return fmt.Errorf("%w: buying %s of %q costs %s, cash is %s",
			ErrInsufficientFunds, quantity, asset.Symbol(), cost, p.cash)
	}

	lot, err := NewPurchaseLot(on, unitPrice, quantity)
	if err != nil {
		return err
	}

	position := p.positions[asset.Symbol()]
	if position == nil {
		position, err = NewPosition(asset)
		if err != nil {
			return err
		}
		p.positions[asset.Symbol()] = position
	}

	if err := position.AddLot(lot); err != nil {
		return err
	}
	p.cash = p.cash.Sub(cost)
	return nil
}

// Sell disposes of quantity units of the symbol at sellUnitPrice on the
// given date. It consumes lots FIFO, credits cash with quantity ×
// sellUnitPrice (flat, no fee) and deletes the position when its quantity
// falls to zero. The returned SaleResult details the per-lot breakdown.
func (p *Portfolio) Sell(symbol string, quantity Quantity, sellUnitPrice Money, on Date) (SaleResult, error) {
	position := p.positions[symbol]
	if position == nil {
		return SaleResult{}, fmt.Errorf("%w: no position for %q", ErrUnknownSymbol, symbol)
	}

	result, err := position.SellFIFO(quantity, sellUnitPrice)
	if err != nil {
		return SaleResult{}, err
	}

	p.cash = p.cash.Add(sellUnitPrice.Mul(quantity))

	if position.TotalQuantity().IsZero() {
		delete(p.positions, symbol)
	}

	return result, nil
}

// AssetsValue returns the sum of the market values of all open positions.
func (p *Portfolio) AssetsValue() Money {
	total := M(0, p.cash.Currency())
	for _, position := range p.Positions() {
		total = total.Add(position.MarketValue())
	}
	return total
}

// TotalValue returns cash plus the market value of all positions.
func (p *Portfolio) TotalValue() Money {
	return p.cash.Add(p.AssetsValue())
}
