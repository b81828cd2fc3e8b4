package stockmarket

import (
	"fmt"
	"iter"
)

// Position holds every open purchase lot of one asset, in strict
// acquisition order (oldest first). Sales consume lots FIFO.
type Position struct {
	asset Asset
	lots  []*PurchaseLot // deque: pop from front on sale, push to back on buy
}

// NewPosition creates an empty position for the given asset.
func NewPosition(asset Asset) (*Position, error) {
	if asset == nil {
		return nil, fmt.Errorf("%w: asset is missing", ErrInvalidArgument)
	}
	return &Position{asset: asset}, nil
}

// Asset returns the instrument this position holds.
func (p *Position) Asset() Asset { return p.asset }

// AddLot appends a lot at the tail of the acquisition sequence.
func (p *Position) AddLot(lot *PurchaseLot) error {
	if lot == nil {
		return fmt.Errorf("%w: lot is missing", ErrInvalidArgument)
	}
	p.lots = append(p.lots, lot)
	return nil
}

// Lots iterates over the open lots, oldest first.
func (p *Position) Lots() iter.Seq[*PurchaseLot] {
	return func(yield func(*PurchaseLot) bool) {
		for _, lot := range p.lots {
			if !yield(lot) {
				return
			}
		}
	}
}

// LotCount returns the number of open lots.
func (p *Position) LotCount() int { return len(p.lots) }

// TotalQuantity returns the sum of the remaining quantities of all lots.
func (p *Position) TotalQuantity() Quantity {
	var sum Quantity
	for _, lot := range p.lots {
		sum = sum.Add(lot.Remaining())
	}
	return sum
}

// MarketValue returns the liquidation value of the whole position at the
// asset's current market price.
func (p *Position) MarketValue() Money {
	return p.asset.RealValue(p.TotalQuantity())
}

// SellFIFO sells quantityToSell units at sellUnitPrice, consuming lots
// oldest-first. It emits at most one SaleLine per lot touched and removes
// lots that reach zero.
//
// The operation is all-or-nothing: the availability check happens before
// any lot is mutated, so a failed sale leaves the position untouched.
func (p *Position) SellFIFO(quantityToSell Quantity, sellUnitPrice Money) (SaleResult, error) {
	if !quantityToSell.IsPositive() {
		return SaleResult{}, fmt.Errorf("%w: quantity %s is not positive", ErrInvalidArgument, quantityToSell)
	}
	if sellUnitPrice.IsNegative() {
		return SaleResult{}, fmt.Errorf("%w: sell price %s is negative", ErrInvalidArgument, sellUnitPrice)
	}

	available := p.TotalQuantity()
	if quantityToSell.GreaterThan(available) {
		return SaleResult{}, fmt.Errorf("%w: requested %s of %q, only %s held",
			ErrInsufficientQuantity, quantityToSell, p.asset.Symbol(), available)
	}

	result := SaleResult{
		Symbol:      p.asset.Symbol(),
		Quantity:    quantityToSell,
		TotalProfit: M(0, sellUnitPrice.Currency()),
	}

	remaining := quantityToSell
	for remaining.IsPositive() {
		lot := p.lots[0] // oldest

		fromLot := remaining.Min(lot.Remaining())

		line := newSaleLine(lot.Date(), fromLot, lot.UnitPrice(), sellUnitPrice)
		result.Lines = append(result.Lines, line)
		result.TotalProfit = result.TotalProfit.Add(line.Profit)

		// cannot fail: fromLot <= lot.Remaining() by construction
		if err := lot.Reduce(fromLot); err != nil {
			return SaleResult{}, err
		}
		remaining = remaining.Sub(fromLot)

		if lot.Remaining().IsZero() {
			p.lots = p.lots[1:]
		}
	}

	return result, nil
}
