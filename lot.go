package stockmarket

import "fmt"

// PurchaseLot is a single acquisition batch, used for cost basis
// calculations. The purchase date and unit price are immutable; the
// remaining quantity only ever decreases, and never below zero.
type PurchaseLot struct {
	date      Date
	unitPrice Money
	remaining Quantity
}

// NewPurchaseLot creates a lot acquired on the given date at the given
// unit price, with a positive initial quantity.
func NewPurchaseLot(on Date, unitPrice Money, quantity Quantity) (*PurchaseLot, error) {
	if on.IsZero() {
		return nil, fmt.Errorf("%w: purchase date is missing", ErrInvalidArgument)
	}
	if unitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price %s is negative", ErrInvalidArgument, unitPrice)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity %s is not positive", ErrInvalidArgument, quantity)
	}
	return &PurchaseLot{date: on, unitPrice: unitPrice, remaining: quantity}, nil
}

// Date returns the acquisition date of the lot.
func (l *PurchaseLot) Date() Date { return l.date }

// UnitPrice returns the cost basis per unit for this lot.
func (l *PurchaseLot) UnitPrice() Money { return l.unitPrice }

// Remaining returns the quantity still held in this lot.
func (l *PurchaseLot) Remaining() Quantity { return l.remaining }

// Reduce consumes part of the lot. amount must satisfy 0 < amount <= Remaining().
func (l *PurchaseLot) Reduce(amount Quantity) error {
	if !amount.IsPositive() || amount.GreaterThan(l.remaining) {
		return fmt.Errorf("%w: cannot reduce lot of %s by %s", ErrInvalidArgument, l.remaining, amount)
	}
	l.remaining = l.remaining.Sub(amount)
	return nil
}
