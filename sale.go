package stockmarket

// SaleLine records the part of a sale taken from one purchase lot.
// It is an immutable value, created by Position.SellFIFO and never
// retained by the domain.
type SaleLine struct {
	LotDate       Date     // acquisition date of the consumed lot
	Quantity      Quantity // quantity sold from that lot
	BuyUnitPrice  Money    // cost basis per unit of the lot
	SellUnitPrice Money    // sale price per unit
	Profit        Money    // Quantity × (SellUnitPrice − BuyUnitPrice), may be negative
}

func newSaleLine(lotDate Date, quantity Quantity, buyUnitPrice, sellUnitPrice Money) SaleLine {
	return SaleLine{
		LotDate:       lotDate,
		Quantity:      quantity,
		BuyUnitPrice:  buyUnitPrice,
		SellUnitPrice: sellUnitPrice,
		Profit:        sellUnitPrice.Sub(buyUnitPrice).Mul(quantity),
	}
}

// SaleResult aggregates a completed sale: one SaleLine per lot touched,
// in FIFO order, plus the total realized profit.
type SaleResult struct {
	Symbol      string
	Quantity    Quantity // total quantity sold
	Lines       []SaleLine
	TotalProfit Money
}
