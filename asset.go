package stockmarket

import "fmt"

// AssetType identifies the concrete variant of an Asset. The enumeration
// order (Share < Commodity < Currency) is also the grouping order used by
// reports.
type AssetType int

const (
	ShareType AssetType = iota
	CommodityType
	CurrencyType
)

func (t AssetType) String() string {
	switch t {
	case ShareType:
		return "SHARE"
	case CommodityType:
		return "COMMODITY"
	case CurrencyType:
		return "CURRENCY"
	default:
		return "unknown"
	}
}

// ParseAssetType parses a persistence type tag into an AssetType.
func ParseAssetType(s string) (AssetType, error) {
	switch s {
	case "SHARE":
		return ShareType, nil
	case "COMMODITY":
		return CommodityType, nil
	case "CURRENCY":
		return CurrencyType, nil
	default:
		return 0, fmt.Errorf("%w: unknown asset type %q", ErrInvalidArgument, s)
	}
}

// Asset is a tradeable instrument: an immutable identity (symbol, name)
// plus a market price and per-variant valuation rules.
//
// RealValue is the current liquidation value of a quantity of the asset;
// AcquisitionCost is the cost of buying that quantity now at the current
// market price. Both are pure functions of the quantity.
type Asset interface {
	Type() AssetType
	Symbol() string
	Name() string
	MarketPrice() Money
	RealValue(quantity Quantity) Money
	AcquisitionCost(quantity Quantity) Money
}

// SameAsset reports whether a and b identify the same instrument.
// Identity is the (variant, symbol) pair: two different variants with the
// same symbol are distinct assets.
func SameAsset(a, b Asset) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Type() == b.Type() && a.Symbol() == b.Symbol()
}

// asset carries the fields shared by all variants.
type asset struct {
	symbol string
	name   string
	price  Money
}

func newAsset(symbol, name string, marketPrice Money) (asset, error) {
	if symbol == "" {
		return asset{}, fmt.Errorf("%w: symbol is missing", ErrInvalidArgument)
	}
	if name == "" {
		return asset{}, fmt.Errorf("%w: name is missing", ErrInvalidArgument)
	}
	if marketPrice.IsNegative() {
		return asset{}, fmt.Errorf("%w: market price %s is negative", ErrInvalidArgument, marketPrice)
	}
	return asset{symbol: symbol, name: name, price: marketPrice}, nil
}

func (a asset) Symbol() string     { return a.symbol }
func (a asset) Name() string       { return a.name }
func (a asset) MarketPrice() Money { return a.price }

// shareFee is the fixed manipulation fee charged on every share acquisition.
const shareFee = 5.0

// Share is an equity instrument. Its liquidation value is the plain market
// value; buying it costs a fixed manipulation fee on top.
type Share struct {
	asset
}

// NewShare creates a Share.
func NewShare(symbol, name string, marketPrice Money) (*Share, error) {
	a, err := newAsset(symbol, name, marketPrice)
	if err != nil {
		return nil, err
	}
	return &Share{asset: a}, nil
}

func (s *Share) Type() AssetType { return ShareType }

func (s *Share) RealValue(quantity Quantity) Money { return s.price.Mul(quantity) }

func (s *Share) AcquisitionCost(quantity Quantity) Money {
	return s.price.Mul(quantity).Add(M(shareFee, s.price.Currency()))
}

// Commodity is a physical good whose liquidation value is reduced by a
// volume-dependent storage cost.
type Commodity struct {
	asset
	storageRate Quantity // storage cost per unit, as a ratio of the value
}

// NewCommodity creates a Commodity. storageRate is the per-unit storage
// cost ratio; the total storage cost grows with the quantity held but is
// capped at 100% of the value.
func NewCommodity(symbol, name string, marketPrice Money, storageRate Quantity) (*Commodity, error) {
	a, err := newAsset(symbol, name, marketPrice)
	if err != nil {
		return nil, err
	}
	if storageRate.IsNegative() {
		return nil, fmt.Errorf("%w: storage rate %s is negative", ErrInvalidArgument, storageRate)
	}
	return &Commodity{asset: a, storageRate: storageRate}, nil
}

func (c *Commodity) Type() AssetType { return CommodityType }

// StorageRate returns the per-unit storage cost ratio.
func (c *Commodity) StorageRate() Quantity { return c.storageRate }

func (c *Commodity) RealValue(quantity Quantity) Money {
	base := c.price.Mul(quantity)

	// total storage cost ratio grows with volume, capped at 100% of the value.
	rate := c.storageRate.Mul(quantity).Min(Q(1))

	return base.Mul(Q(1).Sub(rate))
}

func (c *Commodity) AcquisitionCost(quantity Quantity) Money { return c.price.Mul(quantity) }

// Currency is a foreign-exchange instrument quoted with a bid/ask spread.
// Liquidation happens at the bid price (market price minus spread, floored
// at zero); acquisition is assumed to happen at the market price.
type Currency struct {
	asset
	spread Money
}

// NewCurrency creates a Currency with the given bid/ask spread.
func NewCurrency(symbol, name string, marketPrice, spread Money) (*Currency, error) {
	a, err := newAsset(symbol, name, marketPrice)
	if err != nil {
		return nil, err
	}
	if spread.IsNegative() {
		return nil, fmt.Errorf("%w: spread %s is negative", ErrInvalidArgument, spread)
	}
	return &Currency{asset: a, spread: spread}, nil
}

func (c *Currency) Type() AssetType { return CurrencyType }

// Spread returns the bid/ask spread.
func (c *Currency) Spread() Money { return c.spread }

func (c *Currency) RealValue(quantity Quantity) Money {
	bid := c.price.Sub(c.spread)
	if bid.IsNegative() {
		bid = M(0, c.price.Currency())
	}
	return bid.Mul(quantity)
}

func (c *Currency) AcquisitionCost(quantity Quantity) Money { return c.price.Mul(quantity) }
