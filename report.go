package stockmarket

import (
	"slices"
)

// ReportPosition is one line of a portfolio report.
type ReportPosition struct {
	Type     AssetType
	Symbol   string
	Name     string
	Quantity Quantity
	Value    Money // market value of the whole position
}

// Report is a point-in-time snapshot of the portfolio, ready for
// rendering: positions grouped by asset variant (shares first, then
// commodities, then currencies) and, within a group, sorted by
// descending market value.
type Report struct {
	Cash        Money
	Positions   []ReportPosition
	AssetsValue Money
	TotalValue  Money
}

// NewReport builds a report from the current portfolio state.
func NewReport(p *Portfolio) *Report {
	r := &Report{
		Cash:        p.Cash(),
		AssetsValue: p.AssetsValue(),
		TotalValue:  p.TotalValue(),
	}

	for _, position := range p.Positions() {
		a := position.Asset()
		r.Positions = append(r.Positions, ReportPosition{
			Type:     a.Type(),
			Symbol:   a.Symbol(),
			Name:     a.Name(),
			Quantity: position.TotalQuantity(),
			Value:    position.MarketValue(),
		})
	}

	slices.SortStableFunc(r.Positions, func(a, b ReportPosition) int {
		if a.Type != b.Type {
			return int(a.Type) - int(b.Type)
		}
		// descending market value within a variant group
		switch {
		case a.Value.GreaterThan(b.Value):
			return -1
		case b.Value.GreaterThan(a.Value):
			return 1
		default:
			return 0
		}
	})

	return r
}
