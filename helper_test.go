package stockmarket

import "testing"

// usd is a shorthand for Money amounts in tests.
func usd(v float64) Money { return M(v, "USD") }

// mustShare creates a Share or fails the test.
func mustShare(t *testing.T, symbol string, price float64) *Share {
	t.Helper()
	s, err := NewShare(symbol, symbol+" Inc.", usd(price))
	if err != nil {
		t.Fatalf("NewShare(%q): %v", symbol, err)
	}
	return s
}

// mustBuy records a purchase or fails the test.
func mustBuy(t *testing.T, p *Portfolio, asset Asset, qty float64, day string, unitPrice float64) {
	t.Helper()
	if err := p.Buy(asset, Q(qty), MustParseDate(day), usd(unitPrice)); err != nil {
		t.Fatalf("Buy(%q, %v): %v", asset.Symbol(), qty, err)
	}
}
