package stockmarket

import "testing"

func TestNewReportOrdering(t *testing.T) {
	p, err := NewPortfolio(usd(1_000_000))
	if err != nil {
		t.Fatal(err)
	}

	// two shares with different values, a commodity and a currency,
	// bought in no particular order.
	eur, err := NewCurrency("EUR", "Euro", usd(1.1), M(0, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	mustBuy(t, p, eur, 1000, "2026-01-02", 1.1)

	mustBuy(t, p, mustShare(t, "AAPL", 100), 10, "2026-01-03", 100) // value 1000
	gold, err := NewCommodity("GOLD", "Gold", usd(2000), Q(0))
	if err != nil {
		t.Fatal(err)
	}
	mustBuy(t, p, gold, 3, "2026-01-04", 2000)

	mustBuy(t, p, mustShare(t, "MSFT", 400), 10, "2026-01-05", 400) // value 4000

	r := NewReport(p)

	var got []string
	for _, line := range r.Positions {
		got = append(got, line.Symbol)
	}
	// shares first by descending value, then commodities, then currencies.
	want := []string{"MSFT", "AAPL", "GOLD", "EUR"}
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position[%d] = %q, want %q (full order %v)", i, got[i], want[i], got)
		}
	}

	if !r.TotalValue.Equal(r.Cash.Add(r.AssetsValue)) {
		t.Errorf("TotalValue = %s, want Cash %s + AssetsValue %s", r.TotalValue, r.Cash, r.AssetsValue)
	}
}

func TestNewReportEmpty(t *testing.T) {
	p, err := NewPortfolio(usd(500))
	if err != nil {
		t.Fatal(err)
	}

	r := NewReport(p)
	if len(r.Positions) != 0 {
		t.Errorf("got %d positions, want 0", len(r.Positions))
	}
	if !r.TotalValue.Equal(usd(500)) {
		t.Errorf("TotalValue = %s, want %s", r.TotalValue, usd(500))
	}
}
