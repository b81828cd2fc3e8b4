package stockmarket

import (
	"errors"
	"strings"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	p, err := NewPortfolio(usd(100_000))
	if err != nil {
		t.Fatal(err)
	}
	mustBuy(t, p, mustShare(t, "AAPL", 100), 10, "2026-01-15", 100)

	// variant-specific fields survive this format, unlike the flat file.
	gold, err := NewCommodity("GOLD", "Gold", usd(2000), Q(0.001))
	if err != nil {
		t.Fatal(err)
	}
	mustBuy(t, p, gold, 3, "2026-01-20", 2000)

	eur, err := NewCurrency("EUR", "Euro", usd(1.1), M(0.02, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	mustBuy(t, p, eur, 1000, "2026-01-25", 1.1)

	var buf strings.Builder
	if err := ExportPortfolio(&buf, p); err != nil {
		t.Fatalf("ExportPortfolio: %v", err)
	}

	got, err := ImportPortfolio(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("ImportPortfolio: %v", err)
	}

	if !got.Cash().Equal(p.Cash()) {
		t.Errorf("cash = %s, want %s", got.Cash(), p.Cash())
	}
	if got.Currency() != "USD" {
		t.Errorf("currency = %q, want USD", got.Currency())
	}
	if got.HoldingsCount() != p.HoldingsCount() {
		t.Fatalf("holdings = %d, want %d", got.HoldingsCount(), p.HoldingsCount())
	}

	commodity, ok := got.Position("GOLD").Asset().(*Commodity)
	if !ok {
		t.Fatalf("GOLD asset is %T, want *Commodity", got.Position("GOLD").Asset())
	}
	if !commodity.StorageRate().Equal(Q(0.001)) {
		t.Errorf("storage rate = %s, want 0.001", commodity.StorageRate())
	}

	currency, ok := got.Position("EUR").Asset().(*Currency)
	if !ok {
		t.Fatalf("EUR asset is %T, want *Currency", got.Position("EUR").Asset())
	}
	if !currency.Spread().Equal(M(0.02, "USD")) {
		t.Errorf("spread = %s, want %s", currency.Spread(), M(0.02, "USD"))
	}

	for symbol, want := range p.Positions() {
		position := got.Position(symbol)
		if position == nil {
			t.Fatalf("position %q lost in round trip", symbol)
		}
		if !position.TotalQuantity().Equal(want.TotalQuantity()) {
			t.Errorf("%q quantity = %s, want %s", symbol, position.TotalQuantity(), want.TotalQuantity())
		}
	}
}

func TestExportHeaderFirstLine(t *testing.T) {
	p, err := NewPortfolio(M(1234.5, "EUR"))
	if err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	if err := ExportPortfolio(&buf, p); err != nil {
		t.Fatal(err)
	}

	got := strings.SplitN(buf.String(), "\n", 2)[0]
	want := `{"cash":1234.5,"currency":"EUR"}`
	if got != want {
		t.Errorf("header = %s, want %s", got, want)
	}
}

func TestImportErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty file", in: ""},
		{name: "bad header", in: "not json"},
		{name: "bad position line", in: "{\"cash\":100,\"currency\":\"USD\"}\nnot json"},
		{name: "unknown type", in: "{\"cash\":100,\"currency\":\"USD\"}\n{\"symbol\":\"X\",\"type\":\"BOND\",\"name\":\"x\",\"marketPrice\":1,\"lots\":[]}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ImportPortfolio(strings.NewReader(tt.in)); !errors.Is(err, ErrDataIntegrity) {
				t.Errorf("err = %v, want ErrDataIntegrity", err)
			}
		})
	}
}

func TestImportBroker(t *testing.T) {
	statement := `{
	  "vendor": "acme-broker",
	  "account": {
	    "id": "123-456",
	    "balance": {"cash": 50000.5, "blocked": 0},
	    "holdings": [
	      {
	        "symbol": "AAPL", "type": "SHARE", "name": "Apple Inc.", "price": 150,
	        "lots": [
	          {"date": "2026-01-15", "quantity": 10, "price": 100},
	          {"date": "2026-02-15", "quantity": 5, "price": 120}
	        ]
	      },
	      {
	        "symbol": "GOLD", "type": "COMMODITY", "name": "Gold", "price": 2000,
	        "storageRate": 0.001,
	        "lots": [{"date": "2026-01-20", "quantity": 3, "price": 1900}]
	      }
	    ]
	  }
	}`

	p, err := ImportBroker(strings.NewReader(statement), "USD")
	if err != nil {
		t.Fatalf("ImportBroker: %v", err)
	}

	if !p.Cash().Equal(M(50000.5, "USD")) {
		t.Errorf("cash = %s, want %s", p.Cash(), M(50000.5, "USD"))
	}
	if got := p.HoldingsCount(); got != 2 {
		t.Fatalf("holdings = %d, want 2", got)
	}

	aapl := p.Position("AAPL")
	if got := aapl.TotalQuantity(); !got.Equal(Q(15)) {
		t.Errorf("AAPL quantity = %s, want 15", got)
	}
	if got := aapl.LotCount(); got != 2 {
		t.Errorf("AAPL lots = %d, want 2", got)
	}

	gold, ok := p.Position("GOLD").Asset().(*Commodity)
	if !ok {
		t.Fatalf("GOLD asset is %T, want *Commodity", p.Position("GOLD").Asset())
	}
	if !gold.StorageRate().Equal(Q(0.001)) {
		t.Errorf("GOLD storage rate = %s, want 0.001", gold.StorageRate())
	}
}

func TestImportBrokerMissingCash(t *testing.T) {
	_, err := ImportBroker(strings.NewReader(`{"account":{"holdings":[]}}`), "USD")
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("err = %v, want ErrDataIntegrity", err)
	}
}
