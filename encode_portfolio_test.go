package stockmarket

import (
	"errors"
	"strings"
	"testing"
)

// samplePortfolio builds a portfolio with one position per asset variant.
func samplePortfolio(t *testing.T) *Portfolio {
	t.Helper()
	p, err := NewPortfolio(usd(100_000))
	if err != nil {
		t.Fatal(err)
	}

	mustBuy(t, p, mustShare(t, "AAPL", 100), 10, "2026-01-15", 100)
	mustBuy(t, p, mustShare(t, "AAPL", 100), 5, "2026-02-15", 110)

	gold, err := NewCommodity("GOLD", "Gold", usd(2000), Q(0))
	if err != nil {
		t.Fatal(err)
	}
	mustBuy(t, p, gold, 3, "2026-01-20", 2000)

	eur, err := NewCurrency("EUR", "Euro", usd(1.1), M(0, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	mustBuy(t, p, eur, 1000, "2026-01-25", 1.1)

	return p
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := samplePortfolio(t)

	var buf strings.Builder
	if err := EncodePortfolio(&buf, p); err != nil {
		t.Fatalf("EncodePortfolio: %v", err)
	}

	got, err := DecodePortfolio(strings.NewReader(buf.String()), "USD")
	if err != nil {
		t.Fatalf("DecodePortfolio: %v", err)
	}

	if !got.Cash().Equal(p.Cash()) {
		t.Errorf("cash = %s, want %s", got.Cash(), p.Cash())
	}
	if got.HoldingsCount() != p.HoldingsCount() {
		t.Fatalf("holdings = %d, want %d", got.HoldingsCount(), p.HoldingsCount())
	}

	for symbol, want := range p.Positions() {
		position := got.Position(symbol)
		if position == nil {
			t.Fatalf("position %q lost in round trip", symbol)
		}
		if !position.TotalQuantity().Equal(want.TotalQuantity()) {
			t.Errorf("%q quantity = %s, want %s", symbol, position.TotalQuantity(), want.TotalQuantity())
		}
		if position.LotCount() != want.LotCount() {
			t.Errorf("%q lots = %d, want %d", symbol, position.LotCount(), want.LotCount())
		}
		if position.Asset().Type() != want.Asset().Type() {
			t.Errorf("%q type = %s, want %s", symbol, position.Asset().Type(), want.Asset().Type())
		}
		if !position.Asset().MarketPrice().Equal(want.Asset().MarketPrice()) {
			t.Errorf("%q price = %s, want %s", symbol, position.Asset().MarketPrice(), want.Asset().MarketPrice())
		}
	}

	// encoding the decoded portfolio gives the same bytes.
	var again strings.Builder
	if err := EncodePortfolio(&again, got); err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if again.String() != buf.String() {
		t.Errorf("re-encode differs:\n%s\nwant:\n%s", again.String(), buf.String())
	}
}

func TestDecodeDeclaredQuantityMismatch(t *testing.T) {
	in := strings.Join([]string{
		"HEADER|CASH|1000",
		"ASSET|SHARE|AAPL|15|Apple Inc.|100",
		"LOT|2026-01-15|10|100",
	}, "\n")

	_, err := DecodePortfolio(strings.NewReader(in), "USD")
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("err = %v, want ErrDataIntegrity", err)
	}
}

func TestDecodeLegacyAssetLine(t *testing.T) {
	// the 5-field ASSET line has no declared quantity and no cross-check.
	in := strings.Join([]string{
		"HEADER|CASH|1000",
		"ASSET|SHARE|AAPL|Apple Inc.|100",
		"LOT|2026-01-15|10|100",
	}, "\n")

	p, err := DecodePortfolio(strings.NewReader(in), "USD")
	if err != nil {
		t.Fatalf("DecodePortfolio: %v", err)
	}
	if got := p.Position("AAPL").TotalQuantity(); !got.Equal(Q(10)) {
		t.Errorf("quantity = %s, want 10", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty file", in: ""},
		{name: "bad header", in: "CASH|1000"},
		{name: "bad cash", in: "HEADER|CASH|abc"},
		{name: "unknown line type", in: "HEADER|CASH|1000\nTRADE|AAPL|10"},
		{name: "unknown asset type", in: "HEADER|CASH|1000\nASSET|BOND|T10|10|Treasury|100"},
		{name: "lot before asset", in: "HEADER|CASH|1000\nLOT|2026-01-15|10|100"},
		{name: "bad lot date", in: "HEADER|CASH|1000\nASSET|SHARE|AAPL|Apple|100\nLOT|someday|10|100"},
		{name: "bad lot quantity", in: "HEADER|CASH|1000\nASSET|SHARE|AAPL|Apple|100\nLOT|2026-01-15|x|100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePortfolio(strings.NewReader(tt.in), "USD"); !errors.Is(err, ErrDataIntegrity) {
				t.Errorf("err = %v, want ErrDataIntegrity", err)
			}
		})
	}
}

func TestDecodeVariantFieldsZero(t *testing.T) {
	// the flat file cannot carry storage rates or spreads.
	in := strings.Join([]string{
		"HEADER|CASH|1000",
		"ASSET|COMMODITY|GOLD|3|Gold|2000",
		"LOT|2026-01-20|3|2000",
	}, "\n")

	p, err := DecodePortfolio(strings.NewReader(in), "USD")
	if err != nil {
		t.Fatalf("DecodePortfolio: %v", err)
	}
	gold, ok := p.Position("GOLD").Asset().(*Commodity)
	if !ok {
		t.Fatalf("asset is %T, want *Commodity", p.Position("GOLD").Asset())
	}
	if !gold.StorageRate().IsZero() {
		t.Errorf("storage rate = %s, want zero", gold.StorageRate())
	}
}
