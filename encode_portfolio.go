package stockmarket

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// This file implements the flat-file persistence codec for Portfolio.
//
// The format is line oriented, pipe separated:
//
//	HEADER|CASH|<cash>
//	ASSET|<TYPE>|<SYMBOL>|<DECLARED_QTY>|<NAME>|<MARKET_PRICE>
//	LOT|<date>|<quantity>|<unitPrice>
//	...
//
// One ASSET line per position, followed by its LOT lines in FIFO order.
// DECLARED_QTY must equal the sum of the LOT quantities that follow; a
// legacy 5-field ASSET line without DECLARED_QTY is accepted without that
// cross-check. Storage rates and spreads are not representable in this
// format: decoded commodities and currencies always carry zero for them.

// EncodePortfolio writes the portfolio to w in the flat-file format.
// Positions are written in sorted symbol order for deterministic output.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	if p == nil {
		return fmt.Errorf("%w: portfolio is missing", ErrInvalidArgument)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "HEADER|CASH|%s\n", p.Cash().Amount())

	for _, position := range p.Positions() {
		a := position.Asset()
		fmt.Fprintf(bw, "ASSET|%s|%s|%s|%s|%s\n",
			a.Type(), a.Symbol(), position.TotalQuantity(), a.Name(), a.MarketPrice().Amount())

		for lot := range position.Lots() {
			fmt.Fprintf(bw, "LOT|%s|%s|%s\n", lot.Date(), lot.Remaining(), lot.UnitPrice().Amount())
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing portfolio: %v", ErrDataIntegrity, err)
	}
	return nil
}

// DecodePortfolio reads a portfolio in the flat-file format from r.
// Monetary fields are interpreted in the given currency; the format itself
// does not carry one.
func DecodePortfolio(r io.Reader, currency string) (*Portfolio, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: reading header: %v", ErrDataIntegrity, err)
		}
		return nil, fmt.Errorf("%w: empty file", ErrDataIntegrity)
	}

	header := strings.Split(scanner.Text(), "|")
	if len(header) != 3 || header[0] != "HEADER" || header[1] != "CASH" {
		return nil, fmt.Errorf("%w: invalid header line %q", ErrDataIntegrity, scanner.Text())
	}
	cash, err := parseDecimal(header[2], "cash")
	if err != nil {
		return nil, err
	}

	portfolio, err := NewPortfolio(M(cash, currency))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}

	// Decoding state for the ASSET block being read.
	var position *Position
	var lotsQtySum Quantity
	var declaredQty *Quantity // nil for the legacy 5-field variant

	// checkDeclared verifies the previous ASSET block, if it declared a quantity.
	checkDeclared := func() error {
		if position == nil || declaredQty == nil {
			return nil
		}
		if !lotsQtySum.Equal(*declaredQty) {
			return fmt.Errorf("%w: lot quantity sum mismatch for %q: declared %s, got %s",
				ErrDataIntegrity, position.Asset().Symbol(), declaredQty, lotsQtySum)
		}
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "|")
		switch parts[0] {
		case "ASSET":
			if err := checkDeclared(); err != nil {
				return nil, err
			}

			declaredQty = nil
			if len(parts) == 6 {
				qty, err := parseDecimal(parts[3], "declared quantity")
				if err != nil {
					return nil, err
				}
				q := Q(qty)
				declaredQty = &q
			} else if len(parts) != 5 {
				return nil, fmt.Errorf("%w: invalid ASSET line %q", ErrDataIntegrity, line)
			}

			asset, err := decodeAsset(parts, currency)
			if err != nil {
				return nil, err
			}

			position, err = NewPosition(asset)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
			}
			portfolio.positions[asset.Symbol()] = position
			lotsQtySum = Q(0)

		case "LOT":
			if position == nil {
				return nil, fmt.Errorf("%w: LOT before any ASSET: %q", ErrDataIntegrity, line)
			}
			if len(parts) != 4 {
				return nil, fmt.Errorf("%w: invalid LOT line %q", ErrDataIntegrity, line)
			}

			on, err := ParseDate(parts[1])
			if err != nil {
				return nil, fmt.Errorf("%w: invalid lot date in %q: %v", ErrDataIntegrity, line, err)
			}
			qty, err := parseDecimal(parts[2], "lot quantity")
			if err != nil {
				return nil, err
			}
			unitPrice, err := parseDecimal(parts[3], "lot unit price")
			if err != nil {
				return nil, err
			}

			lot, err := NewPurchaseLot(on, M(unitPrice, currency), Q(qty))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid lot %q: %v", ErrDataIntegrity, line, err)
			}
			if err := position.AddLot(lot); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
			}
			lotsQtySum = lotsQtySum.Add(Q(qty))

		default:
			return nil, fmt.Errorf("%w: unknown line type %q", ErrDataIntegrity, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading portfolio: %v", ErrDataIntegrity, err)
	}

	// Verify the last ASSET block.
	if err := checkDeclared(); err != nil {
		return nil, err
	}

	return portfolio, nil
}

// decodeAsset maps an ASSET line to the corresponding variant constructor.
// The type tag dispatch is deliberately explicit: the persistence boundary
// is the one place where the variant set is closed.
func decodeAsset(parts []string, currency string) (Asset, error) {
	// ASSET|TYPE|SYMBOL|NAME|MARKET_PRICE (legacy)
	// ASSET|TYPE|SYMBOL|DECLARED_QTY|NAME|MARKET_PRICE (v2)
	typ, err := ParseAssetType(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: invalid asset type %q", ErrDataIntegrity, parts[1])
	}

	symbol := parts[2]
	var name, priceField string
	if len(parts) == 5 {
		name, priceField = parts[3], parts[4]
	} else {
		name, priceField = parts[4], parts[5]
	}

	price, err := parseDecimal(priceField, "market price")
	if err != nil {
		return nil, err
	}
	marketPrice := M(price, currency)

	// The format cannot carry storage rates or spreads; they decode as zero.
	var asset Asset
	switch typ {
	case ShareType:
		asset, err = NewShare(symbol, name, marketPrice)
	case CommodityType:
		asset, err = NewCommodity(symbol, name, marketPrice, Q(0))
	case CurrencyType:
		asset, err = NewCurrency(symbol, name, marketPrice, M(0, currency))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}
	return asset, nil
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: invalid number for %s: %q", ErrDataIntegrity, field, s)
	}
	return d, nil
}

// SavePortfolio writes the portfolio to a file in the flat-file format.
func SavePortfolio(path string, p *Portfolio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: opening %q for writing: %v", ErrDataIntegrity, path, err)
	}
	defer f.Close()

	if err := EncodePortfolio(f, p); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %q: %v", ErrDataIntegrity, path, err)
	}
	return nil
}

// LoadPortfolio reads a portfolio from a file in the flat-file format.
func LoadPortfolio(path, currency string) (*Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %v", ErrDataIntegrity, path, err)
	}
	defer f.Close()

	return DecodePortfolio(f, currency)
}
