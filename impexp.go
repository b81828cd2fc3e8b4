package stockmarket

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains functions to handle the import/export format.
// It should remain human readable, single file and easy to merge.
//
// Unlike the flat-file codec, the interchange format round-trips the
// variant-specific fields (storage rate, spread).
//
// The format is a JSONL file. The first line is a header object with the
// cash amount and its currency. Every following line is a JSON object
// representing one position: symbol, type, name, market price, the
// variant-specific fields when non-zero, and the list of open lots in
// FIFO order.

// jlot is the readable form of one purchase lot.
type jlot struct {
	Date      string          `json:"date"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// jposition is the readable form of one position.
type jposition struct {
	Symbol      string          `json:"symbol"`
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	MarketPrice decimal.Decimal `json:"marketPrice"`
	StorageRate decimal.Decimal `json:"storageRate"`
	Spread      decimal.Decimal `json:"spread"`
	Lots        []jlot          `json:"lots"`
}

// ExportPortfolio exports the portfolio to w in the interchange format.
func ExportPortfolio(w io.Writer, p *Portfolio) error {
	var header jsonObjectWriter
	header.Append("cash", p.Cash().Amount())
	header.Append("currency", p.Currency())
	if err := writeJSONLine(w, &header); err != nil {
		return err
	}

	for _, position := range p.Positions() {
		a := position.Asset()

		var lots []*jsonObjectWriter
		for lot := range position.Lots() {
			var jl jsonObjectWriter
			jl.Append("date", lot.Date().String())
			jl.Append("quantity", lot.Remaining())
			jl.Append("unitPrice", lot.UnitPrice().Amount())
			lots = append(lots, &jl)
		}

		var jp jsonObjectWriter
		jp.Append("symbol", a.Symbol())
		jp.Append("type", a.Type().String())
		jp.Append("name", a.Name())
		jp.Append("marketPrice", a.MarketPrice().Amount())
		switch v := a.(type) {
		case *Commodity:
			if v.StorageRate().IsPositive() {
				jp.Append("storageRate", v.StorageRate())
			}
		case *Currency:
			if v.Spread().IsPositive() {
				jp.Append("spread", v.Spread().Amount())
			}
		}
		jp.Append("lots", lots)

		if err := writeJSONLine(w, &jp); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONLine(w io.Writer, v json.Marshaler) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Errorf("%w: cannot marshal interchange line: %v", ErrDataIntegrity, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("%w: cannot write interchange line: %v", ErrDataIntegrity, err)
	}
	return nil
}

// ImportPortfolio imports a portfolio from 'r' in the interchange format.
func ImportPortfolio(r io.Reader) (*Portfolio, error) {
	scanner := bufio.NewScanner(r)

	// header line
	var header struct {
		Cash     decimal.Decimal `json:"cash"`
		Currency string          `json:"currency"`
	}
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("%w: reading interchange header: %v", ErrDataIntegrity, err)
		}
		return nil, fmt.Errorf("%w: empty interchange file", ErrDataIntegrity)
	}
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return nil, fmt.Errorf("%w: cannot parse interchange header %q: %v", ErrDataIntegrity, scanner.Text(), err)
	}

	portfolio, err := NewPortfolio(M(header.Cash, header.Currency))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jp jposition
		if err := json.Unmarshal(line, &jp); err != nil {
			return nil, fmt.Errorf("%w: cannot parse interchange line %q: %v", ErrDataIntegrity, string(line), err)
		}
		if err := addImportedPosition(portfolio, jp, header.Currency); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading interchange file: %v", ErrDataIntegrity, err)
	}
	return portfolio, nil
}

// addImportedPosition rebuilds one position from its readable form.
func addImportedPosition(portfolio *Portfolio, jp jposition, currency string) error {
	typ, err := ParseAssetType(jp.Type)
	if err != nil {
		return fmt.Errorf("%w: position %q: invalid type %q", ErrDataIntegrity, jp.Symbol, jp.Type)
	}

	marketPrice := M(jp.MarketPrice, currency)
	var asset Asset
	switch typ {
	case ShareType:
		asset, err = NewShare(jp.Symbol, jp.Name, marketPrice)
	case CommodityType:
		asset, err = NewCommodity(jp.Symbol, jp.Name, marketPrice, Q(jp.StorageRate))
	case CurrencyType:
		asset, err = NewCurrency(jp.Symbol, jp.Name, marketPrice, M(jp.Spread, currency))
	}
	if err != nil {
		return fmt.Errorf("%w: position %q: %v", ErrDataIntegrity, jp.Symbol, err)
	}

	position, err := NewPosition(asset)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}
	for _, jl := range jp.Lots {
		on, err := ParseDate(jl.Date)
		if err != nil {
			return fmt.Errorf("%w: position %q: %v", ErrDataIntegrity, jp.Symbol, err)
		}
		lot, err := NewPurchaseLot(on, M(jl.UnitPrice, currency), Q(jl.Quantity))
		if err != nil {
			return fmt.Errorf("%w: position %q: %v", ErrDataIntegrity, jp.Symbol, err)
		}
		if err := position.AddLot(lot); err != nil {
			return fmt.Errorf("%w: %v", ErrDataIntegrity, err)
		}
	}
	portfolio.positions[asset.Symbol()] = position
	return nil
}

// ImportBroker imports a portfolio from a broker account statement in
// JSON form. Broker exports bury the relevant data under vendor-specific
// wrapping, so the fields are located with JSONPath queries instead of a
// rigid schema: the cash balance under $.account.balance.cash, and the
// positions under $.account.holdings, each with symbol/type/name/price
// and a lots array. Monetary fields are interpreted in the given currency.
func ImportBroker(r io.Reader, currency string) (*Portfolio, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("%w: cannot parse broker statement: %v", ErrDataIntegrity, err)
	}

	cash, err := jsonpathFloat(jobj, "$.account.balance.cash")
	if err != nil {
		return nil, err
	}

	portfolio, err := NewPortfolio(M(cash, currency))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataIntegrity, err)
	}

	jholdings, err := jsonpath.Get("$.account.holdings[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: no holdings in broker statement: %v", ErrDataIntegrity, err)
	}
	holdings, ok := jholdings.([]any)
	if !ok {
		// jsonpath is never clear about whether it returns a list or a
		// single answer; normalize to a list.
		holdings = []any{jholdings}
	}

	for _, jholding := range holdings {
		jp, err := brokerPosition(jholding)
		if err != nil {
			return nil, err
		}
		if err := addImportedPosition(portfolio, jp, currency); err != nil {
			return nil, err
		}
	}
	return portfolio, nil
}

// brokerPosition extracts one holding from its vendor JSON object.
func brokerPosition(jholding any) (jposition, error) {
	var jp jposition
	var err error

	if jp.Symbol, err = jsonpathString(jholding, "$.symbol"); err != nil {
		return jp, err
	}
	if jp.Type, err = jsonpathString(jholding, "$.type"); err != nil {
		return jp, err
	}
	if jp.Name, err = jsonpathString(jholding, "$.name"); err != nil {
		return jp, err
	}
	price, err := jsonpathFloat(jholding, "$.price")
	if err != nil {
		return jp, err
	}
	jp.MarketPrice = decimal.NewFromFloat(price)

	// variant-specific fields are optional
	if rate, err := jsonpathFloat(jholding, "$.storageRate"); err == nil {
		jp.StorageRate = decimal.NewFromFloat(rate)
	}
	if spread, err := jsonpathFloat(jholding, "$.spread"); err == nil {
		jp.Spread = decimal.NewFromFloat(spread)
	}

	jlots, err := jsonpath.Get("$.lots[*]", jholding)
	if err != nil {
		return jp, fmt.Errorf("%w: holding %q has no lots: %v", ErrDataIntegrity, jp.Symbol, err)
	}
	lots, ok := jlots.([]any)
	if !ok {
		lots = []any{jlots}
	}
	for _, l := range lots {
		day, err := jsonpathString(l, "$.date")
		if err != nil {
			return jp, err
		}
		qty, err := jsonpathFloat(l, "$.quantity")
		if err != nil {
			return jp, err
		}
		price, err := jsonpathFloat(l, "$.price")
		if err != nil {
			return jp, err
		}
		jp.Lots = append(jp.Lots, jlot{
			Date:      day,
			Quantity:  decimal.NewFromFloat(qty),
			UnitPrice: decimal.NewFromFloat(price),
		})
	}
	return jp, nil
}

func jsonpathFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("%w: missing %q in broker statement: %v", ErrDataIntegrity, path, err)
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number: %v", ErrDataIntegrity, path, jval)
	}
	return val, nil
}

func jsonpathString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("%w: missing %q in broker statement: %v", ErrDataIntegrity, path, err)
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string: %v", ErrDataIntegrity, path, jval)
	}
	return val, nil
}
