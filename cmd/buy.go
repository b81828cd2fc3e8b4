package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockmarket"
	"github.com/google/subcommands"
)

type buyCmd struct {
	symbol   string
	name     string
	typ      string
	price    float64
	rate     float64
	spread   float64
	quantity float64
	date     string
	basis    float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy an asset and record the purchase lot" }
func (*buyCmd) Usage() string {
	return `smc buy -s <symbol> -n <name> -t <type> -p <market_price> -q <quantity> [-d <date>] [-basis <unit_price>] [-rate <storage_rate>] [-spread <spread>]

  Buys a quantity of an asset. The cash movement is the acquisition cost
  at the market price (shares pay a fixed fee); the lot's cost basis is
  the -basis unit price, defaulting to the market price.
`
}

func (p *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "s", "", "Asset symbol.")
	f.StringVar(&p.name, "n", "", "Asset name.")
	f.StringVar(&p.typ, "t", "share", "Asset type (share, commodity, currency).")
	f.Float64Var(&p.price, "p", 0, "Current market price per unit.")
	f.Float64Var(&p.rate, "rate", 0, "Storage cost rate per unit (commodities only).")
	f.Float64Var(&p.spread, "spread", 0, "Bid/ask spread (currencies only).")
	f.Float64Var(&p.quantity, "q", 0, "Quantity to buy.")
	f.StringVar(&p.date, "d", "", "Purchase date (defaults to today).")
	f.Float64Var(&p.basis, "basis", 0, "Unit price recorded as cost basis (defaults to the market price).")
}

// asset builds the Asset variant described by the command flags.
func (p *buyCmd) asset() (stockmarket.Asset, error) {
	marketPrice := stockmarket.M(p.price, *currency)
	switch strings.ToLower(p.typ) {
	case "share":
		return stockmarket.NewShare(p.symbol, p.name, marketPrice)
	case "commodity":
		return stockmarket.NewCommodity(p.symbol, p.name, marketPrice, stockmarket.Q(p.rate))
	case "currency":
		return stockmarket.NewCurrency(p.symbol, p.name, marketPrice, stockmarket.M(p.spread, *currency))
	default:
		return nil, fmt.Errorf("unknown asset type %q (want share, commodity or currency)", p.typ)
	}
}

func (p *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asset, err := p.asset()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	on := stockmarket.Today()
	if p.date != "" {
		if on, err = stockmarket.ParseDate(p.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	basis := asset.MarketPrice()
	if p.basis != 0 {
		basis = stockmarket.M(p.basis, *currency)
	}

	portfolio, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := portfolio.Buy(asset, stockmarket.Q(p.quantity), on, basis); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := savePortfolio(portfolio); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Bought %s × %s on %s, cash is now %s.\n", stockmarket.Q(p.quantity), p.symbol, on, portfolio.Cash())
	return subcommands.ExitSuccess
}
