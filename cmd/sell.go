package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockmarket"
	"github.com/etnz/stockmarket/renderer"
	"github.com/google/subcommands"
)

type sellCmd struct {
	symbol   string
	quantity float64
	price    float64
	date     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell a held asset, consuming lots FIFO" }
func (*sellCmd) Usage() string {
	return `smc sell -s <symbol> -q <quantity> -p <sell_price> [-d <date>]

  Sells a quantity of a held asset at the given unit price, consuming
  purchase lots oldest-first, and prints the per-lot profit breakdown.
`
}

func (p *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "s", "", "Asset symbol.")
	f.Float64Var(&p.quantity, "q", 0, "Quantity to sell.")
	f.Float64Var(&p.price, "p", 0, "Sell price per unit.")
	f.StringVar(&p.date, "d", "", "Sale date (defaults to today).")
}

func (p *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on := stockmarket.Today()
	if p.date != "" {
		var err error
		if on, err = stockmarket.ParseDate(p.date); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	portfolio, err := loadPortfolio()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	result, err := portfolio.Sell(p.symbol, stockmarket.Q(p.quantity), stockmarket.M(p.price, *currency), on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := savePortfolio(portfolio); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Sale(result))
	return subcommands.ExitSuccess
}
