package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockmarket"
	"github.com/google/subcommands"
)

type initCmd struct {
	cash  float64
	force bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a new empty portfolio file" }
func (*initCmd) Usage() string {
	return `smc init -cash <amount> [-f]

  Creates the portfolio file with the given initial cash and no position.
  Refuses to overwrite an existing file unless -f is given.
`
}

func (p *initCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&p.cash, "cash", 0, "Initial cash amount.")
	f.BoolVar(&p.force, "f", false, "Overwrite an existing portfolio file.")
}

func (p *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !p.force {
		if _, err := os.Stat(*portfolioFile); err == nil {
			fmt.Fprintf(os.Stderr, "Error: %q already exists, use -f to overwrite.\n", *portfolioFile)
			return subcommands.ExitUsageError
		}
	}

	portfolio, err := stockmarket.NewPortfolio(stockmarket.M(p.cash, *currency))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := savePortfolio(portfolio); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created %s with %s in cash.\n", *portfolioFile, portfolio.Cash())
	return subcommands.ExitSuccess
}
