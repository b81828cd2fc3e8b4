package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockmarket"
	"github.com/google/subcommands"
)

type importCmd struct {
	input  string
	broker bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a portfolio from the interchange or a broker format" }
func (*importCmd) Usage() string {
	return `smc import [-i <file>] [-broker]

  Reads a portfolio from stdin or the -i file and replaces the portfolio
  file with it. By default the input is the JSONL interchange format;
  with -broker it is a broker account statement in JSON.
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.input, "i", "", "Input file (defaults to stdin).")
	f.BoolVar(&p.broker, "broker", false, "Parse a broker account statement instead of the interchange format.")
}

func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in := os.Stdin
	if p.input != "" {
		var err error
		in, err = os.Open(p.input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer in.Close()
	}

	var portfolio *stockmarket.Portfolio
	var err error
	if p.broker {
		portfolio, err = stockmarket.ImportBroker(in, *currency)
	} else {
		portfolio, err = stockmarket.ImportPortfolio(in)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := savePortfolio(portfolio); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d position(s) and %s in cash into %s.\n", portfolio.HoldingsCount(), portfolio.Cash(), *portfolioFile)
	return subcommands.ExitSuccess
}
