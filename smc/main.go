package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockmarket/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion acts before any flag parsing, and exits on its own
	// when invoked by the shell.
	completion().Complete("smc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"portfolio-file": predict.Files("*.txt"),
			"watch-file":     predict.Files("*.txt"),
			"currency":       predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
		},
		Sub: map[string]*complete.Command{
			"init":   {Flags: map[string]complete.Predictor{"cash": predict.Something, "f": predict.Nothing}},
			"buy":    {Flags: map[string]complete.Predictor{"s": predict.Something, "n": predict.Something, "t": predict.Set{"share", "commodity", "currency"}, "p": predict.Something, "q": predict.Something, "d": predict.Something, "basis": predict.Something, "rate": predict.Something, "spread": predict.Something}},
			"sell":   {Flags: map[string]complete.Predictor{"s": predict.Something, "q": predict.Something, "p": predict.Something, "d": predict.Something}},
			"report": {},
			"export": {Flags: map[string]complete.Predictor{"o": predict.Files("*")}},
			"import": {Flags: map[string]complete.Predictor{"i": predict.Files("*"), "broker": predict.Nothing}},
			"watch":  {},
			"topic":  {},
		},
	}
}
