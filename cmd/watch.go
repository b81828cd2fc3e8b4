package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockmarket/renderer"
	"github.com/google/subcommands"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "add symbols to the watch list, or list it" }
func (*watchCmd) Usage() string {
	return `smc watch [<symbol> ...]

  With symbols, adds them to the watch list (duplicates are ignored).
  Without arguments, prints the watch list in alphabetical order.
`
}

func (*watchCmd) SetFlags(f *flag.FlagSet) {}

func (p *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := loadWatchList()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		printMarkdown(renderer.WatchList(w))
		return subcommands.ExitSuccess
	}

	added := 0
	for _, symbol := range f.Args() {
		ok, err := w.Add(symbol)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		if ok {
			added++
		}
	}

	if err := saveWatchList(w); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added %d symbol(s), watching %d.\n", added, w.Len())
	return subcommands.ExitSuccess
}
