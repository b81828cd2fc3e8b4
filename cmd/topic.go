package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockmarket/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "print built-in documentation topics" }
func (*topicCmd) Usage() string {
	return `smc topic [<name> ...]

  Prints the given documentation topics, or the list of available
  topics when called without argument. Use "*" to print them all.
`
}

func (*topicCmd) SetFlags(f *flag.FlagSet) {}

func (p *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	md, err := docs.Topics(topics...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	printMarkdown(md)
	return subcommands.ExitSuccess
}
