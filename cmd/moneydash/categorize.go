package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// categorizeCmd resolves merchants for transactions that have none yet.
type categorizeCmd struct{}

func (*categorizeCmd) Name() string     { return "categorize" }
func (*categorizeCmd) Synopsis() string { return "resolve merchants for uncategorized transactions" }
func (*categorizeCmd) Usage() string {
	return `moneydash categorize

  Normalizes raw merchant names on transactions without a merchant link,
  matches them against the merchant catalog, creates first-seen merchants,
  and applies saved split rules.
`
}

func (*categorizeCmd) SetFlags(*flag.FlagSet) {}

func (c *categorizeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	res, err := a.categorizer.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error categorizing: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("resolved %d transactions (%d new merchants, %d aliases, %d rules applied)\n",
		res.Resolved, res.Created, res.AliasesAdded, res.RulesApplied)
	return subcommands.ExitSuccess
}
