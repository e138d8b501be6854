package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/moneydash/moneydash/internal/ledger"
)

// timelinesCmd prints per-holding transaction timelines for an account.
type timelinesCmd struct {
	account string
}

func (*timelinesCmd) Name() string     { return "timelines" }
func (*timelinesCmd) Synopsis() string { return "show inferred transaction timelines per holding" }
func (*timelinesCmd) Usage() string {
	return `moneydash timelines -account <id>

  Matches an investment account's current holdings against its transaction
  history and prints each holding's inferred timeline with first purchase
  date and total invested.
`
}

func (c *timelinesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "investment account id")
}

func (c *timelinesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "missing -account")
		return subcommands.ExitUsageError
	}
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	timelines, err := a.timelines.Build(ctx, c.account)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building timelines: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, tl := range timelines {
		h := tl.Holding
		name := h.SecurityName
		if h.Symbol != "" {
			name = fmt.Sprintf("%s (%s)", name, h.Symbol)
		}
		fmt.Printf("%s  market value %s\n", name, a.formatMoney(h.MarketValue))
		if len(tl.Entries) == 0 {
			fmt.Println("  no transaction history found")
			continue
		}
		if first, ok := tl.FirstPurchaseDate(); ok {
			fmt.Printf("  first purchase %s, total invested %s\n",
				first.Format(a.cfg.UI.DateFormat), a.formatMoney(tl.TotalInvested()))
		}
		for _, e := range tl.Entries {
			kind := e.TransactionType
			if c := ledger.ClassifyInvestmentType(e.Description); c != "Other" {
				kind = c
			}
			fmt.Printf("  %s  %-22s %s\n",
				e.TransactionDate.Format(a.cfg.UI.DateFormat), kind, a.formatMoney(e.Amount))
		}
	}
	return subcommands.ExitSuccess
}
