package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/moneydash/moneydash/internal/database/repository"
	"github.com/moneydash/moneydash/internal/ledger"
	"github.com/moneydash/moneydash/internal/split"
)

// applyRulesCmd materializes saved merchant split rules on transactions that
// are linked to a merchant but not split yet.
type applyRulesCmd struct{}

func (*applyRulesCmd) Name() string     { return "apply-rules" }
func (*applyRulesCmd) Synopsis() string { return "apply saved merchant split rules to unsplit transactions" }
func (*applyRulesCmd) Usage() string {
	return `moneydash apply-rules

  For every transaction linked to a merchant that has a saved split rule and
  is not split yet, creates the splits from the rule.
`
}

func (*applyRulesCmd) SetFlags(*flag.FlagSet) {}

func (c *applyRulesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	merchants, err := a.merchants.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing merchants: %v\n", err)
		return subcommands.ExitFailure
	}
	byID := make(map[string]ledger.Merchant, len(merchants))
	for _, m := range merchants {
		byID[m.ID] = m
	}

	txns, err := a.transactions.List(ctx, repository.TransactionFilters{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	applied := 0
	for _, txn := range txns {
		if txn.IsSplit || txn.MerchantID == nil {
			continue
		}
		m, ok := byID[*txn.MerchantID]
		if !ok {
			continue
		}
		rule, err := a.rules.ByFriendlyName(ctx, m.NormalizedName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rule for %s: %v\n", m.NormalizedName, err)
			return subcommands.ExitFailure
		}
		if rule == nil {
			continue
		}
		if err := a.splitter.ApplyRule(ctx, txn.ID, *rule); err != nil {
			if errors.Is(err, split.ErrUnbalancedSplit) || errors.Is(err, split.ErrIncompleteSplit) {
				fmt.Fprintf(os.Stderr, "skipping %s: %v\n", txn.ID, err)
				continue
			}
			fmt.Fprintf(os.Stderr, "Error applying rule to %s: %v\n", txn.ID, err)
			return subcommands.ExitFailure
		}
		applied++
	}
	fmt.Printf("applied rules to %d transactions\n", applied)
	return subcommands.ExitSuccess
}
