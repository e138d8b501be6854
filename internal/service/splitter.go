// Package service orchestrates the pure core packages against the
// persistence layer. Services hold repositories and a logger, nothing else.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/moneydash/moneydash/internal/database/repository"
	"github.com/moneydash/moneydash/internal/ledger"
	"github.com/moneydash/moneydash/internal/split"
)

var (
	hundredPercent   = decimal.NewFromInt(100)
	percentTolerance = decimal.RequireFromString("0.01")
)

// SplitService drives split edit sessions and persists their outcome.
type SplitService struct {
	Transactions *repository.TransactionRepo
	Accounts     *repository.ChartOfAccountRepo
	Splits       *repository.SplitRepo
	Log          zerolog.Logger
}

// Start loads a transaction and its stored splits into a fresh allocator.
func (s *SplitService) Start(ctx context.Context, transactionID string) (*split.Allocator, error) {
	txn, err := s.Transactions.Get(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, fmt.Errorf("transaction %s not found", transactionID)
	}
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.Splits.ListForTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return split.NewAllocator(transactionID, txn.Amount, existing, accounts)
}

// Save validates the session and replaces the transaction's stored splits
// wholesale. Validation failure blocks the save; nothing partial is written.
func (s *SplitService) Save(ctx context.Context, alloc *split.Allocator) error {
	if err := alloc.Validate(); err != nil {
		return err
	}
	rows := alloc.Persistable()
	if len(rows) == 0 {
		return fmt.Errorf("nothing to save: all rows are zero")
	}
	if err := s.Splits.ReplaceForTransaction(ctx, alloc.TransactionID(), rows); err != nil {
		return err
	}
	s.Log.Debug().
		Str("transaction", alloc.TransactionID()).
		Int("rows", len(rows)).
		Msg("splits saved")
	return nil
}

// Cancel discards a transaction's stored splits.
func (s *SplitService) Cancel(ctx context.Context, transactionID string) error {
	return s.Splits.ReplaceForTransaction(ctx, transactionID, nil)
}

// ApplyRule materializes a saved split template on a transaction. The rule's
// own 100% invariant is checked before anything is written.
func (s *SplitService) ApplyRule(ctx context.Context, transactionID string, rule ledger.MerchantSplitRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	txn, err := s.Transactions.Get(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn == nil {
		return fmt.Errorf("transaction %s not found", transactionID)
	}
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return err
	}
	alloc, err := split.NewAllocator(transactionID, txn.Amount, nil, accounts)
	if err != nil {
		return err
	}
	for i, rs := range rule.Splits {
		if i > 0 {
			alloc.AddRow()
		}
		if err := alloc.SetCategory(i, rs.ChartOfAccountID); err != nil {
			return err
		}
		if err := alloc.SetPercent(i, rs.Percentage); err != nil {
			return err
		}
	}
	return s.Save(ctx, alloc)
}

func validateRule(rule ledger.MerchantSplitRule) error {
	if len(rule.Splits) == 0 {
		return fmt.Errorf("rule %q has no splits", rule.MerchantFriendlyName)
	}
	for _, rs := range rule.Splits {
		if rs.ChartOfAccountID == "" {
			return fmt.Errorf("rule %q: %w", rule.MerchantFriendlyName, split.ErrIncompleteSplit)
		}
	}
	total := rule.TotalPercentage()
	if total.Sub(hundredPercent).Abs().GreaterThan(percentTolerance) {
		return fmt.Errorf("rule %q: %w: total %s%%",
			rule.MerchantFriendlyName, split.ErrUnbalancedSplit, total.StringFixed(2))
	}
	return nil
}
