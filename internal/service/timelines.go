package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/moneydash/moneydash/internal/database/repository"
	"github.com/moneydash/moneydash/internal/ledger"
	"github.com/moneydash/moneydash/internal/timeline"
)

// TimelineService builds per-holding transaction timelines for an investment
// account.
type TimelineService struct {
	Holdings               *repository.HoldingRepo
	InvestmentTransactions *repository.InvestmentTransactionRepo
	Matcher                *timeline.Matcher
	Log                    zerolog.Logger
}

// Build matches the account's current holdings snapshot against its full
// transaction history. A holding with no matches gets an empty timeline,
// which is a valid outcome, not a failure.
func (s *TimelineService) Build(ctx context.Context, accountID string) ([]timeline.Timeline, error) {
	holdings, err := s.Holdings.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	current := ledger.CurrentSnapshot(holdings)
	txns, err := s.InvestmentTransactions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	timelines := s.Matcher.MatchAll(current, txns)

	matched := 0
	for _, tl := range timelines {
		if len(tl.Entries) > 0 {
			matched++
		}
	}
	s.Log.Info().
		Str("account", accountID).
		Int("holdings", len(current)).
		Int("with_history", matched).
		Int("transactions", len(txns)).
		Msg("timelines built")
	return timelines, nil
}
