package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/moneydash/moneydash/internal/database/repository"
	"github.com/moneydash/moneydash/internal/ledger"
	"github.com/moneydash/moneydash/internal/timeline"
)

func TestTimelineServiceBuild(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db := openTestDB(t)

	holdings := repository.NewHoldingRepo(db)
	invTxns := repository.NewInvestmentTransactionRepo(db)
	svc := &TimelineService{
		Holdings:               holdings,
		InvestmentTransactions: invTxns,
		Matcher:                timeline.NewMatcher(timeline.DefaultConfig()),
		Log:                    zerolog.Nop(),
	}

	jan := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	require.NoError(t, holdings.BulkInsert(ctx, []ledger.Holding{
		// Stale January snapshot that must not appear in the result.
		{ID: uuid.NewString(), AccountID: "inv-1", Symbol: "VEQT", SecurityName: "Vanguard All-Equity ETF", AsOfDate: jan},
		{ID: uuid.NewString(), AccountID: "inv-1", Symbol: "VEQT", SecurityName: "Vanguard All-Equity ETF", AsOfDate: feb},
		{ID: uuid.NewString(), AccountID: "inv-1", SecurityName: "Skyline Industrial REIT", AsOfDate: feb},
	}))

	require.NoError(t, invTxns.BulkInsert(ctx, []ledger.InvestmentTransaction{
		{
			ID: uuid.NewString(), AccountID: "inv-1", TransactionType: "Buy",
			TransactionDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			Description:     "Security Purchase: SKYLINE INDUSTRIAL REIT CLASS A TRUST UNITS",
			Amount:          decimal.RequireFromString("-5000"),
		},
		{
			ID: uuid.NewString(), AccountID: "inv-1", TransactionType: "Buy",
			TransactionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Symbol:          "VEQT",
			Amount:          decimal.RequireFromString("-2000"),
		},
		{
			ID: uuid.NewString(), AccountID: "inv-1", TransactionType: "Dividend",
			TransactionDate: time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
			Symbol:          "VEQT",
			Amount:          decimal.RequireFromString("35.20"),
		},
		// Different account, must be invisible here.
		{
			ID: uuid.NewString(), AccountID: "inv-2", TransactionType: "Buy",
			TransactionDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Symbol:          "VEQT",
			Amount:          decimal.RequireFromString("-999"),
		},
	}))

	timelines, err := svc.Build(ctx, "inv-1")
	require.NoError(t, err)
	require.Len(t, timelines, 2, "only the current snapshot's holdings")

	byName := map[string]timeline.Timeline{}
	for _, tl := range timelines {
		byName[tl.Holding.SecurityName] = tl
	}

	veqt := byName["Vanguard All-Equity ETF"]
	require.Len(t, veqt.Entries, 2)
	require.True(t, veqt.Entries[0].TransactionDate.Before(veqt.Entries[1].TransactionDate))
	first, ok := veqt.FirstPurchaseDate()
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), first)
	require.True(t, veqt.TotalInvested().Equal(decimal.RequireFromString("2000")))

	skyline := byName["Skyline Industrial REIT"]
	require.Len(t, skyline.Entries, 1)
	require.True(t, skyline.TotalInvested().Equal(decimal.RequireFromString("5000")))
}

func TestTimelineServiceBuildEmptyAccount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)

	svc := &TimelineService{
		Holdings:               repository.NewHoldingRepo(db),
		InvestmentTransactions: repository.NewInvestmentTransactionRepo(db),
		Matcher:                timeline.NewMatcher(timeline.DefaultConfig()),
		Log:                    zerolog.Nop(),
	}

	timelines, err := svc.Build(ctx, "no-such-account")
	require.NoError(t, err)
	require.Empty(t, timelines)
}
