package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/moneydash/moneydash/internal/database/repository"
	"github.com/moneydash/moneydash/internal/ledger"
)

// SeedDefaults ensures a baseline chart of accounts exists for new databases,
// including the Misc fallback entry the split allocator depends on. It is
// idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	coaRepo := repository.NewChartOfAccountRepo(db)
	existing, err := coaRepo.List(ctx)
	if err != nil {
		return err
	}
	if ledger.FindFallbackAccount(existing) != nil {
		return nil
	}
	defaults := []struct {
		code string
		name string
	}{
		{"1000", "Income"},
		{"5000", "Groceries"},
		{"5100", "Restaurants"},
		{"5200", "Transport"},
		{"5300", "Utilities"},
		{"5400", "Housing"},
		{"5500", "Health"},
		{"5600", "Entertainment"},
		{"9999", "Misc"},
	}
	for _, d := range defaults {
		coa := ledger.ChartOfAccount{
			ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("coa:"+d.code)).String(),
			Code: d.code,
			Name: d.name,
		}
		if err := coaRepo.Upsert(ctx, coa); err != nil {
			return err
		}
	}
	return nil
}
