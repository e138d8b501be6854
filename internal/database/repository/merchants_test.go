package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/moneydash/moneydash/internal/database"
	"github.com/moneydash/moneydash/internal/database/repository"
	"github.com/moneydash/moneydash/internal/ledger"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMerchantByRawNameOrAlias(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewMerchantRepo(db)

	m := ledger.Merchant{
		ID:             uuid.NewString(),
		NormalizedName: "Starbucks",
		Aliases:        []string{"STARBUCKS #010", "STARBUCKS COFFEE"},
	}
	require.NoError(t, repo.Insert(ctx, m))

	// Normalized name, case-insensitive.
	got, err := repo.ByRawNameOrAlias(ctx, "starbucks")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, m.ID, got.ID)

	// Alias probe through the JSON array, also case-insensitive.
	got, err = repo.ByRawNameOrAlias(ctx, "starbucks coffee")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, m.ID, got.ID)

	got, err = repo.ByRawNameOrAlias(ctx, "NO SUCH MERCHANT")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMerchantUpdateAliases(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewMerchantRepo(db)

	m := ledger.Merchant{
		ID:             uuid.NewString(),
		NormalizedName: "Amazon.ca",
		Aliases:        []string{"AMAZON.CA*W526"},
	}
	require.NoError(t, repo.Insert(ctx, m))
	require.NoError(t, repo.UpdateAliases(ctx, m.ID, []string{"AMAZON.CA*W526", "AMZN Mktp CA"}))

	got, err := repo.Get(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, []string{"AMAZON.CA*W526", "AMZN Mktp CA"}, got.Aliases)
}

func TestMerchantNormalizedNameUnique(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openTestDB(t)
	repo := repository.NewMerchantRepo(db)

	require.NoError(t, repo.Insert(ctx, ledger.Merchant{ID: uuid.NewString(), NormalizedName: "Starbucks"}))
	// The unique index collates NOCASE, so a case variant is rejected too.
	require.Error(t, repo.Insert(ctx, ledger.Merchant{ID: uuid.NewString(), NormalizedName: "STARBUCKS"}))
}
