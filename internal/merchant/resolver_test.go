package merchant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moneydash/moneydash/internal/ledger"
)

type stubLookup struct {
	probed string
	result *ledger.Merchant
}

func (s *stubLookup) ByRawNameOrAlias(_ context.Context, raw string) (*ledger.Merchant, error) {
	s.probed = raw
	return s.result, nil
}

func testCatalog() []ledger.Merchant {
	return []ledger.Merchant{
		{ID: "m-starbucks", NormalizedName: "Starbucks", Aliases: []string{"STARBUCKS #010"}},
		{ID: "m-freshco", NormalizedName: "Fresh Co", Aliases: []string{"FRESHCO #9912"}},
	}
}

func TestFindMerchantByNormalizedName(t *testing.T) {
	t.Parallel()
	r := &Resolver{}

	// A store number the catalog has never seen still lands on the same
	// merchant once normalized.
	m, err := r.FindMerchant(context.Background(), "STARBUCKS #447", testCatalog())
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "m-starbucks", m.ID)
}

func TestFindMerchantByAlias(t *testing.T) {
	t.Parallel()
	r := &Resolver{}

	// "FRESHCO #9912" normalizes to "Freshco", which matches no normalized
	// name; the stored raw alias is what resolves it.
	m, err := r.FindMerchant(context.Background(), "FRESHCO #9912", testCatalog())
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "m-freshco", m.ID)
}

func TestFindMerchantNormalizedNameBeatsAlias(t *testing.T) {
	t.Parallel()
	r := &Resolver{}
	catalog := []ledger.Merchant{
		{ID: "m-alias", NormalizedName: "Costco Wholesale", Aliases: []string{"Costco"}},
		{ID: "m-name", NormalizedName: "Costco"},
	}

	m, err := r.FindMerchant(context.Background(), "COSTCO", catalog)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, "m-name", m.ID)
}

func TestFindMerchantEmptyRaw(t *testing.T) {
	t.Parallel()
	r := &Resolver{}
	m, err := r.FindMerchant(context.Background(), "  ", testCatalog())
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestFindMerchantNoMatchIsNotAnError(t *testing.T) {
	t.Parallel()
	r := &Resolver{}
	m, err := r.FindMerchant(context.Background(), "NEVER SEEN BEFORE", testCatalog())
	require.NoError(t, err)
	require.Nil(t, m)
}

func TestFindMerchantFallsBackToLookup(t *testing.T) {
	t.Parallel()
	want := &ledger.Merchant{ID: "m-db", NormalizedName: "Petro-canada"}
	lk := &stubLookup{result: want}
	r := &Resolver{Lookup: lk}

	m, err := r.FindMerchant(context.Background(), "PETRO-CANADA 0784", testCatalog())
	require.NoError(t, err)
	require.Equal(t, want, m)
	require.Equal(t, "PETRO-CANADA 0784", lk.probed)
}

func TestFindMerchantSkipsLookupOnCatalogHit(t *testing.T) {
	t.Parallel()
	lk := &stubLookup{}
	r := &Resolver{Lookup: lk}

	m, err := r.FindMerchant(context.Background(), "STARBUCKS #010", testCatalog())
	require.NoError(t, err)
	require.Equal(t, "m-starbucks", m.ID)
	require.Empty(t, lk.probed)
}

func TestNewFromRaw(t *testing.T) {
	t.Parallel()
	m := NewFromRaw("AMAZON.CA*W526")
	require.NotEmpty(t, m.ID)
	require.Equal(t, "Amazon.ca", m.NormalizedName)
	require.Equal(t, []string{"AMAZON.CA*W526"}, m.Aliases)
	require.False(t, m.CreatedAt.IsZero())
}

func TestSuggestAliases(t *testing.T) {
	t.Parallel()
	catalog := []ledger.Merchant{
		{ID: "m-starbucks", NormalizedName: "Starbucks"},
		{ID: "m-starbuck", NormalizedName: "Starbuckz"},
		{ID: "m-walmart", NormalizedName: "Walmart"},
	}

	got := SuggestAliases("STARBUCS", catalog, DefaultMaxDistanceRatio)
	require.Len(t, got, 2)
	require.Equal(t, "m-starbucks", got[0].Merchant.ID)
	require.Equal(t, "m-starbuck", got[1].Merchant.ID)
	require.Less(t, got[0].Ratio, got[1].Ratio)
}

func TestSuggestAliasesExcludesExactMatch(t *testing.T) {
	t.Parallel()
	catalog := []ledger.Merchant{{ID: "m-starbucks", NormalizedName: "Starbucks"}}
	require.Empty(t, SuggestAliases("STARBUCKS #010", catalog, DefaultMaxDistanceRatio))
}
