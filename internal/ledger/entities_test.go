package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFindFallbackAccount(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		accounts []ChartOfAccount
		wantID   string
	}{
		{
			name: "by code 9999",
			accounts: []ChartOfAccount{
				{ID: "a", Code: "5000", Name: "Groceries"},
				{ID: "b", Code: "9999", Name: "Other"},
			},
			wantID: "b",
		},
		{
			name: "by code misc case-insensitive",
			accounts: []ChartOfAccount{
				{ID: "a", Code: "MISC", Name: "Other"},
			},
			wantID: "a",
		},
		{
			name: "by name miscellaneous",
			accounts: []ChartOfAccount{
				{ID: "a", Code: "5000", Name: "Groceries"},
				{ID: "b", Code: "8000", Name: "Miscellaneous"},
			},
			wantID: "b",
		},
		{
			name: "none present",
			accounts: []ChartOfAccount{
				{ID: "a", Code: "5000", Name: "Groceries"},
			},
			wantID: "",
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := FindFallbackAccount(tc.accounts)
			if tc.wantID == "" {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.Equal(t, tc.wantID, got.ID)
		})
	}
}

func TestCurrentSnapshot(t *testing.T) {
	t.Parallel()
	jan := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	holdings := []Holding{
		{ID: "h1", Symbol: "VEQT", AsOfDate: jan},
		{ID: "h2", Symbol: "VEQT", AsOfDate: feb},
		{ID: "h3", Symbol: "XEQT", AsOfDate: feb},
	}

	got := CurrentSnapshot(holdings)
	require.Len(t, got, 2)
	require.Equal(t, "h2", got[0].ID)
	require.Equal(t, "h3", got[1].ID)
}

func TestCurrentSnapshotEmpty(t *testing.T) {
	t.Parallel()
	require.Nil(t, CurrentSnapshot(nil))
}

func TestMerchantHasAlias(t *testing.T) {
	t.Parallel()
	m := Merchant{Aliases: []string{"STARBUCKS #010"}}
	require.True(t, m.HasAlias("starbucks #010"))
	require.False(t, m.HasAlias("STARBUCKS #011"))
}

func TestRuleTotalPercentage(t *testing.T) {
	t.Parallel()
	r := MerchantSplitRule{Splits: []RuleSplit{
		{ChartOfAccountID: "a", Percentage: decimal.RequireFromString("40")},
		{ChartOfAccountID: "b", Percentage: decimal.RequireFromString("60")},
	}}
	require.True(t, r.TotalPercentage().Equal(decimal.RequireFromString("100")))
}

func TestClassifyInvestmentType(t *testing.T) {
	t.Parallel()
	cases := []struct {
		desc string
		want string
	}{
		{"Interest reinvested", "Dividend Reinvestment"},
		{"Dividend reinvestment DRIP", "Dividend Reinvestment"},
		{"Dividend: FORTIS INC", "Dividend Payment"},
		{"Security Purchase: VEQT", "Buy"},
		{"Buy 10 units", "Buy"},
		{"Security Sale: VEQT", "Sell"},
		{"Sell 5 units", "Sell"},
		{"Interest on sale proceeds", "Sell"},
		{"Transfer-In from chequing", "Transfer In"},
		{"Transfer-Out to chequing", "Transfer Out"},
		{"Quarterly admin fee", "Other"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifyInvestmentType(tc.desc), "%q", tc.desc)
	}
}
