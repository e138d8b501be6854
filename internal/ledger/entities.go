package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ChartOfAccount is a ledger category that transactions or split rows are
// allocated to. Exactly one account in a working set is the fallback ("Misc")
// entry; see FindFallbackAccount.
type ChartOfAccount struct {
	ID          string
	Code        string
	Name        string
	Description string
}

// Transaction is a financial event against a bank account.
type Transaction struct {
	ID               string
	AccountID        string
	Date             time.Time
	Amount           decimal.Decimal
	RawMerchantName  string
	MerchantID       *string
	ChartOfAccountID *string
	IsSplit          bool
	Notes            *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Split is one allocation row belonging to a transaction. Percent values
// across a transaction's stored splits always sum to 100.00 within 0.01.
type Split struct {
	ID               string
	TransactionID    string
	ChartOfAccountID string
	Percent          decimal.Decimal
	Amount           decimal.Decimal
	Description      string
	IsFallback       bool
}

// Merchant is a canonical payee identity distinct from the raw description
// strings that refer to it. Aliases are compared case-insensitively.
type Merchant struct {
	ID             string
	NormalizedName string
	Aliases        []string
	CreatedAt      time.Time
}

// HasAlias reports whether raw matches one of the merchant's aliases,
// case-insensitively.
func (m Merchant) HasAlias(raw string) bool {
	for _, a := range m.Aliases {
		if strings.EqualFold(a, raw) {
			return true
		}
	}
	return false
}

// RuleSplit is one row of a saved split template.
type RuleSplit struct {
	ChartOfAccountID string
	Percentage       decimal.Decimal
}

// MerchantSplitRule is a saved default split template keyed by a merchant's
// friendly name. Percentages sum to 100; validated at save time.
type MerchantSplitRule struct {
	ID                   string
	MerchantFriendlyName string
	Splits               []RuleSplit
	CreatedAt            time.Time
}

// TotalPercentage sums the rule's split percentages.
func (r MerchantSplitRule) TotalPercentage() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Splits {
		total = total.Add(s.Percentage)
	}
	return total
}

// Holding is a snapshot of a position in an investment account as of a given
// date. Multiple snapshots exist per security over time.
type Holding struct {
	ID           string
	AccountID    string
	Symbol       string
	SecurityName string
	AssetType    string
	Units        decimal.Decimal
	Price        decimal.Decimal
	MarketValue  decimal.Decimal
	BookValue    decimal.Decimal
	AsOfDate     time.Time
}

// InvestmentTransaction is an event against a holding. There is no stored
// foreign key to Holding; the relationship is inferred by text matching.
type InvestmentTransaction struct {
	ID              string
	AccountID       string
	TransactionType string
	TransactionDate time.Time
	Symbol          string
	SecurityName    string
	Description     string
	Units           decimal.Decimal
	Price           decimal.Decimal
	Amount          decimal.Decimal
}

// fallbackCodes and fallbackNames designate the Misc chart-of-account entry.
var (
	fallbackCodes = map[string]struct{}{"misc": {}, "9999": {}}
	fallbackNames = map[string]struct{}{"misc": {}, "miscellaneous": {}}
)

// FindFallbackAccount returns the Misc/fallback entry of a chart-of-accounts
// set, or nil when none is present. Matching is case-insensitive on code
// ("MISC", "9999") and name ("misc", "miscellaneous").
func FindFallbackAccount(accounts []ChartOfAccount) *ChartOfAccount {
	for i := range accounts {
		code := strings.ToLower(strings.TrimSpace(accounts[i].Code))
		name := strings.ToLower(strings.TrimSpace(accounts[i].Name))
		if _, ok := fallbackCodes[code]; ok {
			return &accounts[i]
		}
		if _, ok := fallbackNames[name]; ok {
			return &accounts[i]
		}
	}
	return nil
}

// CurrentSnapshot filters holdings down to the set sharing the latest
// as-of date. An empty input yields an empty result.
func CurrentSnapshot(holdings []Holding) []Holding {
	var latest time.Time
	for _, h := range holdings {
		if h.AsOfDate.After(latest) {
			latest = h.AsOfDate
		}
	}
	if latest.IsZero() {
		return nil
	}
	var out []Holding
	for _, h := range holdings {
		if h.AsOfDate.Equal(latest) {
			out = append(out, h)
		}
	}
	return out
}
