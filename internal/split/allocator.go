// Package split maintains a multi-row allocation of one transaction's amount
// across chart-of-account categories. One row is reserved as the fallback
// ("Misc") row and auto-absorbs whatever percentage the remaining rows do not
// claim, so the total always sums to 100%.
package split

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneydash/moneydash/internal/ledger"
)

var (
	// ErrNoFallbackAccount means the chart of accounts has no Misc entry, so
	// an allocator cannot be built.
	ErrNoFallbackAccount = errors.New("no fallback (Misc) account in chart of accounts")
	// ErrIncompleteSplit means a row carries a nonzero allocation but no
	// category.
	ErrIncompleteSplit = errors.New("split row has no chart of account")
	// ErrUnbalancedSplit means the percent total drifted from 100 by more
	// than the tolerance. Recalculate restores the invariant after every
	// edit, so hitting this indicates a logic defect; the save must be
	// rejected.
	ErrUnbalancedSplit = errors.New("split percentages do not total 100")
)

var (
	hundred   = decimal.NewFromInt(100)
	tolerance = decimal.RequireFromString("0.01")
)

// lastEdited records which of the two linked fields the user touched last, so
// recalculation direction stays unambiguous.
type lastEdited uint8

const (
	editedPercent lastEdited = iota
	editedAmount
)

// Row is one allocation line. The fallback row is always at index 0 and is
// never edited directly.
type Row struct {
	ChartOfAccountID string
	Description      string
	Percent          decimal.Decimal
	Amount           decimal.Decimal
	IsFallback       bool

	lastEdited lastEdited
}

// Allocator holds the working state of a split edit session.
type Allocator struct {
	transactionID string
	total         decimal.Decimal
	fallback      ledger.ChartOfAccount
	rows          []Row
}

// NewAllocator builds an allocator for a transaction total. When existing
// stored splits are given they are loaded verbatim; otherwise the session is
// seeded with a fallback row at 100% and one empty category row. Returns
// ErrNoFallbackAccount when accounts carries no Misc entry.
func NewAllocator(transactionID string, total decimal.Decimal, existing []ledger.Split, accounts []ledger.ChartOfAccount) (*Allocator, error) {
	fb := ledger.FindFallbackAccount(accounts)
	if fb == nil {
		return nil, ErrNoFallbackAccount
	}

	a := &Allocator{transactionID: transactionID, total: total, fallback: *fb}

	if len(existing) == 0 {
		a.rows = []Row{
			{
				ChartOfAccountID: fb.ID,
				Description:      "Misc",
				Percent:          hundred,
				Amount:           total.Round(2),
				IsFallback:       true,
			},
			{},
		}
		return a, nil
	}

	var fallbackRow *Row
	var categories []Row
	for _, s := range existing {
		r := Row{
			ChartOfAccountID: s.ChartOfAccountID,
			Description:      s.Description,
			Percent:          s.Percent,
			Amount:           s.Amount,
			lastEdited:       editedPercent,
		}
		if s.IsFallback || s.ChartOfAccountID == fb.ID {
			r.IsFallback = true
			r.ChartOfAccountID = fb.ID
			if fallbackRow == nil {
				fallbackRow = &r
				continue
			}
			// A second fallback row in stored data collapses into a plain
			// category row; recalculation absorbs the difference.
			r.IsFallback = false
		}
		categories = append(categories, r)
	}
	if fallbackRow == nil {
		fallbackRow = &Row{
			ChartOfAccountID: fb.ID,
			Description:      "Misc",
			IsFallback:       true,
		}
	}
	a.rows = append([]Row{*fallbackRow}, categories...)
	a.recalculate()
	return a, nil
}

// Rows returns a copy of the current rows, fallback row first.
func (a *Allocator) Rows() []Row {
	out := make([]Row, len(a.rows))
	copy(out, a.rows)
	return out
}

// Total returns the transaction total being allocated.
func (a *Allocator) Total() decimal.Decimal { return a.total }

// TransactionID returns the transaction this session belongs to.
func (a *Allocator) TransactionID() string { return a.transactionID }

// AddRow appends one empty category row.
func (a *Allocator) AddRow() {
	a.rows = append(a.rows, Row{})
	a.recalculate()
}

// RemoveRow removes a category row. The index is 0-based over category rows
// only; the fallback row cannot be removed.
func (a *Allocator) RemoveRow(index int) error {
	i, err := a.categoryIndex(index)
	if err != nil {
		return err
	}
	a.rows = append(a.rows[:i], a.rows[i+1:]...)
	a.recalculate()
	return nil
}

// SetCategory changes a category row's target account. No recalculation is
// needed since the allocation itself is unchanged.
func (a *Allocator) SetCategory(index int, chartOfAccountID string) error {
	i, err := a.categoryIndex(index)
	if err != nil {
		return err
	}
	a.rows[i].ChartOfAccountID = chartOfAccountID
	return nil
}

// SetDescription changes a category row's free-text description.
func (a *Allocator) SetDescription(index int, description string) error {
	i, err := a.categoryIndex(index)
	if err != nil {
		return err
	}
	a.rows[i].Description = description
	return nil
}

// SetPercent sets a category row's percent and derives its amount.
func (a *Allocator) SetPercent(index int, percent decimal.Decimal) error {
	i, err := a.categoryIndex(index)
	if err != nil {
		return err
	}
	a.rows[i].Percent = percent
	a.rows[i].Amount = percent.Div(hundred).Mul(a.total).Round(2)
	a.rows[i].lastEdited = editedPercent
	a.recalculate()
	return nil
}

// SetAmount sets a category row's amount and derives its percent.
func (a *Allocator) SetAmount(index int, amount decimal.Decimal) error {
	i, err := a.categoryIndex(index)
	if err != nil {
		return err
	}
	a.rows[i].Amount = amount
	if a.total.IsZero() {
		a.rows[i].Percent = decimal.Zero
	} else {
		a.rows[i].Percent = amount.Div(a.total).Mul(hundred)
	}
	a.rows[i].lastEdited = editedAmount
	a.recalculate()
	return nil
}

// recalculate restores the 100% invariant by construction: the fallback row
// absorbs whatever the category rows do not claim, floored at zero.
func (a *Allocator) recalculate() {
	claimed := decimal.Zero
	for _, r := range a.rows[1:] {
		claimed = claimed.Add(r.Percent)
	}
	remaining := hundred.Sub(claimed)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	a.rows[0].Percent = remaining
	a.rows[0].Amount = remaining.Div(hundred).Mul(a.total).Round(2)
}

// Validate checks the state before persistence: every row with a nonzero
// allocation needs a category, and the percent total must be 100 within 0.01.
// The second check should be unreachable given recalculate, but is re-checked
// so floating drift can never be persisted.
func (a *Allocator) Validate() error {
	for i, r := range a.rows[1:] {
		if r.ChartOfAccountID == "" && (!r.Percent.IsZero() || !r.Amount.IsZero()) {
			return fmt.Errorf("row %d: %w", i, ErrIncompleteSplit)
		}
	}
	total := decimal.Zero
	for _, r := range a.rows {
		total = total.Add(r.Percent)
	}
	if total.Sub(hundred).Abs().GreaterThan(tolerance) {
		return fmt.Errorf("%w: total %s%%", ErrUnbalancedSplit, total.StringFixed(2))
	}
	return nil
}

// Persistable returns the rows to store: every row with a nonzero percent or
// amount, the fallback row included only while it still claims something.
func (a *Allocator) Persistable() []ledger.Split {
	var out []ledger.Split
	for _, r := range a.rows {
		if r.Percent.IsZero() && r.Amount.IsZero() {
			continue
		}
		out = append(out, ledger.Split{
			ID:               uuid.NewString(),
			TransactionID:    a.transactionID,
			ChartOfAccountID: r.ChartOfAccountID,
			Percent:          r.Percent.Round(2),
			Amount:           r.Amount,
			Description:      r.Description,
			IsFallback:       r.IsFallback,
		})
	}
	return out
}

// categoryIndex maps a 0-based category-row index onto the backing slice,
// which keeps the fallback row at position 0.
func (a *Allocator) categoryIndex(index int) (int, error) {
	if index < 0 || index >= len(a.rows)-1 {
		return 0, fmt.Errorf("split row %d out of range", index)
	}
	return index + 1, nil
}
