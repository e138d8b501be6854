package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/moneydash/moneydash/internal/ledger"
)

// ruleSplitRow is the persisted shape of one template row.
type ruleSplitRow struct {
	ChartOfAccountID string          `json:"chart_of_account_id"`
	Percentage       decimal.Decimal `json:"percentage"`
}

// MerchantSplitRuleRepo handles the merchant_split_rules collection. One rule
// per merchant friendly name, enforced by a unique index.
type MerchantSplitRuleRepo struct{ db *sql.DB }

func NewMerchantSplitRuleRepo(db *sql.DB) *MerchantSplitRuleRepo {
	return &MerchantSplitRuleRepo{db: db}
}

func (r *MerchantSplitRuleRepo) List(ctx context.Context) ([]ledger.MerchantSplitRule, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, merchant_friendly_name, splits, created_at FROM merchant_split_rules
	ORDER BY merchant_friendly_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.MerchantSplitRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

// ByFriendlyName returns the rule for a merchant's friendly name, or nil.
func (r *MerchantSplitRuleRepo) ByFriendlyName(ctx context.Context, name string) (*ledger.MerchantSplitRule, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, merchant_friendly_name, splits, created_at FROM merchant_split_rules
	WHERE merchant_friendly_name = ? COLLATE NOCASE`, name)
	rule, err := scanRule(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *MerchantSplitRuleRepo) Upsert(ctx context.Context, rule ledger.MerchantSplitRule) error {
	rows := make([]ruleSplitRow, 0, len(rule.Splits))
	for _, s := range rule.Splits {
		rows = append(rows, ruleSplitRow{ChartOfAccountID: s.ChartOfAccountID, Percentage: s.Percentage})
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO merchant_split_rules(id, merchant_friendly_name, splits, created_at)
	VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(merchant_friendly_name) DO UPDATE SET splits = excluded.splits
	`, rule.ID, rule.MerchantFriendlyName, string(raw))
	return err
}

func (r *MerchantSplitRuleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM merchant_split_rules WHERE id = ?`, id)
	return err
}

func scanRule(s scanner) (ledger.MerchantSplitRule, error) {
	var rule ledger.MerchantSplitRule
	var raw string
	if err := s.Scan(&rule.ID, &rule.MerchantFriendlyName, &raw, &rule.CreatedAt); err != nil {
		return ledger.MerchantSplitRule{}, err
	}
	var rows []ruleSplitRow
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &rows); err != nil {
			return ledger.MerchantSplitRule{}, err
		}
	}
	for _, row := range rows {
		rule.Splits = append(rule.Splits, ledger.RuleSplit{
			ChartOfAccountID: row.ChartOfAccountID,
			Percentage:       row.Percentage,
		})
	}
	return rule, nil
}
