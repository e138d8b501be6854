package repository

import (
	"context"
	"database/sql"

	"github.com/moneydash/moneydash/internal/ledger"
)

// SplitRepo handles the transaction_splits collection. Splits are replaced
// wholesale on save rather than edited in place.
type SplitRepo struct{ db *sql.DB }

func NewSplitRepo(db *sql.DB) *SplitRepo { return &SplitRepo{db: db} }

func (r *SplitRepo) ListForTransaction(ctx context.Context, transactionID string) ([]ledger.Split, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, transaction_id, chart_of_account_id, percentage, amount, description, is_fallback
	FROM transaction_splits WHERE transaction_id = ?
	ORDER BY is_fallback DESC, rowid`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Split
	for rows.Next() {
		var s ledger.Split
		var percent, amount string
		if err := rows.Scan(&s.ID, &s.TransactionID, &s.ChartOfAccountID, &percent, &amount,
			&s.Description, &s.IsFallback); err != nil {
			return nil, err
		}
		s.Percent = dec(percent)
		s.Amount = dec(amount)
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReplaceForTransaction atomically swaps a transaction's stored splits for the
// given set and updates the is_split flag. An empty set clears the split.
func (r *SplitRepo) ReplaceForTransaction(ctx context.Context, transactionID string, splits []ledger.Split) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transaction_splits WHERE transaction_id = ?`, transactionID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, s := range splits {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO transaction_splits(id, transaction_id, chart_of_account_id, percentage, amount, description, is_fallback)
		VALUES(?, ?, ?, ?, ?, ?, ?)
		`, s.ID, transactionID, s.ChartOfAccountID, s.Percent.String(), s.Amount.String(),
			s.Description, s.IsFallback); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE transactions SET is_split = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		len(splits) > 0, transactionID); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
