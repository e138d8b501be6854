package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/moneydash/moneydash/internal/ledger"
)

// TransactionFilters defines list filters.
type TransactionFilters struct {
	AccountID  string
	Unresolved bool      // only transactions not yet linked to a merchant
	Month      time.Time // first day of month; zero time = no month filter
	Search     string
}

// TransactionRepo handles the transactions collection.
type TransactionRepo struct{ db *sql.DB }

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const transactionCols = `id, account_id, date, amount, raw_merchant_name, merchant_id,
 chart_of_account_id, is_split, notes, created_at, updated_at`

func (r *TransactionRepo) Insert(ctx context.Context, t ledger.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(`+transactionCols+`)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`, t.ID, t.AccountID, t.Date, t.Amount.String(), t.RawMerchantName, t.MerchantID,
		t.ChartOfAccountID, t.IsSplit, t.Notes)
	return err
}

// BulkInsert inserts a batch atomically.
func (r *TransactionRepo) BulkInsert(ctx context.Context, txns []ledger.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, t := range txns {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO transactions(`+transactionCols+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		`, t.ID, t.AccountID, t.Date, t.Amount.String(), t.RawMerchantName, t.MerchantID,
			t.ChartOfAccountID, t.IsSplit, t.Notes); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (*ledger.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionCols+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]ledger.Transaction, error) {
	var where []string
	var args []any

	if f.AccountID != "" {
		where = append(where, "account_id = ?")
		args = append(args, f.AccountID)
	}
	if f.Unresolved {
		where = append(where, "merchant_id IS NULL")
	}
	if !f.Month.IsZero() {
		start := time.Date(f.Month.Year(), f.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		where = append(where, "date >= ? AND date < ?")
		args = append(args, start, end)
	}
	if f.Search != "" {
		where = append(where, "raw_merchant_name LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := `SELECT ` + transactionCols + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// LinkMerchant records the resolved merchant for a transaction.
func (r *TransactionRepo) LinkMerchant(ctx context.Context, id string, merchantID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET merchant_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		merchantID, id)
	return err
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	return err
}

func scanTransaction(s scanner) (ledger.Transaction, error) {
	var t ledger.Transaction
	var amount string
	var merchantID, coaID, notes sql.NullString
	err := s.Scan(&t.ID, &t.AccountID, &t.Date, &amount, &t.RawMerchantName, &merchantID,
		&coaID, &t.IsSplit, &notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return ledger.Transaction{}, err
	}
	t.Amount = dec(amount)
	t.MerchantID = nullStr(merchantID)
	t.ChartOfAccountID = nullStr(coaID)
	t.Notes = nullStr(notes)
	return t, nil
}
