package repository

import (
	"context"
	"database/sql"

	"github.com/moneydash/moneydash/internal/ledger"
)

// InvestmentTransactionRepo handles the investment_transactions collection.
type InvestmentTransactionRepo struct{ db *sql.DB }

func NewInvestmentTransactionRepo(db *sql.DB) *InvestmentTransactionRepo {
	return &InvestmentTransactionRepo{db: db}
}

const invTxnCols = `id, account_id, transaction_type, transaction_date, symbol, security_name,
 description, units, price, amount`

func (r *InvestmentTransactionRepo) ListByAccount(ctx context.Context, accountID string) ([]ledger.InvestmentTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+invTxnCols+` FROM investment_transactions WHERE account_id = ?
	ORDER BY transaction_date`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.InvestmentTransaction
	for rows.Next() {
		var t ledger.InvestmentTransaction
		var units, price, amount string
		if err := rows.Scan(&t.ID, &t.AccountID, &t.TransactionType, &t.TransactionDate,
			&t.Symbol, &t.SecurityName, &t.Description, &units, &price, &amount); err != nil {
			return nil, err
		}
		t.Units = dec(units)
		t.Price = dec(price)
		t.Amount = dec(amount)
		out = append(out, t)
	}
	return out, rows.Err()
}

// BulkInsert stores an imported statement batch atomically.
func (r *InvestmentTransactionRepo) BulkInsert(ctx context.Context, txns []ledger.InvestmentTransaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, t := range txns {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO investment_transactions(`+invTxnCols+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, t.AccountID, t.TransactionType, t.TransactionDate, t.Symbol, t.SecurityName,
			t.Description, t.Units.String(), t.Price.String(), t.Amount.String()); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
