package repository

import (
	"context"
	"database/sql"

	"github.com/moneydash/moneydash/internal/ledger"
)

// HoldingRepo handles the holdings collection.
type HoldingRepo struct{ db *sql.DB }

func NewHoldingRepo(db *sql.DB) *HoldingRepo { return &HoldingRepo{db: db} }

const holdingCols = `id, account_id, symbol, security_name, asset_type, units, price,
 market_value, book_value, as_of_date`

func (r *HoldingRepo) ListByAccount(ctx context.Context, accountID string) ([]ledger.Holding, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT `+holdingCols+` FROM holdings WHERE account_id = ?
	ORDER BY as_of_date DESC, security_name`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Holding
	for rows.Next() {
		var h ledger.Holding
		var units, price, market, book string
		if err := rows.Scan(&h.ID, &h.AccountID, &h.Symbol, &h.SecurityName, &h.AssetType,
			&units, &price, &market, &book, &h.AsOfDate); err != nil {
			return nil, err
		}
		h.Units = dec(units)
		h.Price = dec(price)
		h.MarketValue = dec(market)
		h.BookValue = dec(book)
		out = append(out, h)
	}
	return out, rows.Err()
}

// BulkInsert stores a holdings snapshot batch atomically.
func (r *HoldingRepo) BulkInsert(ctx context.Context, holdings []ledger.Holding) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, h := range holdings {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO holdings(`+holdingCols+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, h.ID, h.AccountID, h.Symbol, h.SecurityName, h.AssetType, h.Units.String(),
			h.Price.String(), h.MarketValue.String(), h.BookValue.String(), h.AsOfDate); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
