package repository

import (
	"context"
	"database/sql"

	"github.com/moneydash/moneydash/internal/ledger"
)

// ChartOfAccountRepo handles the chart_of_accounts collection.
type ChartOfAccountRepo struct{ db *sql.DB }

func NewChartOfAccountRepo(db *sql.DB) *ChartOfAccountRepo { return &ChartOfAccountRepo{db: db} }

func (r *ChartOfAccountRepo) List(ctx context.Context) ([]ledger.ChartOfAccount, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, code, name, description FROM chart_of_accounts ORDER BY code, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.ChartOfAccount
	for rows.Next() {
		var c ledger.ChartOfAccount
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ChartOfAccountRepo) Get(ctx context.Context, id string) (*ledger.ChartOfAccount, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, code, name, description FROM chart_of_accounts WHERE id = ?`, id)
	var c ledger.ChartOfAccount
	if err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ChartOfAccountRepo) Upsert(ctx context.Context, c ledger.ChartOfAccount) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO chart_of_accounts(id, code, name, description) VALUES(?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET code = excluded.code, name = excluded.name, description = excluded.description
	`, c.ID, c.Code, c.Name, c.Description)
	return err
}

func (r *ChartOfAccountRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chart_of_accounts WHERE id = ?`, id)
	return err
}
