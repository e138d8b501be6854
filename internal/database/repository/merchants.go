package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/moneydash/moneydash/internal/ledger"
)

// MerchantRepo handles the merchants collection. Aliases are stored as a JSON
// array column, a leftover from the document-store origin of this data.
type MerchantRepo struct{ db *sql.DB }

func NewMerchantRepo(db *sql.DB) *MerchantRepo { return &MerchantRepo{db: db} }

func (r *MerchantRepo) List(ctx context.Context) ([]ledger.Merchant, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, normalized_name, aliases, created_at FROM merchants ORDER BY normalized_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Merchant
	for rows.Next() {
		m, err := scanMerchant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MerchantRepo) Get(ctx context.Context, id string) (*ledger.Merchant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, normalized_name, aliases, created_at FROM merchants WHERE id = ?`, id)
	m, err := scanMerchant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MerchantRepo) Insert(ctx context.Context, m ledger.Merchant) error {
	aliases, err := json.Marshal(m.Aliases)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO merchants(id, normalized_name, aliases, created_at)
	VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, m.ID, m.NormalizedName, string(aliases))
	return err
}

// UpdateAliases rewrites a merchant's alias set.
func (r *MerchantRepo) UpdateAliases(ctx context.Context, id string, aliases []string) error {
	raw, err := json.Marshal(aliases)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE merchants SET aliases = ? WHERE id = ?`, string(raw), id)
	return err
}

// ByRawNameOrAlias is the database-backed fallback lookup behind the
// in-memory resolver: normalized name first, then the alias array.
func (r *MerchantRepo) ByRawNameOrAlias(ctx context.Context, raw string) (*ledger.Merchant, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, normalized_name, aliases, created_at FROM merchants
	WHERE normalized_name = ? COLLATE NOCASE LIMIT 1`, raw)
	m, err := scanMerchant(row)
	if err == nil {
		return &m, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	row = r.db.QueryRowContext(ctx, `
	SELECT id, normalized_name, aliases, created_at FROM merchants
	WHERE EXISTS (SELECT 1 FROM json_each(merchants.aliases) WHERE json_each.value = ? COLLATE NOCASE)
	ORDER BY normalized_name LIMIT 1`, raw)
	m, err = scanMerchant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func scanMerchant(s scanner) (ledger.Merchant, error) {
	var m ledger.Merchant
	var aliases string
	if err := s.Scan(&m.ID, &m.NormalizedName, &aliases, &m.CreatedAt); err != nil {
		return ledger.Merchant{}, err
	}
	if aliases != "" {
		if err := json.Unmarshal([]byte(aliases), &m.Aliases); err != nil {
			return ledger.Merchant{}, err
		}
	}
	return m, nil
}
