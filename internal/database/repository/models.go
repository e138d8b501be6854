// Package repository provides per-collection CRUD over the sqlite store.
// Repos are thin structs over *sql.DB; every method takes a context and maps
// rows to the shared ledger types.
package repository

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// dec parses a stored decimal column. Empty strings read as zero so legacy
// rows with missing numerics don't poison a whole list call.
func dec(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// nullStr converts sql.NullString to an optional.
func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
