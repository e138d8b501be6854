package merchant

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moneydash/moneydash/internal/ledger"
)

// Lookup is the external fallback consulted when the in-memory catalog has no
// match. Implementations typically search the persistence layer directly.
type Lookup interface {
	ByRawNameOrAlias(ctx context.Context, raw string) (*ledger.Merchant, error)
}

// Resolver matches raw merchant strings against a catalog of known merchants.
// The catalog is always passed explicitly; the resolver holds no state beyond
// its optional external lookup.
type Resolver struct {
	Lookup Lookup
}

// FindMerchant resolves a raw name against the catalog. Priority is fixed:
// exact normalized-name match first, then alias match, then the external
// lookup. A nil result with a nil error means "no match" — a valid terminal
// state, not a failure.
func (r *Resolver) FindMerchant(ctx context.Context, raw string, catalog []ledger.Merchant) (*ledger.Merchant, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	norm := Normalize(raw)

	for i := range catalog {
		if strings.EqualFold(catalog[i].NormalizedName, norm) {
			return &catalog[i], nil
		}
	}
	for i := range catalog {
		if catalog[i].HasAlias(raw) || catalog[i].HasAlias(norm) {
			return &catalog[i], nil
		}
	}
	if r.Lookup != nil {
		return r.Lookup.ByRawNameOrAlias(ctx, raw)
	}
	return nil, nil
}

// NewFromRaw builds a first-seen merchant for a raw string. The raw form is
// kept as an alias so the next import resolves without renormalizing.
func NewFromRaw(raw string) ledger.Merchant {
	return ledger.Merchant{
		ID:             uuid.NewString(),
		NormalizedName: Normalize(raw),
		Aliases:        []string{raw},
		CreatedAt:      time.Now().UTC(),
	}
}
