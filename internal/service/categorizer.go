package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/moneydash/moneydash/internal/database/repository"
	"github.com/moneydash/moneydash/internal/merchant"
)

// CategorizeService resolves raw merchant names on unresolved transactions,
// growing the merchant catalog as it goes and applying saved split rules.
type CategorizeService struct {
	Transactions *repository.TransactionRepo
	Merchants    *repository.MerchantRepo
	Rules        *repository.MerchantSplitRuleRepo
	Splitter     *SplitService
	Resolver     *merchant.Resolver
	Log          zerolog.Logger
}

// CategorizeResult summarizes one run.
type CategorizeResult struct {
	Resolved     int
	Created      int
	AliasesAdded int
	RulesApplied int
}

// Run resolves every transaction that has no merchant link yet. The catalog
// is fetched once and passed explicitly through the resolver; no-match is not
// an error — it creates a first-seen merchant instead.
func (s *CategorizeService) Run(ctx context.Context) (CategorizeResult, error) {
	var res CategorizeResult

	catalog, err := s.Merchants.List(ctx)
	if err != nil {
		return res, err
	}
	txns, err := s.Transactions.List(ctx, repository.TransactionFilters{Unresolved: true})
	if err != nil {
		return res, err
	}

	for _, txn := range txns {
		if txn.RawMerchantName == "" {
			continue
		}
		m, err := s.Resolver.FindMerchant(ctx, txn.RawMerchantName, catalog)
		if err != nil {
			return res, err
		}
		if m == nil {
			// Surface near misses before minting a new identity; they are
			// logged for review, never merged automatically.
			for _, sg := range merchant.SuggestAliases(txn.RawMerchantName, catalog, merchant.DefaultMaxDistanceRatio) {
				s.Log.Info().
					Str("raw", txn.RawMerchantName).
					Str("candidate", sg.Merchant.NormalizedName).
					Float64("ratio", sg.Ratio).
					Msg("possible alias of existing merchant")
			}
			created := merchant.NewFromRaw(txn.RawMerchantName)
			if err := s.Merchants.Insert(ctx, created); err != nil {
				return res, err
			}
			catalog = append(catalog, created)
			m = &catalog[len(catalog)-1]
			res.Created++
			s.Log.Debug().Str("merchant", created.NormalizedName).Msg("merchant created")
		} else if !m.HasAlias(txn.RawMerchantName) {
			m.Aliases = append(m.Aliases, txn.RawMerchantName)
			if err := s.Merchants.UpdateAliases(ctx, m.ID, m.Aliases); err != nil {
				return res, err
			}
			res.AliasesAdded++
			s.Log.Debug().
				Str("merchant", m.NormalizedName).
				Str("alias", txn.RawMerchantName).
				Msg("alias recorded")
		}

		if err := s.Transactions.LinkMerchant(ctx, txn.ID, m.ID); err != nil {
			return res, err
		}
		res.Resolved++

		if !txn.IsSplit {
			rule, err := s.Rules.ByFriendlyName(ctx, m.NormalizedName)
			if err != nil {
				return res, err
			}
			if rule != nil {
				if err := s.Splitter.ApplyRule(ctx, txn.ID, *rule); err != nil {
					return res, err
				}
				res.RulesApplied++
			}
		}
	}

	s.Log.Info().
		Int("resolved", res.Resolved).
		Int("created", res.Created).
		Int("aliases", res.AliasesAdded).
		Int("rules_applied", res.RulesApplied).
		Msg("categorization run complete")
	return res, nil
}
