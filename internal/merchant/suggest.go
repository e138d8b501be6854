package merchant

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/moneydash/moneydash/internal/ledger"
)

// DefaultMaxDistanceRatio is the edit-distance share of the longer string
// above which two names are no longer considered near misses.
const DefaultMaxDistanceRatio = 0.4

// Suggestion pairs a catalog merchant with its distance ratio to the probed
// name. Lower is closer.
type Suggestion struct {
	Merchant ledger.Merchant
	Ratio    float64
}

// SuggestAliases returns catalog merchants whose normalized name is a near
// miss of the raw string, closest first. Exact matches are excluded — those
// are FindMerchant's job. Candidates are surfaced for user confirmation and
// never merged automatically.
func SuggestAliases(raw string, catalog []ledger.Merchant, maxRatio float64) []Suggestion {
	norm := strings.ToLower(Normalize(raw))
	if norm == "" {
		return nil
	}

	var out []Suggestion
	for _, m := range catalog {
		name := strings.ToLower(m.NormalizedName)
		if name == "" || name == norm {
			continue
		}
		dist := levenshtein.ComputeDistance(norm, name)
		longest := len(norm)
		if len(name) > longest {
			longest = len(name)
		}
		ratio := float64(dist) / float64(longest)
		if ratio < maxRatio {
			out = append(out, Suggestion{Merchant: m, Ratio: ratio})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio < out[j].Ratio })
	return out
}
