// Package timeline infers which investment transactions belong to a holding.
// Upstream data carries no foreign key between the two, so membership is
// decided by heuristic text matching over symbols, security names, and
// statement descriptions, trading precision for recall.
package timeline

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneydash/moneydash/internal/ledger"
)

// Config carries the fuzzy-match thresholds. The defaults reflect the only
// tuning the matching rules ever received; change them only with evidence.
type Config struct {
	// MinWordLen is the length a word must exceed to count in the
	// two-word positional rule.
	MinWordLen int
	// MinStrongWordLen is the length a name must exceed for the
	// single-word rule and for substring containment. Keeps short names
	// like "abc" from contaminating several securities.
	MinStrongWordLen int
}

// DefaultConfig returns the tuned thresholds.
func DefaultConfig() Config {
	return Config{MinWordLen: 2, MinStrongWordLen: 5}
}

// Matcher matches investment transactions to holdings.
type Matcher struct {
	cfg Config
}

// NewMatcher builds a matcher; zero thresholds fall back to the defaults.
func NewMatcher(cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.MinWordLen <= 0 {
		cfg.MinWordLen = def.MinWordLen
	}
	if cfg.MinStrongWordLen <= 0 {
		cfg.MinStrongWordLen = def.MinStrongWordLen
	}
	return &Matcher{cfg: cfg}
}

// Timeline is the date-ordered set of transactions inferred to belong to one
// holding. An empty Entries list is a valid outcome: a holding may have no
// discoverable history at all (opening balance imports, for one).
type Timeline struct {
	Holding ledger.Holding
	Entries []ledger.InvestmentTransaction
}

// purchaseType reports whether a free-text transaction type counts as money
// going into the position.
func purchaseType(transactionType string) bool {
	t := strings.ToLower(transactionType)
	return strings.Contains(t, "buy") ||
		strings.Contains(t, "purchase") ||
		strings.Contains(t, "contribution")
}

// FirstPurchaseDate returns the earliest buy/purchase/contribution entry's
// date. ok is false when the timeline has no such entry.
func (t Timeline) FirstPurchaseDate() (first time.Time, ok bool) {
	for _, e := range t.Entries {
		if purchaseType(e.TransactionType) {
			return e.TransactionDate, true
		}
	}
	return time.Time{}, false
}

// TotalInvested sums the absolute amounts of buy/purchase/contribution
// entries.
func (t Timeline) TotalInvested() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.Entries {
		if purchaseType(e.TransactionType) {
			total = total.Add(e.Amount.Abs())
		}
	}
	return total
}

// Match collects every transaction that plausibly belongs to the holding and
// orders them into a timeline, oldest first.
func (m *Matcher) Match(h ledger.Holding, txns []ledger.InvestmentTransaction) Timeline {
	tl := Timeline{Holding: h}
	symbol := normalize(h.Symbol)
	name := normalize(h.SecurityName)

	for _, t := range txns {
		if m.matches(symbol, name, t) {
			tl.Entries = append(tl.Entries, t)
		}
	}
	sort.SliceStable(tl.Entries, func(i, j int) bool {
		return tl.Entries[i].TransactionDate.Before(tl.Entries[j].TransactionDate)
	})
	return tl
}

// MatchAll builds one timeline per holding. Holdings are independent, so the
// loop is plain sequential; cost is O(holdings × transactions).
func (m *Matcher) MatchAll(holdings []ledger.Holding, txns []ledger.InvestmentTransaction) []Timeline {
	out := make([]Timeline, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, m.Match(h, txns))
	}
	return out
}

func (m *Matcher) matches(symbol, name string, t ledger.InvestmentTransaction) bool {
	if symbol != "" {
		if s := normalize(t.Symbol); s != "" && s == symbol {
			return true
		}
	}
	if name == "" {
		return false
	}
	if s := normalize(t.SecurityName); s != "" && m.fuzzyEqual(s, name) {
		return true
	}
	if d := normalize(t.Description); d != "" {
		if m.fuzzyEqual(d, name) {
			return true
		}
		if extracted := ExtractSecurityName(t.Description); extracted != "" && m.fuzzyEqual(extracted, name) {
			return true
		}
	}
	return false
}

// fuzzyEqual compares two normalized names through an ordered list of
// relaxations: exact equality, guarded substring containment, first-two-word
// positional match, and the guarded single-word rule.
func (m *Matcher) fuzzyEqual(a, b string) bool {
	if a == b {
		return true
	}

	shorter := a
	if len(b) < len(a) {
		shorter = b
	}
	if len(shorter) > m.cfg.MinStrongWordLen && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return true
	}

	aw := strings.Fields(a)
	bw := strings.Fields(b)
	if len(aw) >= 2 && len(bw) >= 2 &&
		len(aw[0]) > m.cfg.MinWordLen && len(aw[1]) > m.cfg.MinWordLen &&
		aw[0] == bw[0] && aw[1] == bw[1] {
		return true
	}
	if (len(aw) == 1 || len(bw) == 1) && len(aw) > 0 && len(bw) > 0 {
		return aw[0] == bw[0] && len(aw[0]) > m.cfg.MinStrongWordLen
	}
	return false
}

// descriptionLabels are tried in order; the first matching prefix wins.
var descriptionLabels = []string{
	"security purchase:",
	"security sale:",
	"buy:",
	"sell:",
	"purchase:",
	"distribution:",
	"dividend:",
	"reinvestment:",
}

// boilerplateSuffixRe strips legal boilerplate off the tail of an extracted
// name; applied until stable since the suffixes stack ("class a trust units").
var boilerplateSuffixRe = regexp.MustCompile(`\s+(trust units|units|class [a-z])$`)

// ExtractSecurityName pulls a security name out of a statement description.
// When no label matches, the whole description is normalized as a last
// resort.
func ExtractSecurityName(description string) string {
	s := normalize(description)
	if s == "" {
		return ""
	}
	for _, label := range descriptionLabels {
		if strings.HasPrefix(s, label) {
			s = strings.TrimSpace(strings.TrimPrefix(s, label))
			break
		}
	}
	for {
		next := boilerplateSuffixRe.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func normalize(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(s), " "))
}
