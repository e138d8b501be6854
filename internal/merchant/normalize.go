// Package merchant converts noisy raw payment-description strings into
// canonical merchant identities.
package merchant

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// storeNumberRe matches trailing store codes like "#010" or "W526".
	storeNumberRe = regexp.MustCompile(`\s*[#A-Za-z][0-9]+$`)
	// trailingNumberRe matches a trailing bare numeric token like " 580".
	trailingNumberRe = regexp.MustCompile(`\s+[0-9]+$`)
	multiSpaceRe     = regexp.MustCompile(`\s+`)
)

// Normalize cleans a raw merchant string into its canonical display form:
// asterisks become spaces, whitespace is collapsed, trailing store codes and
// bare numbers are stripped, and each word is title-cased. Pure and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "*", " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	// Strip trailing store codes until stable; one strip can expose another
	// ("SHOP A12 34").
	for {
		next := storeNumberRe.ReplaceAllString(s, "")
		next = trailingNumberRe.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == s {
			break
		}
		s = next
	}

	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
