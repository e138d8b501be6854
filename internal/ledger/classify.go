package ledger

import "strings"

// ClassifyInvestmentType derives a coarse transaction type from a free-text
// statement description. First matching rule wins.
func ClassifyInvestmentType(description string) string {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "interest") && !strings.Contains(desc, "sale"):
		return "Dividend Reinvestment"
	case strings.Contains(desc, "dividend") && strings.Contains(desc, "reinvest"):
		return "Dividend Reinvestment"
	case strings.Contains(desc, "dividend"):
		return "Dividend Payment"
	case strings.Contains(desc, "buy"), strings.Contains(desc, "purchase"):
		return "Buy"
	case strings.Contains(desc, "sell"), strings.Contains(desc, "sale"):
		return "Sell"
	case strings.Contains(desc, "transfer-in"):
		return "Transfer In"
	case strings.Contains(desc, "transfer-out"):
		return "Transfer Out"
	default:
		return "Other"
	}
}
