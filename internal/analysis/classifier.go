package analysis

import "strings"

// financeKeywords is the closed keyword set a name must contain (case
// insensitive) to count as finance-inspired.
var financeKeywords = []string{
	"musk", "stonks", "buffet", "tesla", "coin", "cash", "bitcoin",
}

// IsFinanceInspired reports whether a cat name is finance-themed via
// case-insensitive substring match against the fixed keyword set.
func IsFinanceInspired(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range financeKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ClassifyNames tags each name in order, preserving input order.
func ClassifyNames(names []string) []CatName {
	result := make([]CatName, 0, len(names))
	for _, name := range names {
		result = append(result, CatName{
			Name:              name,
			IsFinanceInspired: IsFinanceInspired(name),
		})
	}
	return result
}
