package news

import (
	"sort"
	"strings"
)

// Importance ranks how relevant a news item is to the exchange-rate
// commentary. High items are fed to the prompt first.
type Importance int

const (
	ImportanceHigh Importance = iota
	ImportanceMedium
	ImportanceLow
)

func (i Importance) String() string {
	switch i {
	case ImportanceHigh:
		return "high"
	case ImportanceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Item is a single collected news entry. Content and Link are optional.
type Item struct {
	Title      string
	Content    string
	Link       string
	Source     string
	Importance Importance
}

// Headline keywords that decide importance. Macro and trade-policy news
// moves the won far more than single-company news.
var (
	highKeywords = []string{
		"tariff", "trade", "fed", "interest rate", "inflation",
		"economy", "market", "exchange rate", "usd/krw",
	}
	mediumKeywords = []string{
		"earnings", "stock", "company", "industry", "export", "import",
	}
)

// Classify assigns an importance level based on headline keywords
func Classify(title string) Importance {
	lower := strings.ToLower(title)
	for _, kw := range highKeywords {
		if strings.Contains(lower, kw) {
			return ImportanceHigh
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(lower, kw) {
			return ImportanceMedium
		}
	}
	return ImportanceLow
}

// SortByImportance orders items high-first, preserving the collected
// order within each level.
func SortByImportance(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Importance < items[j].Importance
	})
}

// TopN returns the first n items, or all of them when fewer exist
func TopN(items []Item, n int) []Item {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
