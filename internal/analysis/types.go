// Package analysis implements the cat-name vs stock-price correlation
// pipeline: classification, date assignment, series alignment and the
// Pearson correlation test.
package analysis

import "time"

// DateKey is the format used to compare calendar days.
const DateKey = "2006-01-02"

// CatName is a single cat name with its derived finance classification.
type CatName struct {
	Name              string `json:"name"`
	IsFinanceInspired bool   `json:"is_finance_inspired"`
}

// NamedEvent binds a classified cat name to its synthetic appearance date.
type NamedEvent struct {
	CatName
	Date time.Time `json:"date"`
}

// PricePoint is one trading day's closing price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// DailyCount is the number of finance-inspired names assigned to one day.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// MergedRow is one trading day joined with its finance-name count.
// Count is zero when no finance-inspired name landed on that day.
type MergedRow struct {
	Date            time.Time `json:"date"`
	Close           float64   `json:"close"`
	FinanceCatCount int       `json:"finance_cat_count"`
}
