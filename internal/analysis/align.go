package analysis

import (
	"fmt"
	"sort"
)

// CountFinanceNamesByDay reduces events to per-day counts of finance-
// inspired names, in chronological order. Non-finance names contribute
// nothing; days without any finance name are absent until AlignSeries
// zero-fills them.
func CountFinanceNamesByDay(events []NamedEvent) []DailyCount {
	totals := make(map[string]int)
	days := make(map[string]NamedEvent)
	for _, evt := range events {
		if !evt.IsFinanceInspired {
			continue
		}
		key := evt.Date.Format(DateKey)
		if _, seen := totals[key]; !seen {
			days[key] = evt
		}
		totals[key]++
	}

	counts := make([]DailyCount, 0, len(totals))
	for key, total := range totals {
		counts = append(counts, DailyCount{Date: days[key].Date, Count: total})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Date.Before(counts[j].Date) })
	return counts
}

// AlignSeries left-joins per-day finance-name counts onto the price series,
// anchored on the price dates: one output row per price point, in input
// order, with count 0 where no finance name landed on that trading day.
// Names falling on non-trading days (weekends, holidays) are dropped, which
// matches the join the tool has always done.
//
// Duplicate dates in the price sequence violate the one-point-per-trading-
// day precondition and are rejected.
func AlignSeries(prices []PricePoint, events []NamedEvent) ([]MergedRow, error) {
	seen := make(map[string]bool, len(prices))
	for _, p := range prices {
		key := p.Date.Format(DateKey)
		if seen[key] {
			return nil, &ValidationError{Reason: fmt.Sprintf("duplicate price date %s", key)}
		}
		seen[key] = true
	}

	byDay := make(map[string]int)
	for _, dc := range CountFinanceNamesByDay(events) {
		byDay[dc.Date.Format(DateKey)] = dc.Count
	}

	merged := make([]MergedRow, 0, len(prices))
	for _, p := range prices {
		merged = append(merged, MergedRow{
			Date:            p.Date,
			Close:           p.Close,
			FinanceCatCount: byDay[p.Date.Format(DateKey)],
		})
	}
	return merged, nil
}
