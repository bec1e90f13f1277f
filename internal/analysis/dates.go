package analysis

import "time"

// AssignDates gives each classified name a synthetic appearance date. The
// dates form a contiguous ascending run of consecutive calendar days ending
// at endDate's day, assigned positionally: the i-th name gets the i-th day.
// The reference day is passed in rather than read from the clock so the
// assignment is deterministic.
func AssignDates(names []CatName, endDate time.Time) []NamedEvent {
	n := len(names)
	events := make([]NamedEvent, 0, n)

	last := truncateToDay(endDate)
	for i, name := range names {
		events = append(events, NamedEvent{
			CatName: name,
			Date:    last.AddDate(0, 0, i-(n-1)),
		})
	}
	return events
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
