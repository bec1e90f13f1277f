package analysis

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}

func TestCountFinanceNamesByDay(t *testing.T) {
	d1, d2, d3 := day(2024, 3, 11), day(2024, 3, 12), day(2024, 3, 13)
	events := []NamedEvent{
		{CatName{"Stonks", true}, d3},
		{CatName{"Musk", true}, d2},
		{CatName{"Whiskers", false}, d1},
		{CatName{"Bitcoin", true}, d2},
	}

	counts := CountFinanceNamesByDay(events)

	want := []DailyCount{
		{Date: d2, Count: 2},
		{Date: d3, Count: 1},
	}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
}

func TestAlignSeriesScenario(t *testing.T) {
	d1, d2, d3 := day(2024, 3, 11), day(2024, 3, 12), day(2024, 3, 13)
	prices := []PricePoint{{d1, 100}, {d2, 102}, {d3, 101}}
	events := []NamedEvent{
		{CatName{"Musk", true}, d2},
		{CatName{"Bitcoin", true}, d2},
		{CatName{"Whiskers", false}, d2},
		{CatName{"Luna", false}, d1},
	}

	merged, err := AlignSeries(prices, events)
	if err != nil {
		t.Fatalf("AlignSeries: %v", err)
	}

	want := []MergedRow{
		{d1, 100, 0},
		{d2, 102, 2},
		{d3, 101, 0},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged = %+v, want %+v", merged, want)
	}
}

func TestAlignSeriesLengthAndOrder(t *testing.T) {
	var prices []PricePoint
	base := day(2024, 1, 2)
	for i := 0; i < 10; i++ {
		prices = append(prices, PricePoint{base.AddDate(0, 0, i), 100 + float64(i)})
	}

	merged, err := AlignSeries(prices, nil)
	if err != nil {
		t.Fatalf("AlignSeries: %v", err)
	}
	if len(merged) != len(prices) {
		t.Fatalf("expected %d rows, got %d", len(prices), len(merged))
	}
	for i, row := range merged {
		if !row.Date.Equal(prices[i].Date) {
			t.Errorf("row %d has date %s, want %s", i, row.Date, prices[i].Date)
		}
		if row.FinanceCatCount != 0 {
			t.Errorf("row %d has count %d, want 0 for empty event set", i, row.FinanceCatCount)
		}
	}
}

func TestAlignSeriesDropsNonTradingDayEvents(t *testing.T) {
	// A finance name on a day with no price quote vanishes from the join.
	prices := []PricePoint{{day(2024, 3, 11), 100}, {day(2024, 3, 12), 102}}
	events := []NamedEvent{{CatName{"Stonks", true}, day(2024, 3, 10)}}

	merged, err := AlignSeries(prices, events)
	if err != nil {
		t.Fatalf("AlignSeries: %v", err)
	}
	total := 0
	for _, row := range merged {
		total += row.FinanceCatCount
	}
	if total != 0 {
		t.Fatalf("expected weekend event to be dropped, total count = %d", total)
	}
}

func TestAlignSeriesRejectsDuplicateDates(t *testing.T) {
	d := day(2024, 3, 11)
	prices := []PricePoint{{d, 100}, {d, 101}}

	_, err := AlignSeries(prices, nil)
	if err == nil {
		t.Fatal("expected validation error for duplicate price dates")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
}

func TestAlignSeriesIdempotent(t *testing.T) {
	d1, d2 := day(2024, 3, 11), day(2024, 3, 12)
	prices := []PricePoint{{d1, 100}, {d2, 102}}
	events := []NamedEvent{{CatName{"Coin", true}, d1}}

	first, err := AlignSeries(prices, events)
	if err != nil {
		t.Fatalf("first AlignSeries: %v", err)
	}
	second, err := AlignSeries(prices, events)
	if err != nil {
		t.Fatalf("second AlignSeries: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("AlignSeries is not idempotent: %+v vs %+v", first, second)
	}
}
