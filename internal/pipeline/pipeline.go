// Package pipeline wires the data sources to the analysis core and runs a
// single end-to-end correlation pass.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/whiskerlabs/catstonks/config"
	"github.com/whiskerlabs/catstonks/internal/analysis"
	"github.com/whiskerlabs/catstonks/pkg/dataflows"
)

// PriceSource provides daily closing price history.
type PriceSource interface {
	GetHistoricalData(ctx context.Context, symbol string, start, end time.Time) ([]*dataflows.MarketData, error)
}

// NameSource provides an ordered list of cat names.
type NameSource interface {
	FetchNames(ctx context.Context, count int) ([]string, error)
}

// Pipeline runs names -> classification -> date assignment -> price fetch ->
// alignment -> correlation -> report. Each stage consumes immutable inputs;
// any failure aborts the run and is surfaced, never degraded to a partial
// result.
type Pipeline struct {
	config *config.Config
	prices PriceSource
	names  NameSource
}

// New creates a pipeline wired to the real Yahoo Finance and cat name
// clients.
func New(cfg *config.Config) *Pipeline {
	return &Pipeline{
		config: cfg,
		prices: &yahooSource{
			client: dataflows.NewYahooFinanceClient(cfg),
			config: cfg,
		},
		names: dataflows.NewCatNameClient(cfg),
	}
}

// NewWithSources creates a pipeline with injected sources, used by tests.
func NewWithSources(cfg *config.Config, prices PriceSource, names NameSource) *Pipeline {
	return &Pipeline{
		config: cfg,
		prices: prices,
		names:  names,
	}
}

// Run executes one full analysis anchored at refDate. The reference date is
// explicit so the synthetic name dates are reproducible. ctx bounds both
// source fetches.
func (p *Pipeline) Run(ctx context.Context, refDate time.Time) (*analysis.Report, error) {
	refDate = refDate.UTC()

	rawNames, err := p.names.FetchNames(ctx, p.config.NameSampleSize)
	if err != nil {
		return nil, &analysis.UpstreamError{Source: "cat name", Err: err}
	}
	if p.config.Debug {
		log.Printf("fetched %d cat names", len(rawNames))
	}

	classified := analysis.ClassifyNames(rawNames)
	events := analysis.AssignDates(classified, refDate)

	start := refDate.AddDate(0, 0, -p.config.DaysBack)
	marketData, err := p.prices.GetHistoricalData(ctx, p.config.Symbol, start, refDate)
	if err != nil {
		return nil, &analysis.UpstreamError{Source: "price", Err: err}
	}
	if p.config.Debug {
		log.Printf("fetched %d price points for %s", len(marketData), p.config.Symbol)
	}

	prices := toPricePoints(marketData)

	merged, err := analysis.AlignSeries(prices, events)
	if err != nil {
		return nil, err
	}

	correlation, pValue, err := analysis.CorrelateMerged(merged)
	if err != nil {
		return nil, err
	}

	return analysis.BuildReport(p.config.Symbol, merged, correlation, pValue), nil
}

// toPricePoints converts market data to the core's price representation,
// collapsing bar timestamps to UTC calendar days.
func toPricePoints(data []*dataflows.MarketData) []analysis.PricePoint {
	points := make([]analysis.PricePoint, 0, len(data))
	for _, md := range data {
		day := md.Date.UTC()
		points = append(points, analysis.PricePoint{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Close: md.Close.InexactFloat64(),
		})
	}
	return points
}

// yahooSource serves price history offline-first: saved data when present,
// live fetch when online tools are enabled.
type yahooSource struct {
	client *dataflows.YahooFinanceClient
	config *config.Config
}

func (s *yahooSource) GetHistoricalData(ctx context.Context, symbol string, start, end time.Time) ([]*dataflows.MarketData, error) {
	if data, err := s.client.GetOfflineData(symbol, start, end, s.config); err == nil {
		return data, nil
	}

	if s.config.OnlineTools {
		return s.client.GetHistoricalData(ctx, symbol, start, end)
	}

	return nil, fmt.Errorf("offline data not available for %s and online tools disabled", symbol)
}
