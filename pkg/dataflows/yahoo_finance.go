package dataflows

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// YahooFinanceClient handles Yahoo Finance data operations
type YahooFinanceClient struct {
	cache *CacheManager
}

// NewYahooFinanceClient creates a new Yahoo Finance client
func NewYahooFinanceClient(config *Config) *YahooFinanceClient {
	cacheDir := filepath.Join(config.DataCacheDir, "yahoo_finance")
	cache := NewCacheManager(cacheDir, 24*time.Hour, config.CacheEnabled) // 24 hour cache

	return &YahooFinanceClient{
		cache: cache,
	}
}

// GetHistoricalData gets daily closing price history for a symbol
func (yf *YahooFinanceClient) GetHistoricalData(ctx context.Context, symbol string, start, end time.Time) ([]*MarketData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	cacheKey := map[string]interface{}{
		"symbol": symbol,
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
	}

	// Check cache first
	var cached []*MarketData
	if yf.cache.Get("yahoo", "historical", cacheKey, &cached) {
		return cached, nil
	}

	// Fetch from Yahoo Finance
	var result []*MarketData
	err := WithRetry(ctx, DefaultRetryConfig(), func() error {
		params := &chart.Params{
			Params:   finance.Params{Context: &ctx},
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)

		result = make([]*MarketData, 0)
		for iter.Next() {
			bar := iter.Bar()

			marketData := &MarketData{
				Symbol:    symbol,
				Date:      time.Unix(int64(bar.Timestamp), 0),
				Open:      bar.Open,
				High:      bar.High,
				Low:       bar.Low,
				Close:     bar.Close,
				AdjClose:  bar.AdjClose,
				Volume:    int64(bar.Volume),
				Timestamp: time.Now(),
			}

			result = append(result, marketData)
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get historical data for %s: %w", symbol, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no price data returned for %s (%s)", symbol, FormatDateRange(start, end))
	}

	// Cache the result
	yf.cache.Set("yahoo", "historical", cacheKey, result)

	return result, nil
}

// GetHistoricalDataWindow gets historical data for a rolling window ending now
func (yf *YahooFinanceClient) GetHistoricalDataWindow(ctx context.Context, symbol string, days int) ([]*MarketData, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	return yf.GetHistoricalData(ctx, symbol, start, end)
}

// GetOfflineData loads historical data from a previously saved file
func (yf *YahooFinanceClient) GetOfflineData(symbol string, start, end time.Time, config *Config) ([]*MarketData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	filePath := filepath.Join(config.DataDir, "market_data", "price_data",
		fmt.Sprintf("%s_%s_%s.json", symbol,
			start.Format("2006-01-02"), end.Format("2006-01-02")))

	var result []*MarketData
	if err := LoadDataFromFile(filePath, &result); err != nil {
		return nil, fmt.Errorf("offline data not available for %s (%s): %w",
			symbol, FormatDateRange(start, end), err)
	}

	return result, nil
}
