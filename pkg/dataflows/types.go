package dataflows

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/whiskerlabs/catstonks/config"
)

// Config is an alias for the main application config
type Config = config.Config

// MarketData represents one trading day of stock price data
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}
