package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var symbolPattern = regexp.MustCompile(`^[\^A-Z0-9.\-]+$`)

// ValidateSymbol checks that a ticker symbol has a plausible shape.
func ValidateSymbol(symbol string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 10 {
		return fmt.Errorf("symbol %q too long (max 10 characters)", symbol)
	}
	if !symbolPattern.MatchString(strings.ToUpper(symbol)) {
		return fmt.Errorf("symbol %q contains invalid characters", symbol)
	}
	return nil
}

// NormalizeSymbol uppercases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// FormatDateRange renders a date range for error messages and file names.
func FormatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// RetryConfig controls WithRetry behavior.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Backoff     float64
}

// DefaultRetryConfig returns the retry policy used for network fetches.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Delay:       500 * time.Millisecond,
		Backoff:     2.0,
	}
}

// WithRetry runs fn up to MaxAttempts times with exponential backoff,
// returning the last error if all attempts fail. Cancelling ctx aborts the
// backoff wait between attempts.
func WithRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	var lastErr error
	delay := cfg.Delay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt < cfg.MaxAttempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay = time.Duration(float64(delay) * cfg.Backoff)
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", cfg.MaxAttempts, lastErr)
}

// SaveDataToFile writes v as indented JSON, creating parent directories.
func SaveDataToFile(v interface{}, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data: %w", err)
	}
	return os.WriteFile(filePath, data, 0o644)
}

// LoadDataFromFile reads JSON written by SaveDataToFile into v.
func LoadDataFromFile(filePath string, v interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
