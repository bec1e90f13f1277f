package dataflows

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestValidateSymbol(t *testing.T) {
	valid := []string{"AAPL", "^GSPC", "BRK.B", "msft", " TSLA "}
	for _, sym := range valid {
		if err := ValidateSymbol(sym); err != nil {
			t.Errorf("ValidateSymbol(%q) = %v, want nil", sym, err)
		}
	}

	invalid := []string{"", "TOOLONGSYMBOL", "BAD SYM", "A$PL"}
	for _, sym := range invalid {
		if err := ValidateSymbol(sym); err == nil {
			t.Errorf("ValidateSymbol(%q) = nil, want error", sym)
		}
	}
}

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol(" aapl "); got != "AAPL" {
		t.Errorf("NormalizeSymbol(\" aapl \") = %q, want AAPL", got)
	}
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, Delay: time.Millisecond, Backoff: 1.0}

	attempts := 0
	err := WithRetry(context.Background(), cfg, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithRetry: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 2, Delay: time.Millisecond, Backoff: 1.0}

	sentinel := errors.New("down")
	err := WithRetry(context.Background(), cfg, func() error { return sentinel })
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel error, got %v", err)
	}
}

func TestWithRetryStopsOnCanceledContext(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 5, Delay: time.Minute, Backoff: 1.0}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := WithRetry(ctx, cfg, func() error {
		attempts++
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected no retries after cancel, got %d attempts", attempts)
	}
}

func TestSaveAndLoadDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")

	type record struct {
		Symbol string  `json:"symbol"`
		Close  float64 `json:"close"`
	}
	in := []record{{"^GSPC", 5123.41}, {"^GSPC", 5118.02}}

	if err := SaveDataToFile(in, path); err != nil {
		t.Fatalf("SaveDataToFile: %v", err)
	}

	var out []record
	if err := LoadDataFromFile(path, &out); err != nil {
		t.Fatalf("LoadDataFromFile: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("roundtrip mismatch: %+v vs %+v", out, in)
	}
}

func TestCacheManagerRoundTrip(t *testing.T) {
	cache := NewCacheManager(t.TempDir(), time.Hour, true)

	key := map[string]interface{}{"symbol": "^GSPC", "start": "2024-03-01"}
	cache.Set("yahoo", "historical", key, []string{"a", "b"})

	var out []string
	if !cache.Get("yahoo", "historical", key, &out) {
		t.Fatal("expected cache hit")
	}
	if len(out) != 2 || out[0] != "a" {
		t.Fatalf("unexpected cached value: %v", out)
	}

	var miss []string
	if cache.Get("yahoo", "historical", map[string]interface{}{"symbol": "AAPL"}, &miss) {
		t.Fatal("expected cache miss for different key")
	}
}

func TestCacheManagerExpiry(t *testing.T) {
	cache := NewCacheManager(t.TempDir(), time.Nanosecond, true)

	cache.Set("yahoo", "historical", "key", "value")
	time.Sleep(10 * time.Millisecond)

	var out string
	if cache.Get("yahoo", "historical", "key", &out) {
		t.Fatal("expected expired entry to miss")
	}
}

func TestCacheManagerDisabled(t *testing.T) {
	cache := NewCacheManager(t.TempDir(), time.Hour, false)

	cache.Set("yahoo", "historical", "key", "value")
	var out string
	if cache.Get("yahoo", "historical", "key", &out) {
		t.Fatal("disabled cache should never hit")
	}
}
