package dataflows

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CacheManager is a JSON file cache with TTL expiry, keyed by
// provider/category plus an arbitrary JSON-encodable key.
type CacheManager struct {
	baseDir string
	ttl     time.Duration
	enabled bool
}

type cacheEnvelope struct {
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

func NewCacheManager(baseDir string, ttl time.Duration, enabled bool) *CacheManager {
	return &CacheManager{
		baseDir: baseDir,
		ttl:     ttl,
		enabled: enabled,
	}
}

// Get loads a cached value into out, reporting whether a fresh entry existed.
func (c *CacheManager) Get(provider, category string, key interface{}, out interface{}) bool {
	if !c.enabled {
		return false
	}

	path, err := c.entryPath(provider, category, key)
	if err != nil {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	var envelope cacheEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return false
	}
	if time.Since(envelope.StoredAt) > c.ttl {
		_ = os.Remove(path)
		return false
	}

	return json.Unmarshal(envelope.Payload, out) == nil
}

// Set stores a value; cache write failures are silently ignored so a broken
// cache never fails a fetch.
func (c *CacheManager) Set(provider, category string, key interface{}, value interface{}) {
	if !c.enabled {
		return
	}

	path, err := c.entryPath(provider, category, key)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	data, err := json.Marshal(cacheEnvelope{
		StoredAt: time.Now(),
		Payload:  payload,
	})
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

func (c *CacheManager) entryPath(provider, category string, key interface{}) (string, error) {
	raw, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(raw)
	name := fmt.Sprintf("%s_%s.json", category, hex.EncodeToString(sum[:8]))
	return filepath.Join(c.baseDir, provider, name), nil
}
