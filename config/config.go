package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ProjectDir   string `json:"project_dir"`
	ResultsDir   string `json:"results_dir"`
	DataDir      string `json:"data_dir"`
	DataCacheDir string `json:"data_cache_dir"`

	// Analysis inputs
	Symbol         string `json:"symbol"`
	DaysBack       int    `json:"days_back"`
	NameSampleSize int    `json:"name_sample_size"`

	// Cat name registry page; empty means use the built-in list.
	NamesURL string `json:"names_url"`

	OnlineTools  bool `json:"online_tools"`
	CacheEnabled bool `json:"cache_enabled"`
	Debug        bool `json:"debug"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()
	cfg := DefaultConfigWithRoot(currentDir)

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()
	return cfg
}

func DefaultConfigWithRoot(root string) *Config {
	return &Config{
		ProjectDir:   root,
		ResultsDir:   filepath.Join(root, "results"),
		DataDir:      filepath.Join(root, "data"),
		DataCacheDir: filepath.Join(root, "data", "cache"),

		Symbol:         "^GSPC",
		DaysBack:       30,
		NameSampleSize: 50,
		NamesURL:       "",

		OnlineTools:  true,
		CacheEnabled: true,
		Debug:        false,
	}
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}

	if val := os.Getenv("CATSTONKS_SYMBOL"); val != "" {
		c.Symbol = val
	}
	if val := os.Getenv("CATSTONKS_DAYS_BACK"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.DaysBack = v
		}
	}
	if val := os.Getenv("CATSTONKS_NAME_SAMPLE_SIZE"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.NameSampleSize = v
		}
	}
	if val := os.Getenv("CATSTONKS_NAMES_URL"); val != "" {
		c.NamesURL = val
	}

	if val := os.Getenv("ONLINE_TOOLS"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.OnlineTools = enabled
		}
	}
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = enabled
		}
	}
	if val := os.Getenv("CATSTONKS_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Symbol) == "" {
		return fmt.Errorf("symbol must not be empty")
	}
	if c.DaysBack < 2 {
		return fmt.Errorf("days back must be at least 2, got %d", c.DaysBack)
	}
	if c.NameSampleSize < 1 {
		return fmt.Errorf("name sample size must be at least 1, got %d", c.NameSampleSize)
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ProjectDir, c.ResultsDir, c.DataDir, c.DataCacheDir}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
