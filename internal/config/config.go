// Package config loads pipeline configuration from defaults, an optional
// YAML file, and environment overrides.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Missing-file policies for yearly sales extracts.
const (
	PolicyWarn = "warn" // skip absent files, log a warning
	PolicyFail = "fail" // treat an absent file as an error
)

type Config struct {
	Root      string          `yaml:"root"`
	Dirs      DirConfig       `yaml:"dirs"`
	Bronze    BronzeConfig    `yaml:"bronze"`
	Transform TransformConfig `yaml:"transform"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

// DirConfig holds the per-layer directories. Empty entries are derived
// from Root in Load.
type DirConfig struct {
	Bronze         string `yaml:"bronze"`
	Silver         string `yaml:"silver"`
	Gold           string `yaml:"gold"`
	Visualizations string `yaml:"visualizations"`
}

type BronzeConfig struct {
	SalesYears         []int  `yaml:"sales_years"`
	SalesMissingPolicy string `yaml:"sales_missing_policy"` // "warn" | "fail"
}

type TransformConfig struct {
	// CostRatio is the assumed cost share of each sale. The original
	// business rule hardcodes 0.7 (a 30% margin); keep that default.
	CostRatio float64 `yaml:"cost_ratio"`
}

type StorageConfig struct {
	Backend     string `yaml:"backend"`      // "local" | "blob"
	BucketURL   string `yaml:"bucket_url"`   // file://, gs://, s3:// (blob backend)
	Compression string `yaml:"compression"`  // "snappy" | "zstd" | "none"
}

type LogConfig struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// Default returns the built-in configuration, rooted at the current
// directory with the original project's layer directory names.
func Default() Config {
	return Config{
		Root: ".",
		Bronze: BronzeConfig{
			SalesYears:         []int{2015, 2016, 2017},
			SalesMissingPolicy: PolicyWarn,
		},
		Transform: TransformConfig{
			CostRatio: 0.7,
		},
		Storage: StorageConfig{
			Backend:     "local",
			Compression: "snappy",
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (or
// $MEDALLION_CONFIG when path is empty), then environment overrides.
// A missing file is only an error when it was named explicitly.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("MEDALLION_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if explicit || !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	cfg.deriveDirs()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MustLoad is Load for main: it exits on error.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	return cfg
}

// deriveDirs fills unset layer directories from the project root using the
// original layout: Data/, silver/, gold/, visualizations/.
func (c *Config) deriveDirs() {
	if c.Dirs.Bronze == "" {
		c.Dirs.Bronze = filepath.Join(c.Root, "Data")
	}
	if c.Dirs.Silver == "" {
		c.Dirs.Silver = filepath.Join(c.Root, "silver")
	}
	if c.Dirs.Gold == "" {
		c.Dirs.Gold = filepath.Join(c.Root, "gold")
	}
	if c.Dirs.Visualizations == "" {
		c.Dirs.Visualizations = filepath.Join(c.Root, "visualizations")
	}
}

// Validate checks configuration invariants.
func (c Config) Validate() error {
	if c.Transform.CostRatio <= 0 || c.Transform.CostRatio > 1 {
		return fmt.Errorf("cost_ratio %v out of range (0, 1]", c.Transform.CostRatio)
	}
	if len(c.Bronze.SalesYears) == 0 {
		return fmt.Errorf("at least one sales year must be configured")
	}
	switch c.Bronze.SalesMissingPolicy {
	case PolicyWarn, PolicyFail:
	default:
		return fmt.Errorf("unknown sales_missing_policy %q", c.Bronze.SalesMissingPolicy)
	}
	switch c.Storage.Backend {
	case "local":
	case "blob":
		if c.Storage.BucketURL == "" {
			return fmt.Errorf("bucket_url required for blob backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Storage.Compression {
	case "snappy", "zstd", "none":
	default:
		return fmt.Errorf("unknown compression %q", c.Storage.Compression)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MEDALLION_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv("MEDALLION_BRONZE_DIR"); v != "" {
		cfg.Dirs.Bronze = v
	}
	if v := os.Getenv("MEDALLION_SILVER_DIR"); v != "" {
		cfg.Dirs.Silver = v
	}
	if v := os.Getenv("MEDALLION_GOLD_DIR"); v != "" {
		cfg.Dirs.Gold = v
	}
	if v := os.Getenv("MEDALLION_VIZ_DIR"); v != "" {
		cfg.Dirs.Visualizations = v
	}
	if v := os.Getenv("MEDALLION_SALES_YEARS"); v != "" {
		if years, err := parseYears(v); err == nil {
			cfg.Bronze.SalesYears = years
		}
	}
	if v := os.Getenv("MEDALLION_SALES_MISSING_POLICY"); v != "" {
		cfg.Bronze.SalesMissingPolicy = v
	}
	if v := os.Getenv("MEDALLION_COST_RATIO"); v != "" {
		if ratio, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Transform.CostRatio = ratio
		}
	}
	if v := os.Getenv("MEDALLION_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("MEDALLION_BUCKET_URL"); v != "" {
		cfg.Storage.BucketURL = v
	}
	if v := os.Getenv("MEDALLION_COMPRESSION"); v != "" {
		cfg.Storage.Compression = v
	}
	if v := os.Getenv("MEDALLION_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MEDALLION_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func parseYears(v string) ([]int, error) {
	parts := strings.Split(v, ",")
	years := make([]int, 0, len(parts))
	for _, p := range parts {
		y, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid year %q: %w", p, err)
		}
		years = append(years, y)
	}
	return years, nil
}
