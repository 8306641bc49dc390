package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Transform.CostRatio != 0.7 {
		t.Errorf("expected default cost ratio 0.7, got %v", cfg.Transform.CostRatio)
	}
	if len(cfg.Bronze.SalesYears) != 3 || cfg.Bronze.SalesYears[0] != 2015 {
		t.Errorf("unexpected default sales years: %v", cfg.Bronze.SalesYears)
	}
	if cfg.Bronze.SalesMissingPolicy != PolicyWarn {
		t.Errorf("expected default policy %q, got %q", PolicyWarn, cfg.Bronze.SalesMissingPolicy)
	}
	if cfg.Storage.Backend != "local" || cfg.Storage.Compression != "snappy" {
		t.Errorf("unexpected default storage config: %+v", cfg.Storage)
	}
}

func TestLoadDerivesDirsFromRoot(t *testing.T) {
	t.Setenv("MEDALLION_ROOT", "/data/project")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := DirConfig{
		Bronze:         filepath.Join("/data/project", "Data"),
		Silver:         filepath.Join("/data/project", "silver"),
		Gold:           filepath.Join("/data/project", "gold"),
		Visualizations: filepath.Join("/data/project", "visualizations"),
	}
	if cfg.Dirs != want {
		t.Errorf("derived dirs mismatch: got %+v, want %+v", cfg.Dirs, want)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
root: /tmp/pipeline
bronze:
  sales_years: [2016, 2017]
  sales_missing_policy: fail
transform:
  cost_ratio: 0.6
storage:
  compression: zstd
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Root != "/tmp/pipeline" {
		t.Errorf("expected root /tmp/pipeline, got %q", cfg.Root)
	}
	if len(cfg.Bronze.SalesYears) != 2 || cfg.Bronze.SalesYears[1] != 2017 {
		t.Errorf("unexpected sales years: %v", cfg.Bronze.SalesYears)
	}
	if cfg.Bronze.SalesMissingPolicy != PolicyFail {
		t.Errorf("expected fail policy, got %q", cfg.Bronze.SalesMissingPolicy)
	}
	if cfg.Transform.CostRatio != 0.6 {
		t.Errorf("expected cost ratio 0.6, got %v", cfg.Transform.CostRatio)
	}
	if cfg.Storage.Compression != "zstd" {
		t.Errorf("expected zstd compression, got %q", cfg.Storage.Compression)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("transform:\n  cost_ratio: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEDALLION_COST_RATIO", "0.8")
	t.Setenv("MEDALLION_SALES_YEARS", "2017")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Transform.CostRatio != 0.8 {
		t.Errorf("env should beat yaml: got cost ratio %v", cfg.Transform.CostRatio)
	}
	if len(cfg.Bronze.SalesYears) != 1 || cfg.Bronze.SalesYears[0] != 2017 {
		t.Errorf("unexpected sales years: %v", cfg.Bronze.SalesYears)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for explicitly named missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero cost ratio", func(c *Config) { c.Transform.CostRatio = 0 }, true},
		{"cost ratio above one", func(c *Config) { c.Transform.CostRatio = 1.5 }, true},
		{"no sales years", func(c *Config) { c.Bronze.SalesYears = nil }, true},
		{"bad policy", func(c *Config) { c.Bronze.SalesMissingPolicy = "ignore" }, true},
		{"bad backend", func(c *Config) { c.Storage.Backend = "ftp" }, true},
		{"blob without bucket", func(c *Config) { c.Storage.Backend = "blob" }, true},
		{"blob with bucket", func(c *Config) {
			c.Storage.Backend = "blob"
			c.Storage.BucketURL = "s3://bucket"
		}, false},
		{"bad compression", func(c *Config) { c.Storage.Compression = "lz4" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
