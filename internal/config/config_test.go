package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test merge defaults
	if cfg.Merge.Output != "merged_output.obj" {
		t.Errorf("expected output merged_output.obj, got %s", cfg.Merge.Output)
	}
	if cfg.Merge.Markers != "both" {
		t.Errorf("expected markers 'both', got %s", cfg.Merge.Markers)
	}
	if cfg.Merge.Strict {
		t.Error("expected strict to be false by default")
	}
	if cfg.Merge.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Merge.Workers)
	}
	if cfg.Merge.MaxSuffix != 9999 {
		t.Errorf("expected max suffix 9999, got %d", cfg.Merge.MaxSuffix)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "objmerge.yaml")

	yamlContent := `
merge:
  output: "scene.obj"
  markers: "group"
  strict: true
  workers: 8
  max_suffix: 50

logging:
  level: "debug"
  log_file: "objmerge.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Merge.Output != "scene.obj" {
		t.Errorf("expected output scene.obj, got %s", cfg.Merge.Output)
	}
	if cfg.Merge.Markers != "group" {
		t.Errorf("expected markers 'group', got %s", cfg.Merge.Markers)
	}
	if !cfg.Merge.Strict {
		t.Error("expected strict to be true")
	}
	if cfg.Merge.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Merge.Workers)
	}
	if cfg.Merge.MaxSuffix != 50 {
		t.Errorf("expected max suffix 50, got %d", cfg.Merge.MaxSuffix)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "objmerge.log" {
		t.Errorf("expected log file 'objmerge.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "objmerge.yaml")
	if err := os.WriteFile(configPath, []byte("merge:\n  workers: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Merge.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Merge.Workers)
	}
	// Unset keys keep their defaults
	if cfg.Merge.Output != DefaultOutput {
		t.Errorf("expected default output, got %s", cfg.Merge.Output)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
merge:
  workers: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/objmerge.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	}

	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("merge:\n  workers: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "output flag",
			args: []string{"-o", "out/scene.obj"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Merge.Output != "out/scene.obj" {
					t.Errorf("expected output out/scene.obj, got %s", cfg.Merge.Output)
				}
			},
		},
		{
			name: "markers and strict flags",
			args: []string{"-markers", "object", "-strict"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Merge.Markers != "object" {
					t.Errorf("expected markers 'object', got %s", cfg.Merge.Markers)
				}
				if !cfg.Merge.Strict {
					t.Error("expected strict to be true with strict flag")
				}
			},
		},
		{
			name: "workers and log file flags",
			args: []string{"-workers", "6", "-log-file", "run.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Merge.Workers != 6 {
					t.Errorf("expected 6 workers, got %d", cfg.Merge.Workers)
				}
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			flags := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("failed to parse flags: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "objmerge.yaml")

	yamlContent := `
merge:
  output: "from-file.obj"
  workers: 2
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-o", "from-flag.obj"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Output should be from flag, not file
	if cfg.Merge.Output != "from-flag.obj" {
		t.Errorf("expected output from flag, got %s", cfg.Merge.Output)
	}

	// Workers should be from file since no flag override
	if cfg.Merge.Workers != 2 {
		t.Errorf("expected 2 workers from file, got %d", cfg.Merge.Workers)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", "/nonexistent/objmerge.yaml"}); err != nil {
		t.Fatalf("failed to parse flags: %v", err)
	}

	if _, err := Load(flags); err == nil {
		t.Error("expected error for missing explicit config, got nil")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "objmerge.yaml")

	cfg := Default()
	cfg.Merge.Workers = 4
	cfg.Merge.Markers = "group"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config %+v differs from saved %+v", loaded, cfg)
	}
}
