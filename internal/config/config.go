// Package config handles objmerge configuration loading and management.
package config

// DefaultOutput is the output file used when none is given.
const DefaultOutput = "merged_output.obj"

// Config holds all objmerge settings.
type Config struct {
	Merge   MergeConfig   `yaml:"merge"`
	Logging LoggingConfig `yaml:"logging"`
}

// MergeConfig holds merge settings.
type MergeConfig struct {
	Output    string `yaml:"output"`     // Output file path
	Markers   string `yaml:"markers"`    // both, object or group
	Strict    bool   `yaml:"strict"`     // Reject out-of-range indices
	Workers   int    `yaml:"workers"`    // Concurrent parsers
	MaxSuffix int    `yaml:"max_suffix"` // Highest name collision suffix
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Merge: MergeConfig{
			Output:    DefaultOutput,
			Markers:   "both",
			Strict:    false,
			Workers:   1,
			MaxSuffix: 9999,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
