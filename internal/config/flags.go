package config

import "flag"

// Flags holds command-line overrides bound to a FlagSet.
type Flags struct {
	Config  *string
	Debug   *bool
	Output  *string
	LogFile *string
	Markers *string
	Strict  *bool
	Workers *int
}

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config:  fs.String("config", "", "Path to config file"),
		Debug:   fs.Bool("debug", false, "Enable debug logging"),
		Output:  fs.String("o", "", "Output file (default "+DefaultOutput+")"),
		LogFile: fs.String("log-file", "", "Also write logs to this file"),
		Markers: fs.String("markers", "", "Sub-object markers: both, object or group"),
		Strict:  fs.Bool("strict", false, "Reject indices beyond a source's tables"),
		Workers: fs.Int("workers", 0, "Parse up to N files concurrently"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil || f.Config == nil {
		return ""
	}
	return *f.Config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug != nil && *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Output != nil && *f.Output != "" {
		cfg.Merge.Output = *f.Output
	}
	if f.LogFile != nil && *f.LogFile != "" {
		cfg.Logging.LogFile = *f.LogFile
	}
	if f.Markers != nil && *f.Markers != "" {
		cfg.Merge.Markers = *f.Markers
	}
	if f.Strict != nil && *f.Strict {
		cfg.Merge.Strict = true
	}
	if f.Workers != nil && *f.Workers > 0 {
		cfg.Merge.Workers = *f.Workers
	}
}
