// Package config loads treeminer's run configuration from an optional YAML
// file, environment overrides, and defaults via viper.
package config

import (
	"errors"
	"log/slog"
)

// Config is the full set of knobs a mining run accepts beyond its two
// positional CLI arguments.
type Config struct {
	Checked      bool   `mapstructure:"checked"`
	DumpPatterns bool   `mapstructure:"dump_patterns"`
	JSONLogs     bool   `mapstructure:"json_logs"`
	LogLevel     string `mapstructure:"log_level"`
	MetricsAddr  string `mapstructure:"metrics_addr"`
	NoColor      bool   `mapstructure:"no_color"`
	ReportFile   string `mapstructure:"report_file"`
	ReportFormat string `mapstructure:"report_format"`
}

// ErrInvalidReportFormat is returned when ReportFormat is set to anything
// other than "json" or "yaml".
var ErrInvalidReportFormat = errors.New("config: report_format must be \"json\" or \"yaml\"")

// ErrReportFormatWithoutFile is returned when ReportFormat is set but
// ReportFile is empty, since there is nowhere to write the dump.
var ErrReportFormatWithoutFile = errors.New("config: report_format requires report_file")

// Validate checks Config invariants and returns the first violation found.
func (c *Config) Validate() error {
	if c.ReportFormat != "" && c.ReportFormat != "json" && c.ReportFormat != "yaml" {
		return ErrInvalidReportFormat
	}

	if c.ReportFormat != "" && c.ReportFile == "" {
		return ErrReportFormatWithoutFile
	}

	return nil
}

// SlogLevel parses LogLevel into an slog.Level, defaulting to Info for an
// empty or unrecognized value.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
