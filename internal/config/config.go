// Package config parses datajanitor subcommand flags. Common flags take
// their defaults from the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// Environment variables consulted for flag defaults.
const (
	EnvLogLevel        = "DATAJANITOR_LOG_LEVEL"
	EnvLogFormat       = "DATAJANITOR_LOG_FORMAT"
	EnvMetricsTextfile = "DATAJANITOR_METRICS_TEXTFILE"
)

// ErrUsage reports a missing or malformed flag.
var ErrUsage = errors.New("usage error")

// Common holds flags shared by every subcommand.
type Common struct {
	LogLevel        string
	LogFormat       string
	MetricsTextfile string
}

// Validate configures `datajanitor validate`.
type Validate struct {
	Common
	SchemaPath string
	DataPath   string
	Output     string // text, json
}

// Clean configures `datajanitor clean`.
type Clean struct {
	Common
	DataPath       string
	OutPath        string
	Standardize    bool
	Missing        string
	Outliers       string
	Multiplier     float64
	OutlierColumns []string
	ScaleColumns   []string
}

// JSONSchema configures `datajanitor jsonschema`.
type JSONSchema struct {
	Common
	SchemaPath string
}

func newFlagSet(name string, c *Common, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&c.LogLevel, "log-level", envOrDefault(EnvLogLevel, "info"), "log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", envOrDefault(EnvLogFormat, "console"), "log format: console, json")
	fs.StringVar(&c.MetricsTextfile, "metrics-textfile", envOrDefault(EnvMetricsTextfile, ""), "write Prometheus metrics to this file")
	return fs
}

func (c Common) check() error {
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: -log-format must be console or json, got %q", ErrUsage, c.LogFormat)
	}
	return nil
}

// ParseValidate parses the flags of the validate subcommand.
func ParseValidate(args []string, out io.Writer) (*Validate, error) {
	cfg := &Validate{}
	fs := newFlagSet("validate", &cfg.Common, out)
	fs.StringVar(&cfg.SchemaPath, "schema", "", "schema file (.yaml, .yml, .json)")
	fs.StringVar(&cfg.DataPath, "data", "", "data file (.csv, .parquet)")
	fs.StringVar(&cfg.Output, "format", "text", "report format: text, json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.SchemaPath == "" || cfg.DataPath == "" {
		return nil, fmt.Errorf("%w: validate requires -schema and -data", ErrUsage)
	}
	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("%w: -format must be text or json, got %q", ErrUsage, cfg.Output)
	}
	return cfg, cfg.check()
}

// ParseClean parses the flags of the clean subcommand.
func ParseClean(args []string, out io.Writer) (*Clean, error) {
	cfg := &Clean{}
	var outlierCols, scaleCols string
	fs := newFlagSet("clean", &cfg.Common, out)
	fs.StringVar(&cfg.DataPath, "data", "", "input data file (.csv, .parquet)")
	fs.StringVar(&cfg.OutPath, "out", "", "output data file (.csv, .parquet)")
	fs.BoolVar(&cfg.Standardize, "standardize-columns", false, "normalize column names")
	fs.StringVar(&cfg.Missing, "missing", "", "missing value handling: drop, mean, median, mode")
	fs.StringVar(&cfg.Outliers, "outliers", "", "outlier filter: iqr, zscore")
	fs.Float64Var(&cfg.Multiplier, "multiplier", 1.5, "outlier multiplier")
	fs.StringVar(&outlierCols, "outlier-columns", "", "comma-separated columns checked for outliers (default: all numeric)")
	fs.StringVar(&scaleCols, "scale", "", "comma-separated columns to standard-scale")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.DataPath == "" || cfg.OutPath == "" {
		return nil, fmt.Errorf("%w: clean requires -data and -out", ErrUsage)
	}
	cfg.OutlierColumns = splitCSV(outlierCols)
	cfg.ScaleColumns = splitCSV(scaleCols)
	return cfg, cfg.check()
}

// ParseJSONSchema parses the flags of the jsonschema subcommand.
func ParseJSONSchema(args []string, out io.Writer) (*JSONSchema, error) {
	cfg := &JSONSchema{}
	fs := newFlagSet("jsonschema", &cfg.Common, out)
	fs.StringVar(&cfg.SchemaPath, "schema", "", "schema file (.yaml, .yml, .json)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.SchemaPath == "" {
		return nil, fmt.Errorf("%w: jsonschema requires -schema", ErrUsage)
	}
	return cfg, cfg.check()
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
