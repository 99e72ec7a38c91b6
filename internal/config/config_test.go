package config

import (
	"errors"
	"io"
	"testing"
)

func TestParseValidate_Defaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFormat, "")
	t.Setenv(EnvMetricsTextfile, "")

	cfg, err := ParseValidate([]string{"-schema", "s.yaml", "-data", "d.csv"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseValidate: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.LogLevel)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("expected default log format 'console', got %s", cfg.LogFormat)
	}
	if cfg.MetricsTextfile != "" {
		t.Errorf("expected no metrics textfile, got %s", cfg.MetricsTextfile)
	}
	if cfg.Output != "text" {
		t.Errorf("expected default output 'text', got %s", cfg.Output)
	}
}

func TestParseValidate_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvMetricsTextfile, "/tmp/dj.prom")

	cfg, err := ParseValidate([]string{"-schema", "s.yaml", "-data", "d.csv"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseValidate: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.MetricsTextfile != "/tmp/dj.prom" {
		t.Errorf("env not applied: %+v", cfg.Common)
	}

	// flags win over the environment
	cfg, err = ParseValidate([]string{"-log-level", "warn", "-schema", "s.yaml", "-data", "d.csv"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseValidate: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected flag log level 'warn', got %s", cfg.LogLevel)
	}
}

func TestParse_UsageErrors(t *testing.T) {
	t.Setenv(EnvLogFormat, "")
	cases := []struct {
		name string
		run  func() error
	}{
		{"validate without data", func() error { _, err := ParseValidate([]string{"-schema", "s.yaml"}, io.Discard); return err }},
		{"validate bad format", func() error {
			_, err := ParseValidate([]string{"-schema", "s", "-data", "d", "-format", "xml"}, io.Discard)
			return err
		}},
		{"bad log format", func() error {
			_, err := ParseJSONSchema([]string{"-schema", "s", "-log-format", "xml"}, io.Discard)
			return err
		}},
		{"clean without out", func() error { _, err := ParseClean([]string{"-data", "d.csv"}, io.Discard); return err }},
		{"jsonschema without schema", func() error { _, err := ParseJSONSchema(nil, io.Discard); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrUsage) {
				t.Fatalf("err = %v; want ErrUsage", err)
			}
		})
	}
}

func TestParseClean(t *testing.T) {
	t.Setenv(EnvLogFormat, "")
	cfg, err := ParseClean([]string{
		"-data", "in.csv", "-out", "out.parquet",
		"-standardize-columns", "-missing", "median",
		"-outliers", "zscore", "-multiplier", "3",
		"-outlier-columns", "age, salary,", "-scale", "score",
	}, io.Discard)
	if err != nil {
		t.Fatalf("ParseClean: %v", err)
	}
	if !cfg.Standardize || cfg.Missing != "median" || cfg.Outliers != "zscore" || cfg.Multiplier != 3 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.OutlierColumns) != 2 || cfg.OutlierColumns[0] != "age" || cfg.OutlierColumns[1] != "salary" {
		t.Errorf("outlier columns = %v", cfg.OutlierColumns)
	}
	if len(cfg.ScaleColumns) != 1 || cfg.ScaleColumns[0] != "score" {
		t.Errorf("scale columns = %v", cfg.ScaleColumns)
	}

	cfg, err = ParseClean([]string{"-data", "in.csv", "-out", "out.csv"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseClean: %v", err)
	}
	if cfg.OutlierColumns != nil || cfg.ScaleColumns != nil || cfg.Multiplier != 1.5 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
