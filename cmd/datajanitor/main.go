package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	dj "github.com/reoring/datajanitor"
	"github.com/reoring/datajanitor/dataio"
	"github.com/reoring/datajanitor/internal/config"
	"github.com/reoring/datajanitor/internal/logging"
	"github.com/reoring/datajanitor/internal/metrics"
	"github.com/reoring/datajanitor/schemafile"
)

// Exit codes.
const (
	exitOK         = 0
	exitViolations = 1
	exitUsage      = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "validate":
		return validateCmd(args[1:], stdout, stderr)
	case "clean":
		return cleanCmd(args[1:], stderr)
	case "jsonschema":
		return jsonSchemaCmd(args[1:], stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "datajanitor CLI\n\nUsage:\n  datajanitor validate -schema s.yaml -data d.csv [-format text|json]\n  datajanitor clean -data in.csv -out out.parquet [-standardize-columns] [-missing mean] [-outliers iqr -multiplier 1.5 -outlier-columns a,b] [-scale a,b]\n  datajanitor jsonschema -schema s.yaml\n\nCommon flags: -log-level, -log-format, -metrics-textfile")
}

// parseFailed maps a flag parsing error to an exit code.
func parseFailed(err error, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	fmt.Fprintln(stderr, err)
	return exitUsage
}

func setup(c config.Common, stderr io.Writer, component string) (zerolog.Logger, *metrics.Metrics) {
	lc := logging.DefaultConfig()
	if c.LogLevel != "" {
		lc.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		lc.Format = c.LogFormat
	}
	lc.Out = stderr
	logging.Init(lc)
	return logging.WithComponent(component), metrics.New()
}

func flushMetrics(log zerolog.Logger, m *metrics.Metrics, path string) {
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("writing metrics textfile failed")
	}
}

func loadDataset(log zerolog.Logger, m *metrics.Metrics, path string) (*dj.Dataset, error) {
	ds, f, err := dataio.Load(path, nil)
	if err != nil {
		return nil, err
	}
	m.RecordDatasetLoaded(string(f))
	log.Debug().Str("dataset", path).Str("format", string(f)).
		Int64("rows", ds.NumRows()).Int("columns", ds.NumCols()).Msg("dataset loaded")
	return ds, nil
}

func validateCmd(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseValidate(args, stderr)
	if err != nil {
		return parseFailed(err, stderr)
	}
	log, m := setup(cfg.Common, stderr, "validate")
	defer flushMetrics(log, m, cfg.MetricsTextfile)

	schema, err := schemafile.Load(cfg.SchemaPath)
	if err != nil {
		log.Error().Err(err).Msg("loading schema failed")
		return exitUsage
	}
	ds, err := loadDataset(log, m, cfg.DataPath)
	if err != nil {
		log.Error().Err(err).Msg("loading data failed")
		return exitUsage
	}
	defer ds.Release()

	verr := dj.Validate(ds, schema)
	m.RecordValidation(verr)
	sve, invalid := dj.AsSchemaValidationError(verr)
	if verr != nil && !invalid {
		log.Error().Err(verr).Msg("validation failed")
		return exitUsage
	}

	if err := writeReport(stdout, cfg.Output, sve); err != nil {
		log.Error().Err(err).Msg("writing report failed")
		return exitUsage
	}
	if invalid {
		log.Info().Int("violations", len(sve.Issues)).Msg("dataset does not match schema")
		return exitViolations
	}
	log.Info().Int("columns", schema.Len()).Msg("dataset matches schema")
	return exitOK
}

type reportIssue struct {
	Column  string         `json:"column"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

type report struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
	Issues []reportIssue     `json:"issues,omitempty"`
}

func writeReport(w io.Writer, format string, sve *dj.SchemaValidationError) error {
	r := report{Valid: sve == nil}
	if sve != nil {
		r.Errors = sve.Errors
		for _, is := range sve.Issues {
			r.Issues = append(r.Issues, reportIssue{Column: is.Column, Code: is.Code, Message: is.Message, Params: is.Params})
		}
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	if r.Valid {
		_, err := fmt.Fprintln(w, "ok")
		return err
	}
	for _, is := range r.Issues {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", is.Column, is.Code, is.Message); err != nil {
			return err
		}
	}
	return nil
}

func cleanCmd(args []string, stderr io.Writer) int {
	cfg, err := config.ParseClean(args, stderr)
	if err != nil {
		return parseFailed(err, stderr)
	}
	log, m := setup(cfg.Common, stderr, "clean")
	defer flushMetrics(log, m, cfg.MetricsTextfile)

	ds, err := loadDataset(log, m, cfg.DataPath)
	if err != nil {
		log.Error().Err(err).Msg("loading data failed")
		return exitUsage
	}
	defer func() { ds.Release() }()

	steps := []struct {
		name    string
		enabled bool
		apply   func(*dj.Dataset) (*dj.Dataset, error)
	}{
		{"standardize", cfg.Standardize, func(d *dj.Dataset) (*dj.Dataset, error) {
			return dj.StandardizeColumns(d)
		}},
		{"missing", cfg.Missing != "", func(d *dj.Dataset) (*dj.Dataset, error) {
			return dj.HandleMissingValues(d, dj.MissingOptions{Method: cfg.Missing})
		}},
		{"outliers", cfg.Outliers != "", func(d *dj.Dataset) (*dj.Dataset, error) {
			return dj.DetectOutliers(d, dj.OutlierOptions{Method: cfg.Outliers, Multiplier: cfg.Multiplier, Columns: cfg.OutlierColumns})
		}},
		{"scale", len(cfg.ScaleColumns) > 0, func(d *dj.Dataset) (*dj.Dataset, error) {
			return dj.StandardScale(d, dj.ScaleOptions{Columns: cfg.ScaleColumns})
		}},
	}
	for _, st := range steps {
		if !st.enabled {
			continue
		}
		next, err := st.apply(ds)
		if err != nil {
			log.Error().Err(err).Str("step", st.name).Msg("cleaning step failed")
			return exitUsage
		}
		m.RecordRowsRemoved(st.name, ds.NumRows(), next.NumRows())
		log.Debug().Str("step", st.name).Int64("rows_before", ds.NumRows()).Int64("rows_after", next.NumRows()).Msg("step applied")
		ds.Release()
		ds = next
	}

	f, err := dataio.Save(cfg.OutPath, ds)
	if err != nil {
		log.Error().Err(err).Msg("saving data failed")
		return exitUsage
	}
	dl := logging.WithDataset("clean", cfg.OutPath, string(f))
	dl.Info().Int64("rows", ds.NumRows()).Int("columns", ds.NumCols()).Msg("dataset written")
	return exitOK
}

func jsonSchemaCmd(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseJSONSchema(args, stderr)
	if err != nil {
		return parseFailed(err, stderr)
	}
	log, m := setup(cfg.Common, stderr, "jsonschema")
	defer flushMetrics(log, m, cfg.MetricsTextfile)

	schema, err := schemafile.Load(cfg.SchemaPath)
	if err != nil {
		log.Error().Err(err).Msg("loading schema failed")
		return exitUsage
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schema.JSONSchema()); err != nil {
		log.Error().Err(err).Msg("encoding json schema failed")
		return exitUsage
	}
	return exitOK
}
