package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/reoring/datajanitor/dataio"
	"github.com/reoring/datajanitor/internal/config"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const schemaYAML = `
name: str
age: {type: int, min: 5, max: 100}
city: {type: str, required: false}
email: str
`

const dataCSV = "name,age\nann,-5\nbob,20\ncid,30\n"

func TestValidate_TextReport(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "s.yaml", schemaYAML)
	d := writeFile(t, dir, "d.csv", dataCSV)
	prom := filepath.Join(dir, "dj.prom")

	var stdout, stderr bytes.Buffer
	code := run([]string{"validate", "-log-format", "json", "-metrics-textfile", prom, "-schema", s, "-data", d}, &stdout, &stderr)
	if code != exitViolations {
		t.Fatalf("exit = %d; want %d (stderr: %s)", code, exitViolations, stderr.String())
	}
	want := "age\tout_of_range\tValues in 'age' must be between 5 and 100.\n" +
		"email\trequired\tRequired Column 'email' not found in data\n"
	if stdout.String() != want {
		t.Fatalf("report = %q; want %q", stdout.String(), want)
	}

	b, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("metrics textfile: %v", err)
	}
	for _, line := range []string{
		`datajanitor_validations_total{result="invalid"} 1`,
		`datajanitor_column_violations_total{code="required"} 1`,
		`datajanitor_datasets_loaded_total{format="csv"} 1`,
	} {
		if !strings.Contains(string(b), line) {
			t.Errorf("metrics missing %s", line)
		}
	}
}

func TestValidate_JSONReport(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "s.json", `{"name": "str", "age": {"type": "float"}}`)
	d := writeFile(t, dir, "d.csv", dataCSV)

	var stdout, stderr bytes.Buffer
	code := run([]string{"validate", "-format", "json", "-schema", s, "-data", d}, &stdout, &stderr)
	if code != exitViolations {
		t.Fatalf("exit = %d; want %d (stderr: %s)", code, exitViolations, stderr.String())
	}
	var r report
	if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if r.Valid || len(r.Issues) != 1 || r.Issues[0].Code != "invalid_type" {
		t.Fatalf("unexpected report %+v", r)
	}
	if got := r.Errors["age"]; got != "Column 'age' has incorrect type. Expected float, got int." {
		t.Fatalf("age = %q", got)
	}
}

func TestValidate_Valid(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "s.yaml", "name: str\nage: {type: int, min: -10}\n")
	d := writeFile(t, dir, "d.csv", dataCSV)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"validate", "-schema", s, "-data", d}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit = %d; want 0 (stderr: %s)", code, stderr.String())
	}
	if stdout.String() != "ok\n" {
		t.Fatalf("report = %q", stdout.String())
	}
}

func TestRun_UsageErrors(t *testing.T) {
	dir := t.TempDir()
	d := writeFile(t, dir, "d.csv", dataCSV)
	cases := [][]string{
		nil,
		{"explode"},
		{"validate", "-data", d},
		{"validate", "-schema", filepath.Join(dir, "missing.yaml"), "-data", d},
		{"clean", "-data", d, "-out", filepath.Join(dir, "o.csv"), "-missing", "interpolate"},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code != exitUsage {
			t.Errorf("run(%v) = %d; want %d", args, code, exitUsage)
		}
	}
}

func TestClean_Pipeline(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", "First Name,Score\nann,11\nbob,12\ncid,\ndan,13\neve,14\nfay,100\n")
	out := filepath.Join(dir, "out.parquet")

	var stdout, stderr bytes.Buffer
	code := run([]string{"clean", "-log-format", "json", "-data", in, "-out", out,
		"-standardize-columns", "-missing", "drop", "-outliers", "iqr"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("exit = %d (stderr: %s)", code, stderr.String())
	}
	if log := stderr.String(); !strings.Contains(log, `"message":"dataset written"`) || !strings.Contains(log, `"format":"parquet"`) {
		t.Fatalf("missing write log in %q", log)
	}

	ds, _, err := dataio.Load(out, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer ds.Release()
	if got := strings.Join(ds.ColumnNames(), ","); got != "first_name,score" {
		t.Fatalf("columns = %s", got)
	}
	col, _ := ds.Column("score")
	var vals []string
	for i := 0; i < col.Len(); i++ {
		vals = append(vals, col.ValueStr(i))
	}
	if got := strings.Join(vals, ","); got != "11,12,13,14" {
		t.Fatalf("score = %s", got)
	}
}

func TestJSONSchema(t *testing.T) {
	dir := t.TempDir()
	s := writeFile(t, dir, "s.yaml", schemaYAML)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"jsonschema", "-schema", s}, &stdout, &stderr); code != exitOK {
		t.Fatalf("exit = %d (stderr: %s)", code, stderr.String())
	}
	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc["type"] != "object" {
		t.Fatalf("type = %v", doc["type"])
	}
	req, _ := doc["required"].([]any)
	if len(req) != 3 || req[0] != "name" || req[1] != "age" || req[2] != "email" {
		t.Fatalf("required = %v", doc["required"])
	}
	props := doc["properties"].(map[string]any)
	age := props["age"].(map[string]any)
	if age["type"] != "integer" || age["minimum"] != float64(5) || age["maximum"] != float64(100) {
		t.Fatalf("age = %v", age)
	}
}

func TestSetup_DefaultsWhenFlagsEmpty(t *testing.T) {
	var stderr bytes.Buffer
	log, m := setup(config.Common{}, &stderr, "test")
	if m == nil {
		t.Fatal("expected metrics")
	}
	if got := zerolog.GlobalLevel(); got != zerolog.InfoLevel {
		t.Fatalf("level = %s; want info", got)
	}
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	if out := stderr.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected log output %q", out)
	}
}
