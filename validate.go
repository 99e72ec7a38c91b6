package datajanitor

import (
	"math"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/reoring/datajanitor/internal/kinds"
	"github.com/reoring/datajanitor/internal/messages"
)

// Validate checks data against schema and reports every offending column.
//
// data must be a *Dataset, arrow.Record or arrow.Table and schema a *Schema,
// Schema or map[string]ColumnRule; anything else yields a *TypeInputError.
// Column violations are returned together as a *SchemaValidationError with at
// most one message per column. A nil return means the data is valid.
func Validate(data, schema any) error {
	ds, release, err := asDataset(data, memory.DefaultAllocator)
	if err != nil {
		return err
	}
	defer release()
	s, ok := asSchema(schema)
	if !ok {
		return errSchemaNotMapping()
	}

	var sve SchemaValidationError
	for _, name := range s.names {
		if is, bad := checkColumn(ds, name, s.rules[name]); bad {
			sve.add(is)
		}
	}
	if len(sve.Issues) > 0 {
		return &sve
	}
	return nil
}

// checkColumn applies presence, type, missing-value and bounds checks in that
// order and returns the first violation.
func checkColumn(ds *Dataset, name string, rule ColumnRule) (Issue, bool) {
	col, present := ds.Column(name)
	if !present {
		if rule.IsRequired() {
			return newIssue(name, CodeRequired, nil, nil), true
		}
		return Issue{}, false
	}

	got := kinds.Describe(col.DataType())
	if rule.Type != "" {
		if k, ok := kinds.Of(col.DataType()); !ok || k != rule.Type {
			return newIssue(name, CodeInvalidType,
				map[string]any{"expected": string(rule.Type), "got": got},
				map[string]string{"expected": string(rule.Type), "got": got}), true
		}
	}

	if col.NullN() > 0 {
		return newIssue(name, CodeMissingValues, map[string]any{"missing": col.NullN()}, nil), true
	}

	if !rule.HasBounds() {
		return Issue{}, false
	}
	if !kinds.Numeric(col.DataType()) {
		return newIssue(name, CodeInvalidType,
			map[string]any{"expected": "numeric", "got": got},
			map[string]string{"got": got, "variant": messages.VariantNumeric}), true
	}
	if inBounds(col, rule.Min, rule.Max) {
		return Issue{}, false
	}
	params := map[string]any{}
	data := map[string]string{}
	if rule.Min != nil {
		params["min"] = *rule.Min
		data["min"] = formatBound(*rule.Min)
	}
	if rule.Max != nil {
		params["max"] = *rule.Max
		data["max"] = formatBound(*rule.Max)
	}
	switch {
	case rule.Min == nil:
		data["variant"] = messages.VariantAtMost
	case rule.Max == nil:
		data["variant"] = messages.VariantAtLeast
	default:
		data["variant"] = messages.VariantBetween
	}
	return newIssue(name, CodeOutOfRange, params, data), true
}

// inBounds reports whether every present value lies within [lo, hi]; a nil
// bound is not enforced. Integer columns compare in the integer domain so
// values beyond 2^53 keep their precision. NaN is never within bounds.
func inBounds(col arrow.Array, lo, hi *float64) bool {
	if get, ok := intReader(col); ok {
		return intInBounds(col, get, lo, hi)
	}
	if get, ok := uintReader(col); ok {
		return uintInBounds(col, get, lo, hi)
	}
	get, ok := floatReader(col)
	if !ok {
		return true
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			continue
		}
		v := get(i)
		if math.IsNaN(v) {
			return false
		}
		if lo != nil && v < *lo {
			return false
		}
		if hi != nil && v > *hi {
			return false
		}
	}
	return true
}

const (
	twoTo63 = float64(1 << 63)
	twoTo64 = float64(1 << 64)
)

func enforced(b *float64) bool { return b != nil && !math.IsNaN(*b) }

func intInBounds(col arrow.Array, get func(int) int64, lo, hi *float64) bool {
	lower, upper := int64(math.MinInt64), int64(math.MaxInt64)
	if enforced(lo) {
		c := math.Ceil(*lo)
		switch {
		case c >= twoTo63:
			return col.NullN() == col.Len()
		case c > -twoTo63:
			lower = int64(c)
		}
	}
	if enforced(hi) {
		f := math.Floor(*hi)
		switch {
		case f < -twoTo63:
			return col.NullN() == col.Len()
		case f < twoTo63:
			upper = int64(f)
		}
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsValid(i) {
			if v := get(i); v < lower || v > upper {
				return false
			}
		}
	}
	return true
}

func uintInBounds(col arrow.Array, get func(int) uint64, lo, hi *float64) bool {
	lower, upper := uint64(0), uint64(math.MaxUint64)
	if enforced(lo) {
		c := math.Ceil(*lo)
		switch {
		case c >= twoTo64:
			return col.NullN() == col.Len()
		case c > 0:
			lower = uint64(c)
		}
	}
	if enforced(hi) {
		f := math.Floor(*hi)
		switch {
		case f < 0:
			return col.NullN() == col.Len()
		case f < twoTo64:
			upper = uint64(f)
		}
	}
	for i := 0; i < col.Len(); i++ {
		if col.IsValid(i) {
			if v := get(i); v < lower || v > upper {
				return false
			}
		}
	}
	return true
}

func newIssue(column, code string, params map[string]any, data map[string]string) Issue {
	if data == nil {
		data = map[string]string{}
	}
	data["column"] = column
	return Issue{Column: column, Code: code, Message: messages.T(code, data), Params: params}
}

// formatBound renders a bound in its shortest plain decimal form (5, 2.5).
func formatBound(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
