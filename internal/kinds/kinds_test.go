package kinds

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
)

func TestOf_AliasTable(t *testing.T) {
	cases := []struct {
		dt   arrow.DataType
		want Kind
	}{
		{arrow.PrimitiveTypes.Int8, Int},
		{arrow.PrimitiveTypes.Int64, Int},
		{arrow.PrimitiveTypes.Uint32, Int},
		{arrow.PrimitiveTypes.Float32, Float},
		{arrow.PrimitiveTypes.Float64, Float},
		{arrow.BinaryTypes.String, Str},
		{arrow.BinaryTypes.LargeString, Str},
		{arrow.FixedWidthTypes.Boolean, Bool},
		{arrow.BinaryTypes.Binary, Object},
		{arrow.Null, Object},
	}
	for _, tc := range cases {
		got, ok := Of(tc.dt)
		if !ok || got != tc.want {
			t.Fatalf("Of(%s) = %q, %v; want %q", tc.dt, got, ok, tc.want)
		}
	}
}

func TestDescribe_Unmapped(t *testing.T) {
	dt := arrow.FixedWidthTypes.Date32
	if _, ok := Of(dt); ok {
		t.Fatalf("date32 should have no logical kind")
	}
	if got := Describe(dt); got != "date32" {
		t.Fatalf("Describe(date32) = %q", got)
	}
	if got := Describe(arrow.PrimitiveTypes.Int16); got != "int" {
		t.Fatalf("Describe(int16) = %q", got)
	}
}

func TestParse(t *testing.T) {
	for _, k := range All {
		if got, ok := Parse(string(k)); !ok || got != k {
			t.Fatalf("Parse(%q) = %q, %v", k, got, ok)
		}
	}
	if _, ok := Parse("integer"); ok {
		t.Fatalf("Parse should reject unknown names")
	}
	if _, ok := Parse("Int"); ok {
		t.Fatalf("Parse should be case sensitive")
	}
}

func TestNumeric(t *testing.T) {
	if !Numeric(arrow.PrimitiveTypes.Uint8) || !Numeric(arrow.PrimitiveTypes.Float64) {
		t.Fatalf("ints and floats are numeric")
	}
	if Numeric(arrow.BinaryTypes.String) || Numeric(arrow.FixedWidthTypes.Boolean) {
		t.Fatalf("strings and bools are not numeric")
	}
}
