// Package kinds maps Arrow physical types onto the coarse logical kinds used
// by schema rules.
package kinds

import "github.com/apache/arrow-go/v18/arrow"

// Kind is a logical column kind.
type Kind string

const (
	Int    Kind = "int"
	Float  Kind = "float"
	Str    Kind = "str"
	Bool   Kind = "bool"
	Object Kind = "object"
)

// All lists the logical kinds in declaration order.
var All = []Kind{Int, Float, Str, Bool, Object}

// aliases is the physical -> logical table. Physical types missing here have
// no logical kind (dates, timestamps, decimals, ...).
var aliases = map[arrow.Type]Kind{
	arrow.INT8:   Int,
	arrow.INT16:  Int,
	arrow.INT32:  Int,
	arrow.INT64:  Int,
	arrow.UINT8:  Int,
	arrow.UINT16: Int,
	arrow.UINT32: Int,
	arrow.UINT64: Int,

	arrow.FLOAT16: Float,
	arrow.FLOAT32: Float,
	arrow.FLOAT64: Float,

	arrow.STRING:       Str,
	arrow.LARGE_STRING: Str,

	arrow.BOOL: Bool,

	arrow.NULL:         Object,
	arrow.BINARY:       Object,
	arrow.LARGE_BINARY: Object,
	arrow.LIST:         Object,
	arrow.LARGE_LIST:   Object,
	arrow.STRUCT:       Object,
	arrow.MAP:          Object,
	arrow.DENSE_UNION:  Object,
	arrow.SPARSE_UNION: Object,
}

// Of returns the logical kind of an Arrow data type.
func Of(dt arrow.DataType) (Kind, bool) {
	if dt == nil {
		return "", false
	}
	k, ok := aliases[dt.ID()]
	return k, ok
}

// Describe renders the kind of dt for messages: the logical kind when known,
// otherwise the Arrow type name.
func Describe(dt arrow.DataType) string {
	if k, ok := Of(dt); ok {
		return string(k)
	}
	if dt == nil {
		return "unknown"
	}
	return dt.Name()
}

// Numeric reports whether dt is an int or float kind.
func Numeric(dt arrow.DataType) bool {
	k, ok := Of(dt)
	return ok && (k == Int || k == Float)
}

// Parse converts a logical kind name. Names are matched exactly.
func Parse(s string) (Kind, bool) {
	for _, k := range All {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}
