// Package datajanitor provides dataset-cleaning utilities over an in-memory,
// Arrow-backed table:
//
// - Schema validation with every column violation reported (Validate)
// - Outlier filtering by IQR or z-score (DetectOutliers)
// - Missing-value handling by drop/mean/median/mode (HandleMissingValues)
// - Column-name normalization (StandardizeColumns)
// - Z-score scaling of numeric columns (StandardScale)
//
// Every function is pure: inputs are read-only and each transform returns a
// fresh Dataset owned by the caller.
//
// Design policy:
// - Keep public APIs in the root package; put helpers under internal/.
// - Declarative schema documents live in schemafile/, file I/O in dataio/, and
//   the CLI under cmd/datajanitor.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	s := datajanitor.NewSchema().
//		Set("age", datajanitor.ColumnRule{Type: datajanitor.KindInt, Min: datajanitor.Float(0)}).
//		Set("name", datajanitor.ColumnRule{Type: datajanitor.KindStr})
//	if err := datajanitor.Validate(ds, s); err != nil {
//		if sve, ok := datajanitor.AsSchemaValidationError(err); ok {
//			for col, msg := range sve.Errors { ... }
//		}
//	}
package datajanitor
