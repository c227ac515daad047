// Package records defines the in-memory record model shared by every
// pipeline stage. It is intentionally dependency-free so that parsers,
// transformers, classifiers, and storage backends can all import it without
// pulling anything else in.
//
// A Record maps field names to values. Three value shapes are expected:
//
//   - string: textual fields straight from a parser
//   - int:    numeric fields after coercion
//   - nil:    an explicitly-missing value
//
// Missing is a first-class value, not an error. Parsers store nil for empty
// cells and every downstream stage must tolerate it.
package records

import (
	"fmt"
	"strconv"
)

// Record is a single row: field name -> value (string, int, or nil).
type Record map[string]any

// Clone returns a shallow copy of the record. Stages that add fields (e.g.
// joins projecting lookup columns) must clone rather than mutate, so earlier
// views of the data stay valid.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the string form of the named field and whether the field is
// present with a non-missing value. Integers are formatted base-10; other
// non-nil types fall back to fmt.
func String(r Record, field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return fmt.Sprint(t), true
	}
}

// Row flattens a record into a positional slice following the given column
// order. Absent fields become nil. Used when handing records to storage
// backends that insert by column position.
func Row(r Record, columns []string) []any {
	out := make([]any, len(columns))
	for i, c := range columns {
		out[i] = r[c]
	}
	return out
}
