package builtin

import (
	"fmt"
	"strconv"
	"strings"

	"crimeflow/pkg/records"
)

// Hours extracts a clean integer hour-of-day sequence from a field whose
// runtime typing cannot be trusted. The hour column crosses a join boundary
// from a differently-typed source table, so the same logical field arrives
// as ints, numeric strings, whitespace-padded strings, literal "nan"/"NaN"
// tokens, or empty cells.
//
// Coercion is total: every input shape has a defined outcome and nothing
// panics or errors. Unrecoverable values are dropped from the output (no
// positional padding) and counted. Range is deliberately not validated
// here; values outside [0,23] pass through and the renderer decides what to
// do with them.
type Hours struct {
	Field string
}

// Extract pulls the configured field from every record and coerces it.
func (h Hours) Extract(in []records.Record) (kept []int, dropped int) {
	values := make([]any, len(in))
	for i, r := range in {
		values[i] = r[h.Field]
	}
	return CoerceHours(values)
}

// CoerceHours normalizes a heterogeneously-typed value sequence into
// integers, applying in fixed order:
//
//  1. stringify every value regardless of original representation
//  2. reclassify a trimmed, case-insensitive "nan" token as missing
//  3. reclassify a trimmed empty string as missing
//  4. trim surrounding whitespace on survivors
//  5. numeric parse; unparsable strings become missing
//  6. drop everything classified missing
func CoerceHours(values []any) (kept []int, dropped int) {
	kept = make([]int, 0, len(values))
	for _, v := range values {
		n, ok := coerceHour(v)
		if !ok {
			dropped++
			continue
		}
		kept = append(kept, n)
	}
	return kept, dropped
}

func coerceHour(v any) (int, bool) {
	var s string
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		// A NaN float stringifies to "NaN" and is caught below.
		s = strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}

	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	// Hour columns sourced from float-typed tables arrive as "14.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}
