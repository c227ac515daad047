package builtin

import "crimeflow/pkg/records"

// Require removes any record missing a value for any of the specified
// fields. Used to drop incident rows that lack the field a classification
// rule or join key depends on before those stages count them as anomalies.
type Require struct {
	Fields []string
}

// Apply returns a filtered slice containing only records that have all
// required fields present and non-empty. Order is preserved.
func (rq Require) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, rec := range in {
		ok := true
		for _, f := range rq.Fields {
			v, exists := rec[f]
			if !exists || v == nil || v == "" {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out
}
