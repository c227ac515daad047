// Package builtin contains simple, reusable transformers for incident data.
package builtin

import (
	"strings"

	"crimeflow/pkg/records"
)

// Normalize trims surrounding whitespace from every string value and turns
// values that emptied out into explicit missing (nil). Incident exports pad
// cells inconsistently; trimming here keeps every later comparison exact.
type Normalize struct{}

// Apply normalizes string values in place and returns the same slice.
func (Normalize) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		for k, v := range r {
			s, ok := v.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				r[k] = nil
				continue
			}
			r[k] = s
		}
	}
	return in
}
