// Package transformer defines the record-transformation seam of the
// pipeline. Transformers run between parsing and classification to clean up
// raw incident rows before any decision logic sees them.
package transformer

import "crimeflow/pkg/records"

// Transformer rewrites or filters a batch of records.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer in order over the batch.
func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
