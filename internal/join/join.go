// Package join resolves coded fields on a fact table against keyed lookup
// tables (offense codes -> offense names, location codes -> descriptions,
// incident ids -> hour of day).
//
// The strategy is index-then-probe: each lookup table is indexed once by its
// key field (O(L)), then the base set is scanned once (O(N)). Joins are
// chained in series, each narrowing the working set, so a naive O(N*L)
// rescan per step is not acceptable.
//
// Policy is a strict inner join: a base record whose key has no lookup entry
// is dropped, not nulled. Drops are counted for diagnostics but are never an
// error.
package join

import (
	"fmt"
	"strings"

	"crimeflow/pkg/records"
)

// Lookup is a lookup table indexed by its unique key field.
type Lookup struct {
	keyField string
	index    map[string]records.Record
}

// NewLookup indexes table by keyField. Lookup keys must be unique per
// record; a duplicate key is a data error in the lookup source and is
// reported rather than silently last-wins resolved. Rows with a missing key
// are skipped.
func NewLookup(table []records.Record, keyField string) (*Lookup, error) {
	idx := make(map[string]records.Record, len(table))
	for i, r := range table {
		k, ok := records.String(r, keyField)
		if !ok {
			continue
		}
		if _, dup := idx[k]; dup {
			return nil, fmt.Errorf("lookup key %q duplicated at row %d (field %s)", k, i, keyField)
		}
		idx[k] = r
	}
	return &Lookup{keyField: keyField, index: idx}, nil
}

// Len returns the number of indexed lookup entries.
func (l *Lookup) Len() int { return len(l.index) }

// Join inner-joins base against the lookup on baseKey and returns a new
// record set with the projected lookup fields appended to each matched
// record. Base records are cloned, never mutated. The second return value is
// the number of base records dropped for want of a matching key (including
// records whose key field is missing).
//
// A projected field name already present on the base record is appended
// under "<name>_lookup" instead, so chained joins cannot clobber fact
// columns.
func (l *Lookup) Join(base []records.Record, baseKey string, project ...string) ([]records.Record, int) {
	out := make([]records.Record, 0, len(base))
	dropped := 0
	for _, r := range base {
		k, ok := records.String(r, baseKey)
		if !ok {
			dropped++
			continue
		}
		hit, ok := l.index[k]
		if !ok {
			dropped++
			continue
		}
		joined := r.Clone()
		for _, f := range project {
			name := f
			if _, exists := joined[name]; exists {
				name = f + "_lookup"
			}
			joined[name] = hit[f]
		}
		out = append(out, joined)
	}
	return out, dropped
}

// Step is one link in a join chain.
type Step struct {
	Lookup  *Lookup
	BaseKey string
	Project []string
}

func (s Step) String() string {
	return fmt.Sprintf("%s->[%s]", s.BaseKey, strings.Join(s.Project, ","))
}

// Chain applies the steps in order and returns the final set plus the total
// dropped count across all steps. Order affects only how early records are
// dropped, not the final membership: each step is independently an
// inner-join filter.
func Chain(base []records.Record, steps ...Step) ([]records.Record, int) {
	out := base
	total := 0
	for _, s := range steps {
		var dropped int
		out, dropped = s.Lookup.Join(out, s.BaseKey, s.Project...)
		total += dropped
	}
	return out, total
}
