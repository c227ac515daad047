package builtin

import (
	"strings"

	"github.com/zeebo/xxh3"

	"crimeflow/pkg/records"
)

// DeDup collapses duplicate incident records by a configured business key
// (typically the case or report number), keeping the first occurrence.
// Incident exports frequently repeat a case across extract runs; deduping
// before classification keeps summary counts honest.
//
// Keys are hashed with xxh3 over the concatenated key fields, so the winner
// map stays compact even for multi-field keys over large batches. Records
// missing any key field pass through untouched in their original position.
type DeDup struct {
	// Keys are the field names forming the business key, e.g. ["case_number"].
	Keys []string
}

// Apply returns a new slice with later duplicates removed. Input order is
// preserved.
func (d DeDup) Apply(in []records.Record) []records.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in
	}

	seen := make(map[uint64]struct{}, len(in))
	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		h, ok := d.hashKey(r)
		if !ok {
			// No usable key: not part of the de-dup domain.
			out = append(out, r)
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, r)
	}
	return out
}

// hashKey builds the composite key string and hashes it. The unit separator
// keeps ("ab","c") distinct from ("a","bc").
func (d DeDup) hashKey(r records.Record) (uint64, bool) {
	var b strings.Builder
	for i, k := range d.Keys {
		s, ok := records.String(r, k)
		if !ok {
			return 0, false
		}
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(s)
	}
	return xxh3.HashString(b.String()), true
}
