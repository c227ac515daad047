// Package classify decides which incident records count as violent crime.
//
// Two rule shapes exist because the two source datasets encode offenses
// differently: one carries a free-text offense description (matched by
// keyword), the other a coded offense classification (matched by exact code
// membership). Both implement Rule, so the filter itself is rule-agnostic.
package classify

import (
	"strings"

	"crimeflow/pkg/records"
)

// Rule classifies a single record.
type Rule interface {
	Match(r records.Record) bool
}

// Keyword matches when the named field contains any of the keywords,
// case-insensitively. Matching is substring containment, not whole-word:
// "Battery" matches "Aggravated Battery". A missing field never matches.
type Keyword struct {
	Field    string
	Keywords []string
}

// Match reports whether the record's field contains any configured keyword.
func (k Keyword) Match(r records.Record) bool {
	s, ok := records.String(r, k.Field)
	if !ok {
		return false
	}
	s = strings.ToLower(s)
	for _, kw := range k.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// CodeSet matches when the named field's value is exactly one of the
// configured offense codes. Comparison is exact, not substring. A missing
// field never matches.
type CodeSet struct {
	Field string
	codes map[string]struct{}
}

// NewCodeSet builds a CodeSet rule over the given field and code list.
func NewCodeSet(field string, codes []string) CodeSet {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return CodeSet{Field: field, codes: set}
}

// Match reports whether the record's field is a member of the code set.
func (c CodeSet) Match(r records.Record) bool {
	s, ok := records.String(r, c.Field)
	if !ok {
		return false
	}
	_, hit := c.codes[s]
	return hit
}

// Filter returns the records satisfying the rule, in original order. The
// input slice is not modified; records are shared, not copied.
func Filter(in []records.Record, rule Rule) []records.Record {
	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		if rule.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
