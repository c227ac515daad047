package builtin

import (
	"strconv"

	"crimeflow/pkg/records"
)

// Coerce converts string field values to typed values per a field->type map.
// Supported types: "int", "string". Values that fail to parse are left as-is
// rather than erroring; classification and joins compare on string form
// anyway, so a stray unparsable cell degrades gracefully.
type Coerce struct {
	Types map[string]string // field -> "int" | "string"
}

// Apply coerces matching fields in place and returns the same slice.
func (c Coerce) Apply(in []records.Record) []records.Record {
	if len(c.Types) == 0 {
		return in
	}
	for _, r := range in {
		for field, typ := range c.Types {
			v, ok := r[field]
			if !ok || v == nil {
				continue
			}
			s, isStr := v.(string)
			if !isStr {
				continue
			}
			switch typ {
			case "int":
				if i, err := strconv.Atoi(s); err == nil {
					r[field] = i
				}
			case "string":
				// already string
			}
		}
	}
	return in
}
