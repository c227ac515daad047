// Package parser defines the contract for turning raw dataset bytes into
// records. Incident portals publish delimited text; the csv subpackage is
// the only implementation today, but the seam stays so other formats can be
// added without touching the pipeline.
package parser

import (
	"io"

	"crimeflow/pkg/records"
)

// Parser parses an input stream into records. The int return is the number
// of malformed rows skipped (soft failures), which callers surface as a
// diagnostic, not an error.
type Parser interface {
	Parse(r io.Reader) ([]records.Record, int, error)
}
