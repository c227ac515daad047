// Package probe samples the head of a delimited incident file and reports
// header names with inferred column types. It exists to help write dataset
// configs: run the binary with -probe to see what a new export looks like
// before wiring it into a pipeline.
package probe

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Column is one probed column: the raw header, a config-friendly slug, and
// the inferred type ("integer", "real", "boolean", or "text").
type Column struct {
	Header string `json:"header"`
	Slug   string `json:"slug"`
	Type   string `json:"type"`
}

// maxSampleRows caps how many data rows feed type inference.
const maxSampleRows = 10000

// Sample reads up to sampleBytes from r, parses it as CSV with the given
// delimiter, and returns one Column per header. The tail of the sample is
// usually a truncated row; parsing is best-effort and misaligned rows are
// skipped so inference stays accurate.
func Sample(r io.Reader, sampleBytes int, delim rune) ([]Column, error) {
	if sampleBytes <= 0 {
		sampleBytes = 1 << 20
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(&io.LimitedReader{R: r, N: int64(sampleBytes)}); err != nil {
		return nil, fmt.Errorf("read sample: %w", err)
	}

	headers, rows, err := readCSVSample(buf.Bytes(), delim)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("no usable header row in sample")
	}

	out := make([]Column, len(headers))
	types := inferTypes(headers, rows)
	for i, h := range headers {
		out[i] = Column{Header: h, Slug: Slug(h), Type: types[i]}
	}
	return out, nil
}

// readCSVSample parses CSV data and returns headers plus up to
// maxSampleRows data rows. Rows that fail to parse or whose field count
// differs from the header are skipped.
func readCSVSample(data []byte, delim rune) ([]string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	if delim != 0 {
		r.Comma = delim
	}
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var headers []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil, nil, nil
		}
		if err != nil || len(rec) == 0 {
			continue
		}
		headers = rec
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
		break
	}

	rows := make([][]string, 0, 256)
	want := len(headers)
	for len(rows) < maxSampleRows {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(rec) != want {
			continue
		}
		rows = append(rows, rec)
	}
	return headers, rows, nil
}

// Slug converts a header into a config-friendly field name: diacritics
// stripped, lowercased, non-alphanumerics collapsed to single underscores.
func Slug(header string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, header)
	if err != nil {
		s = header
	}
	var b strings.Builder
	lastUnderscore := true // trims leading separators
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// inferTypes returns one inferred type per header based on the sampled rows.
func inferTypes(headers []string, rows [][]string) []string {
	n := len(headers)
	cols := make([][]string, n)
	for _, row := range rows {
		for i := 0; i < n && i < len(row); i++ {
			cols[i] = append(cols[i], row[i])
		}
	}
	types := make([]string, n)
	for i := 0; i < n; i++ {
		types[i] = inferTypeForColumn(cols[i])
	}
	return types
}

// inferTypeForColumn guesses a type among boolean, integer, real, text.
// Heuristic: require all non-empty values to satisfy the narrower type.
func inferTypeForColumn(values []string) string {
	nonEmpty := nonEmptyTrimmed(values)
	if len(nonEmpty) == 0 {
		return "text"
	}
	if allMatch(nonEmpty, isInt) {
		return "integer"
	}
	if allMatch(nonEmpty, isBool) {
		return "boolean"
	}
	if allMatch(nonEmpty, isFloat) {
		return "real"
	}
	return "text"
}

// nonEmptyTrimmed returns the non-empty, trimmed values.
func nonEmptyTrimmed(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// allMatch reports whether every value satisfies fn.
func allMatch(vals []string, fn func(string) bool) bool {
	for _, v := range vals {
		if !fn(v) {
			return false
		}
	}
	return true
}

// isBool accepts common textual booleans and 1/0.
func isBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "t", "f", "yes", "no", "y", "n", "1", "0":
		return true
	default:
		return false
	}
}

// isInt requires a signed base-10 integer that fits in int64.
func isInt(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

// isFloat accepts decimal or scientific notation floats. Ints are NOT
// floats, so integer columns stay "integer".
func isFloat(s string) bool {
	if isInt(s) {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
