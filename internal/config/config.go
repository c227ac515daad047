// Package config defines the canonical, JSON-serializable configuration
// model for the incident-analysis application. It is intentionally small,
// explicit, and dependency-free so that pipelines can be loaded from disk
// and passed through the program without additional glue code.
//
// A config file describes one or more datasets. Each dataset names its
// source file, how to parse it, the rule that classifies a record as
// violent, the lookup tables to join, which summaries to produce, and where
// to persist the filtered records. Example (trimmed):
//
//	{
//	  "job": "crime-reports",
//	  "datasets": [{
//	    "name": "chicago",
//	    "source":  { "kind": "file", "file": { "path": "data/chicago.csv" } },
//	    "parser":  { "kind": "csv", "has_header": true, "trim_space": true },
//	    "rule":    { "kind": "keyword", "field": "primary_type",
//	                 "values": ["HOMICIDE", "ASSAULT", "BATTERY"] },
//	    "lookups": [{ "path": "data/iucr.csv", "key": "iucr",
//	                  "base_key": "iucr", "project": ["offense_name"] }],
//	    "hour_field": "hour",
//	    "aggregations": [{ "name": "offense", "field": "primary_type", "top_n": 10 }],
//	    "storage": { "kind": "sqlite", "db": { "dsn": "crime.db", "table": "violent" } }
//	  }]
//	}
package config

import (
	"encoding/json"
	"io"
	"os"
)

// File is the top-level object decoded from a config file.
type File struct {
	// Job names this run for metrics labeling and logs.
	Job string `json:"job"`

	// Datasets lists the independent dataset pipelines. Each runs in
	// isolation; one failing does not stop the others.
	Datasets []Dataset `json:"datasets"`
}

// Dataset describes one dataset's full pipeline.
type Dataset struct {
	// Name identifies the dataset in logs, metrics, and reports.
	Name string `json:"name"`

	// Source describes where input data comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into records.
	Parser Parser `json:"parser"`

	// DedupKeys optionally names the business-key fields used to drop
	// duplicate incident rows before classification.
	DedupKeys []string `json:"dedup_keys,omitempty"`

	// IntFields optionally names fields coerced from string to int after
	// parsing (e.g. a numeric district code).
	IntFields []string `json:"int_fields,omitempty"`

	// Rule classifies records as violent.
	Rule Rule `json:"rule"`

	// Lookups lists lookup-table joins applied, in order, to the filtered
	// set. Datasets whose descriptive fields are already present leave this
	// empty.
	Lookups []LookupSpec `json:"lookups,omitempty"`

	// HourField names the hour-of-day field feeding the hourly frequency
	// report. Empty skips the hourly branch.
	HourField string `json:"hour_field,omitempty"`

	// Aggregations lists the per-category summaries to produce.
	Aggregations []Aggregation `json:"aggregations"`

	// Storage describes where filtered records are persisted. A zero Kind
	// skips persistence.
	Storage Storage `json:"storage"`
}

// Source identifies the data source. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into rows and columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool `json:"has_header"`

	// Comma is the delimiter as a one-character string; empty means ",".
	Comma string `json:"comma,omitempty"`

	// TrimSpace trims surrounding whitespace from every cell.
	TrimSpace bool `json:"trim_space,omitempty"`

	// ExpectedFields enforces a fixed width for headerless files.
	ExpectedFields int `json:"expected_fields,omitempty"`

	// HeaderMap maps source header names to canonical field names.
	HeaderMap map[string]string `json:"header_map,omitempty"`
}

// Rule configures the violent-crime classification for a dataset.
type Rule struct {
	// Kind selects the rule: "keyword" (case-insensitive substring over a
	// free-text field) or "codes" (exact membership over a coded field).
	Kind string `json:"kind"`

	// Field is the record field the rule inspects.
	Field string `json:"field"`

	// Values are the keywords or offense codes, per Kind.
	Values []string `json:"values"`
}

// LookupSpec configures one lookup-table join.
type LookupSpec struct {
	// Path is the lookup table's CSV file.
	Path string `json:"path"`

	// Parser optionally overrides parse options for the lookup file; a zero
	// value means headered CSV with trimming.
	Parser *Parser `json:"parser,omitempty"`

	// Key is the lookup table's unique key field.
	Key string `json:"key"`

	// BaseKey is the fact-table field holding that key. Empty means the
	// same name as Key.
	BaseKey string `json:"base_key,omitempty"`

	// Project lists the lookup fields appended to each matched record.
	Project []string `json:"project"`
}

// Aggregation configures one summary table.
type Aggregation struct {
	// Name labels the summary in reports ("offense", "location", ...).
	Name string `json:"name"`

	// Field is the categorical field grouped on.
	Field string `json:"field"`

	// TopN, when > 0, keeps only the N largest categories.
	TopN int `json:"top_n,omitempty"`

	// CollapseTail, when > 0, keeps the first K categories and folds the
	// rest into a synthetic "Other" row. Applied after TopN when both are
	// set.
	CollapseTail int `json:"collapse_tail,omitempty"`
}

// Storage selects the sink used to persist filtered records.
type Storage struct {
	// Kind selects the storage implementation: "sqlite", "postgres",
	// "mysql". Empty disables persistence for the dataset.
	Kind string `json:"kind"`

	// DB configures the selected sink.
	DB DBConfig `json:"db"`
}

// DBConfig configures a database sink.
type DBConfig struct {
	// DSN is the backend connection string (file path for sqlite,
	// postgresql:// URL for pgx, mysql DSN for go-sql-driver).
	DSN string `json:"dsn"`

	// Table is the destination table name.
	Table string `json:"table"`

	// Columns enumerates the destination columns in insert order. Empty
	// defaults to the union of fields observed on the first filtered
	// record.
	Columns []string `json:"columns,omitempty"`
}

// Load decodes a config file from path.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes a config file from r.
func Decode(r io.Reader) (File, error) {
	var out File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return File{}, err
	}
	return out, nil
}
