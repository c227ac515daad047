// This file adds a lightweight linter/validator for config File values. It
// performs static checks over a decoded File and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "datasets[0].rule.kind").
// Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a config File. It does not mutate
// the config; it returns a slice of Issue values. Callers decide whether to
// treat warnings as fatal.
func Validate(f File) []Issue {
	var issues []Issue

	if strings.TrimSpace(f.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	if len(f.Datasets) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "datasets",
			Message:  "at least one dataset is required",
		})
	}
	for i, ds := range f.Datasets {
		issues = append(issues, validateDataset(fmt.Sprintf("datasets[%d]", i), ds)...)
	}
	return issues
}

func validateDataset(path string, ds Dataset) []Issue {
	var issues []Issue

	if strings.TrimSpace(ds.Name) == "" {
		issues = append(issues, Issue{SeverityError, path + ".name", "dataset name must not be empty"})
	}
	issues = append(issues, validateSource(path+".source", ds.Source)...)
	issues = append(issues, validateParser(path+".parser", ds.Parser)...)
	issues = append(issues, validateRule(path+".rule", ds.Rule)...)

	for i, l := range ds.Lookups {
		lp := fmt.Sprintf("%s.lookups[%d]", path, i)
		if strings.TrimSpace(l.Path) == "" {
			issues = append(issues, Issue{SeverityError, lp + ".path", "lookup path must not be empty"})
		}
		if strings.TrimSpace(l.Key) == "" {
			issues = append(issues, Issue{SeverityError, lp + ".key", "lookup key field must not be empty"})
		}
		if len(l.Project) == 0 {
			issues = append(issues, Issue{SeverityWarning, lp + ".project", "no projected fields; the join will only filter"})
		}
	}

	if len(ds.Aggregations) == 0 && ds.HourField == "" {
		issues = append(issues, Issue{SeverityWarning, path, "dataset produces no summaries (no aggregations, no hour_field)"})
	}
	for i, a := range ds.Aggregations {
		ap := fmt.Sprintf("%s.aggregations[%d]", path, i)
		if strings.TrimSpace(a.Field) == "" {
			issues = append(issues, Issue{SeverityError, ap + ".field", "aggregation field must not be empty"})
		}
		if a.TopN < 0 {
			issues = append(issues, Issue{SeverityError, ap + ".top_n", "top_n must not be negative"})
		}
		if a.CollapseTail < 0 {
			issues = append(issues, Issue{SeverityError, ap + ".collapse_tail", "collapse_tail must not be negative"})
		}
	}

	issues = append(issues, validateStorage(path+".storage", ds.Storage)...)
	return issues
}

func validateSource(path string, s Source) []Issue {
	var issues []Issue
	if strings.TrimSpace(s.Kind) == "" {
		return append(issues, Issue{SeverityError, path + ".kind", "source.kind must not be empty"})
	}
	// Unknown kinds are warnings, for forward compatibility.
	if s.Kind != "file" {
		issues = append(issues, Issue{SeverityWarning, path + ".kind",
			fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind)})
	}
	if s.Kind == "file" && strings.TrimSpace(s.File.Path) == "" {
		issues = append(issues, Issue{SeverityError, path + ".file.path", "file source requires a path"})
	}
	return issues
}

func validateParser(path string, p Parser) []Issue {
	var issues []Issue
	if p.Kind != "" && p.Kind != "csv" {
		issues = append(issues, Issue{SeverityWarning, path + ".kind",
			fmt.Sprintf("unknown parser kind %q; ensure a matching implementation exists", p.Kind)})
	}
	if len(p.Comma) > 1 {
		issues = append(issues, Issue{SeverityError, path + ".comma", "comma must be a single character"})
	}
	if !p.HasHeader && p.ExpectedFields <= 0 && len(p.HeaderMap) == 0 {
		issues = append(issues, Issue{SeverityWarning, path,
			"headerless parse without expected_fields; columns will be named col_N by position"})
	}
	return issues
}

func validateRule(path string, r Rule) []Issue {
	var issues []Issue
	switch r.Kind {
	case "keyword", "codes":
	case "":
		issues = append(issues, Issue{SeverityError, path + ".kind", "rule.kind must be \"keyword\" or \"codes\""})
	default:
		issues = append(issues, Issue{SeverityError, path + ".kind",
			fmt.Sprintf("unknown rule kind %q (want \"keyword\" or \"codes\")", r.Kind)})
	}
	if strings.TrimSpace(r.Field) == "" {
		issues = append(issues, Issue{SeverityError, path + ".field", "rule.field must not be empty"})
	}
	if len(r.Values) == 0 {
		issues = append(issues, Issue{SeverityError, path + ".values", "rule.values must not be empty; an empty rule matches nothing"})
	}
	return issues
}

func validateStorage(path string, s Storage) []Issue {
	var issues []Issue
	if s.Kind == "" {
		// Persistence is optional.
		return issues
	}
	switch s.Kind {
	case "sqlite", "postgres", "mysql":
	default:
		issues = append(issues, Issue{SeverityWarning, path + ".kind",
			fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind)})
	}
	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{SeverityError, path + ".db.dsn", "storage requires a DSN"})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{SeverityError, path + ".db.table", "storage requires a table name"})
	}
	return issues
}
