package config

import (
	"strings"
	"testing"
)

const sampleJSON = `{
  "job": "crime-reports",
  "datasets": [{
    "name": "chicago",
    "source": { "kind": "file", "file": { "path": "data/chicago.csv" } },
    "parser": { "kind": "csv", "has_header": true, "trim_space": true },
    "rule": { "kind": "keyword", "field": "primary_type",
              "values": ["HOMICIDE", "ASSAULT", "BATTERY"] },
    "hour_field": "hour",
    "aggregations": [
      { "name": "offense", "field": "primary_type", "top_n": 10 },
      { "name": "location", "field": "location_description", "collapse_tail": 6 }
    ],
    "storage": { "kind": "sqlite", "db": { "dsn": "crime.db", "table": "violent" } }
  }]
}`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if f.Job != "crime-reports" {
		t.Fatalf("job = %q", f.Job)
	}
	if len(f.Datasets) != 1 {
		t.Fatalf("datasets = %d", len(f.Datasets))
	}
	ds := f.Datasets[0]
	if ds.Rule.Kind != "keyword" || ds.Rule.Field != "primary_type" || len(ds.Rule.Values) != 3 {
		t.Fatalf("rule = %+v", ds.Rule)
	}
	if len(ds.Aggregations) != 2 || ds.Aggregations[0].TopN != 10 || ds.Aggregations[1].CollapseTail != 6 {
		t.Fatalf("aggregations = %+v", ds.Aggregations)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"job":"x","bogus":1}`)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidateOK(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	for _, iss := range Validate(f) {
		if iss.Severity == SeverityError {
			t.Fatalf("unexpected error issue: %v", iss)
		}
	}
}

func TestValidateFlagsProblems(t *testing.T) {
	f := File{
		Datasets: []Dataset{{
			Source: Source{Kind: "file"},
			Rule:   Rule{Kind: "regex", Field: ""},
			Aggregations: []Aggregation{
				{Name: "x", Field: "", TopN: -1},
			},
			Storage: Storage{Kind: "oracle", DB: DBConfig{}},
		}},
	}
	issues := Validate(f)

	wantPaths := []string{
		"job",
		"datasets[0].name",
		"datasets[0].source.file.path",
		"datasets[0].rule.kind",
		"datasets[0].rule.field",
		"datasets[0].rule.values",
		"datasets[0].aggregations[0].field",
		"datasets[0].aggregations[0].top_n",
		"datasets[0].storage.db.dsn",
		"datasets[0].storage.db.table",
	}
	got := make(map[string]bool, len(issues))
	for _, iss := range issues {
		got[iss.Path] = true
	}
	for _, p := range wantPaths {
		if !got[p] {
			t.Errorf("missing issue for %s; got %v", p, issues)
		}
	}
}

func TestValidateEmptyStorageIsOptional(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	f.Datasets[0].Storage = Storage{}
	for _, iss := range Validate(f) {
		if strings.HasPrefix(iss.Path, "datasets[0].storage") {
			t.Fatalf("empty storage should not be flagged: %v", iss)
		}
	}
}

func TestIssueError(t *testing.T) {
	iss := Issue{Severity: SeverityError, Path: "a.b", Message: "bad"}
	if iss.Error() != "error at a.b: bad" {
		t.Fatalf("Error() = %q", iss.Error())
	}
}
