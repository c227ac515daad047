// Package pipeline orchestrates one dataset's analysis run:
//
//	load -> parse -> clean -> classify -> join lookups
//	     -> per-category summaries and hourly frequencies -> persist
//
// Each stage is a pure transformation producing a new record set, so the
// stages compose and test independently. Value-level anomalies (unmatched
// join keys, unparsable hours, missing fields) are absorbed as counts and
// never become errors; only collaborator failures (unreadable source file,
// unreachable sink) surface, and they abort this dataset only.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	"crimeflow/internal/aggregate"
	"crimeflow/internal/classify"
	"crimeflow/internal/config"
	"crimeflow/internal/datasource"
	"crimeflow/internal/datasource/file"
	"crimeflow/internal/join"
	"crimeflow/internal/metrics"
	csvparser "crimeflow/internal/parser/csv"
	"crimeflow/internal/report"
	"crimeflow/internal/storage"
	"crimeflow/internal/transformer"
	"crimeflow/internal/transformer/builtin"
	"crimeflow/pkg/records"
)

// Result summarizes one dataset run for logs and reports.
type Result struct {
	RunID   string
	Dataset string

	Parsed       int // rows parsed from the source
	Skipped      int // malformed rows skipped by the parser
	Deduped      int // duplicate rows removed
	Violent      int // rows classified violent
	JoinDropped  int // rows dropped across the lookup-join chain
	Joined       int // rows surviving all joins
	HoursKept    int // valid hour values after coercion
	HoursDropped int // hour values discarded by coercion
	Exported     int64

	Elapsed time.Duration
}

// Run executes the full pipeline for one dataset, writing report output to
// out. It returns a Result even on error so callers can log partial
// progress.
func Run(ctx context.Context, ds config.Dataset, out io.Writer) (Result, error) {
	res := Result{RunID: uuid.NewString(), Dataset: ds.Name}
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	// Load and parse.
	stageStart := time.Now()
	recs, skipped, err := loadRecords(ctx, ds.Source, ds.Parser)
	metrics.RecordStage(ds.Name, "parse", err, time.Since(stageStart))
	if err != nil {
		return res, fmt.Errorf("dataset %s: %w", ds.Name, err)
	}
	res.Parsed, res.Skipped = len(recs), skipped
	metrics.RecordRecords(ds.Name, "parsed", res.Parsed)
	metrics.RecordRecords(ds.Name, "skipped", res.Skipped)

	// Clean.
	chain := transformer.Chain{builtin.Normalize{}}
	if len(ds.IntFields) > 0 {
		types := make(map[string]string, len(ds.IntFields))
		for _, f := range ds.IntFields {
			types[f] = "int"
		}
		chain = append(chain, builtin.Coerce{Types: types})
	}
	if len(ds.DedupKeys) > 0 {
		chain = append(chain, builtin.DeDup{Keys: ds.DedupKeys})
	}
	before := len(recs)
	recs = chain.Apply(recs)
	res.Deduped = before - len(recs)
	metrics.RecordRecords(ds.Name, "deduped", res.Deduped)

	// Classify.
	rule, err := buildRule(ds.Rule)
	if err != nil {
		return res, fmt.Errorf("dataset %s: %w", ds.Name, err)
	}
	stageStart = time.Now()
	violent := classify.Filter(recs, rule)
	metrics.RecordStage(ds.Name, "filter", nil, time.Since(stageStart))
	res.Violent = len(violent)
	metrics.RecordRecords(ds.Name, "violent", res.Violent)

	if len(violent) == 0 {
		// A quiet dataset is a reportable outcome, not a failure. Emit the
		// explicit diagnostics and stop before aggregation and export.
		for _, agg := range ds.Aggregations {
			report.Empty(out, summaryTitle(ds.Name, agg), "filter matched no records")
		}
		if ds.HourField != "" {
			report.Empty(out, hourTitle(ds.Name), "filter matched no records")
		}
		return res, nil
	}

	// Resolve coded fields against lookup tables.
	working := violent
	if len(ds.Lookups) > 0 {
		stageStart = time.Now()
		steps, err := buildJoinSteps(ctx, ds.Lookups)
		metrics.RecordStage(ds.Name, "lookup_load", err, time.Since(stageStart))
		if err != nil {
			return res, fmt.Errorf("dataset %s: %w", ds.Name, err)
		}
		working, res.JoinDropped = join.Chain(violent, steps...)
		metrics.RecordRecords(ds.Name, "join_dropped", res.JoinDropped)
	}
	res.Joined = len(working)

	// Summaries.
	for _, agg := range ds.Aggregations {
		table := aggregate.Count(working, agg.Field)
		if agg.TopN > 0 {
			table = table.TopN(agg.TopN)
		}
		if agg.CollapseTail > 0 {
			table = table.CollapseTail(agg.CollapseTail)
		}
		report.Summary(out, summaryTitle(ds.Name, agg), table)
	}

	// Hourly frequencies.
	if ds.HourField != "" {
		hours, dropped := builtin.Hours{Field: ds.HourField}.Extract(working)
		res.HoursKept, res.HoursDropped = len(hours), dropped
		metrics.RecordRecords(ds.Name, "hours_dropped", dropped)
		report.Hours(out, hourTitle(ds.Name), hours)
	}

	// Persist the filtered (and joined) set.
	if ds.Storage.Kind != "" {
		stageStart = time.Now()
		exported, err := export(ctx, ds.Storage, working)
		metrics.RecordStage(ds.Name, "export", err, time.Since(stageStart))
		if err != nil {
			return res, fmt.Errorf("dataset %s: export: %w", ds.Name, err)
		}
		res.Exported = exported
		metrics.RecordRecords(ds.Name, "exported", int(exported))
	}

	return res, nil
}

// loadRecords opens the dataset source and parses it into records.
func loadRecords(ctx context.Context, src config.Source, pcfg config.Parser) ([]records.Record, int, error) {
	source, err := buildSource(src)
	if err != nil {
		return nil, 0, err
	}
	rc, err := source.Open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	p, err := buildParser(pcfg)
	if err != nil {
		return nil, 0, err
	}
	return p.Parse(rc)
}

func buildSource(src config.Source) (datasource.Source, error) {
	switch src.Kind {
	case "file":
		return file.NewLocal(src.File.Path), nil
	default:
		return nil, fmt.Errorf("unsupported source kind %q", src.Kind)
	}
}

func buildParser(p config.Parser) (*csvparser.Parser, error) {
	if p.Kind != "" && p.Kind != "csv" {
		return nil, fmt.Errorf("unsupported parser kind %q", p.Kind)
	}
	opt := csvparser.Options{
		HasHeader:      p.HasHeader,
		TrimSpace:      p.TrimSpace,
		ExpectedFields: p.ExpectedFields,
		HeaderMap:      p.HeaderMap,
	}
	if p.Comma != "" {
		opt.Comma = rune(p.Comma[0])
	}
	return csvparser.NewParser(opt), nil
}

func buildRule(r config.Rule) (classify.Rule, error) {
	switch r.Kind {
	case "keyword":
		return classify.Keyword{Field: r.Field, Keywords: r.Values}, nil
	case "codes":
		return classify.NewCodeSet(r.Field, r.Values), nil
	default:
		return nil, fmt.Errorf("unsupported rule kind %q", r.Kind)
	}
}

// buildJoinSteps loads every lookup table and indexes it by its key field.
func buildJoinSteps(ctx context.Context, specs []config.LookupSpec) ([]join.Step, error) {
	steps := make([]join.Step, 0, len(specs))
	for _, spec := range specs {
		pcfg := config.Parser{Kind: "csv", HasHeader: true, TrimSpace: true}
		if spec.Parser != nil {
			pcfg = *spec.Parser
		}
		table, _, err := loadRecords(ctx, config.Source{
			Kind: "file",
			File: config.SourceFile{Path: spec.Path},
		}, pcfg)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", spec.Path, err)
		}
		lookup, err := join.NewLookup(table, spec.Key)
		if err != nil {
			return nil, fmt.Errorf("lookup %s: %w", spec.Path, err)
		}
		baseKey := spec.BaseKey
		if baseKey == "" {
			baseKey = spec.Key
		}
		steps = append(steps, join.Step{Lookup: lookup, BaseKey: baseKey, Project: spec.Project})
	}
	return steps, nil
}

// export persists records through the configured storage backend.
func export(ctx context.Context, cfg config.Storage, recs []records.Record) (int64, error) {
	columns := cfg.DB.Columns
	if len(columns) == 0 {
		columns = deriveColumns(recs)
	}
	repo, err := storage.New(ctx, storage.Config{
		Kind:    cfg.Kind,
		DSN:     cfg.DB.DSN,
		Table:   cfg.DB.Table,
		Columns: columns,
	})
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	rows := make([][]any, len(recs))
	for i, r := range recs {
		rows[i] = records.Row(r, columns)
	}
	return storage.Load(ctx, repo, columns, rows, storage.DefaultBatchSize)
}

// deriveColumns falls back to the first record's fields, sorted, when the
// storage config does not name columns explicitly.
func deriveColumns(recs []records.Record) []string {
	if len(recs) == 0 {
		return nil
	}
	columns := make([]string, 0, len(recs[0]))
	for field := range recs[0] {
		columns = append(columns, field)
	}
	sort.Strings(columns)
	return columns
}

func summaryTitle(dataset string, agg config.Aggregation) string {
	name := agg.Name
	if name == "" {
		name = agg.Field
	}
	return fmt.Sprintf("[%s] violent crime by %s", dataset, name)
}

func hourTitle(dataset string) string {
	return fmt.Sprintf("[%s] violent crime by hour of day", dataset)
}
