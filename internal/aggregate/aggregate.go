// Package aggregate turns a record set into ordered per-category summary
// tables for reporting: group by a categorical field, count, rank by count
// descending. Ties keep first-encounter order, so re-running a pipeline over
// the same input yields identical tables.
package aggregate

import "crimeflow/pkg/records"

// OtherLabel is the synthetic category produced by CollapseTail.
const OtherLabel = "Other"

// Row is one (category, count) pair of a summary table.
type Row struct {
	Label string
	Count int
}

// SummaryTable is an ordered list of category counts, largest first.
type SummaryTable []Row

// Count groups in by the named field and returns a SummaryTable sorted by
// count descending with stable ties (encounter order). Category labels are
// case-sensitive; a missing value groups under the empty label. The sum of
// all counts always equals len(in).
func Count(in []records.Record, field string) SummaryTable {
	counts := make(map[string]int, 16)
	order := make([]string, 0, 16)
	for _, r := range in {
		label, _ := records.String(r, field) // missing -> "" forms its own category
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
	}

	out := make(SummaryTable, 0, len(order))
	for _, label := range order {
		out = append(out, Row{Label: label, Count: counts[label]})
	}
	out.sortStable()
	return out
}

// sortStable orders rows by count descending, preserving the relative order
// of equal counts. Insertion sort keeps the stability guarantee explicit and
// is plenty for category-cardinality tables.
func (t SummaryTable) sortStable() {
	for i := 1; i < len(t); i++ {
		for j := i; j > 0 && t[j].Count > t[j-1].Count; j-- {
			t[j], t[j-1] = t[j-1], t[j]
		}
	}
}

// Total returns the sum of all counts.
func (t SummaryTable) Total() int {
	sum := 0
	for _, r := range t {
		sum += r.Count
	}
	return sum
}

// TopN returns the first n rows, or the whole table when it has n rows or
// fewer. n <= 0 returns an empty table.
func (t SummaryTable) TopN(n int) SummaryTable {
	if n <= 0 {
		return SummaryTable{}
	}
	if len(t) <= n {
		return t
	}
	return t[:n]
}

// CollapseTail keeps the first k rows and folds every remaining row into a
// single synthetic "Other" row carrying their summed count, conserving the
// table total. Tables with k or fewer rows are returned unchanged, with no
// synthetic row.
func (t SummaryTable) CollapseTail(k int) SummaryTable {
	if k < 0 {
		k = 0
	}
	if len(t) <= k {
		return t
	}
	out := make(SummaryTable, 0, k+1)
	out = append(out, t[:k]...)
	rest := 0
	for _, r := range t[k:] {
		rest += r.Count
	}
	return append(out, Row{Label: OtherLabel, Count: rest})
}
