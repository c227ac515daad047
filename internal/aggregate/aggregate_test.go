package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crimeflow/pkg/records"
)

func byOffense(values ...any) []records.Record {
	out := make([]records.Record, len(values))
	for i, v := range values {
		out[i] = records.Record{"offense": v}
	}
	return out
}

func TestCountScenario(t *testing.T) {
	in := byOffense("Assault", "Battery", "Homicide", "Assault")
	got := Count(in, "offense")
	assert.Equal(t, SummaryTable{
		{Label: "Assault", Count: 2},
		{Label: "Battery", Count: 1},
		{Label: "Homicide", Count: 1},
	}, got)
}

func TestCountConservation(t *testing.T) {
	in := byOffense("a", "b", "a", "c", "a", "b", nil)
	got := Count(in, "offense")
	assert.Equal(t, len(in), got.Total())
}

func TestCountStableTies(t *testing.T) {
	// B and A tie at 5; B was encountered first and must stay first.
	var in []records.Record
	for i := 0; i < 5; i++ {
		in = append(in, records.Record{"offense": "B"})
	}
	for i := 0; i < 5; i++ {
		in = append(in, records.Record{"offense": "A"})
	}
	for i := 0; i < 3; i++ {
		in = append(in, records.Record{"offense": "C"})
	}
	got := Count(in, "offense")
	assert.Equal(t, SummaryTable{{"B", 5}, {"A", 5}, {"C", 3}}, got)
}

func TestCountMissingIsOwnCategory(t *testing.T) {
	in := byOffense("Theft", nil, "Theft", nil, nil)
	got := Count(in, "offense")
	assert.Equal(t, SummaryTable{{"", 3}, {"Theft", 2}}, got)
}

func TestCountCaseSensitiveLabels(t *testing.T) {
	in := byOffense("Theft", "THEFT", "Theft")
	got := Count(in, "offense")
	require.Len(t, got, 2)
	assert.Equal(t, Row{"Theft", 2}, got[0])
	assert.Equal(t, Row{"THEFT", 1}, got[1])
}

func TestCountEmptyInput(t *testing.T) {
	got := Count(nil, "offense")
	assert.Empty(t, got)
	assert.Zero(t, got.Total())
}

func TestTopN(t *testing.T) {
	tbl := SummaryTable{{"X", 10}, {"Y", 8}, {"Z", 3}}

	// N larger than the table returns it unchanged.
	assert.Equal(t, tbl, tbl.TopN(10))
	assert.Equal(t, SummaryTable{{"X", 10}, {"Y", 8}}, tbl.TopN(2))
	assert.Empty(t, tbl.TopN(0))
}

func TestCollapseTail(t *testing.T) {
	tbl := SummaryTable{{"X", 10}, {"Y", 8}, {"Z", 3}, {"W", 1}}

	got := tbl.CollapseTail(2)
	assert.Equal(t, SummaryTable{{"X", 10}, {"Y", 8}, {OtherLabel, 4}}, got)
	assert.Equal(t, tbl.Total(), got.Total())

	// K >= len returns unchanged, no synthetic row.
	assert.Equal(t, tbl, tbl.CollapseTail(4))
	assert.Equal(t, tbl, tbl.CollapseTail(9))

	// K == 0 folds everything into Other.
	assert.Equal(t, SummaryTable{{OtherLabel, 22}}, tbl.CollapseTail(0))
}
