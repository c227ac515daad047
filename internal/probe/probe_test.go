package probe

import (
	"strings"
	"testing"
)

func TestSampleInfersTypes(t *testing.T) {
	input := "ID,Primary Type,Arrest,Latitude\n" +
		"101,BATTERY,true,41.88\n" +
		"102,THEFT,false,41.90\n" +
		"103,ASSAULT,true,41.77\n"

	cols, err := Sample(strings.NewReader(input), 0, ',')
	if err != nil {
		t.Fatalf("Sample error: %v", err)
	}
	if len(cols) != 4 {
		t.Fatalf("cols = %d, want 4", len(cols))
	}
	want := []struct{ slug, typ string }{
		{"id", "integer"},
		{"primary_type", "text"},
		{"arrest", "boolean"},
		{"latitude", "real"},
	}
	for i, w := range want {
		if cols[i].Slug != w.slug || cols[i].Type != w.typ {
			t.Fatalf("col %d = %+v, want %+v", i, cols[i], w)
		}
	}
}

func TestSampleSkipsMisalignedRows(t *testing.T) {
	input := "a,b\n1,2\nonly_one_field\n3,4\n"
	cols, err := Sample(strings.NewReader(input), 0, ',')
	if err != nil {
		t.Fatalf("Sample error: %v", err)
	}
	// Both sampled columns still infer integer despite the bad row.
	if cols[0].Type != "integer" || cols[1].Type != "integer" {
		t.Fatalf("cols = %+v", cols)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Primary Type":        "primary_type",
		"Krátký Text":         "kratky_text",
		"  Location  (Desc) ": "location_desc",
		"IUCR":                "iucr",
		"X Coordinate":        "x_coordinate",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
