package transformer

import (
	"testing"

	"crimeflow/internal/transformer/builtin"
	"crimeflow/pkg/records"
)

func TestChainAppliesInOrder(t *testing.T) {
	in := []records.Record{
		{"case": " HZ1 ", "hour": " 14"},
		{"case": "HZ1", "hour": "2"}, // duplicate after Normalize trims
		{"case": "HZ2", "hour": "3"},
	}
	c := Chain{
		builtin.Normalize{},
		builtin.DeDup{Keys: []string{"case"}},
		builtin.Coerce{Types: map[string]string{"hour": "int"}},
	}
	out := c.Apply(in)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2: %#v", len(out), out)
	}
	if v, ok := out[0]["hour"].(int); !ok || v != 14 {
		t.Fatalf("hour = %#v", out[0]["hour"])
	}
}

func TestEmptyChainIsIdentity(t *testing.T) {
	in := []records.Record{{"a": "1"}}
	out := Chain{}.Apply(in)
	if len(out) != 1 || out[0]["a"] != "1" {
		t.Fatalf("out = %#v", out)
	}
}
