package records

import "testing"

func TestString(t *testing.T) {
	r := Record{"desc": "Assault", "hour": 14, "beat": nil}

	if s, ok := String(r, "desc"); !ok || s != "Assault" {
		t.Fatalf("desc = %q, %v", s, ok)
	}
	if s, ok := String(r, "hour"); !ok || s != "14" {
		t.Fatalf("hour = %q, %v", s, ok)
	}
	// Explicit nil and absent field both read as missing.
	if _, ok := String(r, "beat"); ok {
		t.Fatalf("nil value should not be present")
	}
	if _, ok := String(r, "nope"); ok {
		t.Fatalf("absent field should not be present")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	r := Record{"a": "1"}
	c := r.Clone()
	c["a"] = "2"
	c["b"] = "3"
	if r["a"] != "1" {
		t.Fatalf("clone mutated original: %#v", r)
	}
	if _, ok := r["b"]; ok {
		t.Fatalf("clone added field to original: %#v", r)
	}
}

func TestRowOrdersByColumns(t *testing.T) {
	r := Record{"a": "x", "b": 2}
	row := Row(r, []string{"b", "a", "missing"})
	if len(row) != 3 || row[0] != 2 || row[1] != "x" || row[2] != nil {
		t.Fatalf("row = %#v", row)
	}
}
