package units

import (
	"sort"
	"testing"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	m := New()
	a := mkUnit("f.go", 1, 5, Function, "a", "hasha000")
	b := mkUnit("f.go", 6, 10, Function, "b", "hashb000")
	c := mkUnit("g.go", 1, 3, Block, "", "hashc000")
	m.AddUnit(a)
	m.AddUnit(b)
	m.AddUnit(c)
	m.AddDependency(a.ID, b.ID)
	m.AddDependency(c.ID, a.ID)

	data := m.Serialize()

	m2 := New()
	if err := m2.Deserialize(data); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}

	for _, id := range []string{a.ID, b.ID, c.ID} {
		orig := m.GetUnit(id)
		got := m2.GetUnit(id)
		if got == nil {
			t.Fatalf("unit %s missing after round-trip", id)
		}
		if got.FilePath != orig.FilePath || got.StartLine != orig.StartLine ||
			got.EndLine != orig.EndLine || got.Type != orig.Type ||
			got.Name != orig.Name || got.ContentHash != orig.ContentHash {
			t.Fatalf("unit %s round-tripped with different fields: got %+v, want %+v", id, got, orig)
		}

		origDeps := append([]string(nil), orig.Dependencies...)
		gotDeps := append([]string(nil), got.Dependencies...)
		sort.Strings(origDeps)
		sort.Strings(gotDeps)
		if len(origDeps) != len(gotDeps) {
			t.Fatalf("unit %s Dependencies = %v, want %v", id, gotDeps, origDeps)
		}
		for i := range origDeps {
			if origDeps[i] != gotDeps[i] {
				t.Fatalf("unit %s Dependencies = %v, want %v", id, gotDeps, origDeps)
			}
		}

		origDependents := append([]string(nil), orig.Dependents...)
		gotDependents := append([]string(nil), got.Dependents...)
		sort.Strings(origDependents)
		sort.Strings(gotDependents)
		if len(origDependents) != len(gotDependents) {
			t.Fatalf("unit %s Dependents = %v, want %v", id, gotDependents, origDependents)
		}
		for i := range origDependents {
			if origDependents[i] != gotDependents[i] {
				t.Fatalf("unit %s Dependents = %v, want %v", id, gotDependents, origDependents)
			}
		}
	}
}

func TestDeserializeEmptyProducesEmptyManager(t *testing.T) {
	m := New()
	a := mkUnit("f.go", 1, 5, Function, "a", "hasha000")
	m.AddUnit(a)

	if err := m.Deserialize("0\n"); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if m.GetUnit(a.ID) != nil {
		t.Fatalf("expected manager cleared by deserializing an empty record set")
	}
	if len(m.AllFiles()) != 0 {
		t.Fatalf("expected no files after deserializing an empty record set")
	}
}

func TestSerializeIsDeterministicAcrossCalls(t *testing.T) {
	m := New()
	m.AddUnit(mkUnit("b.go", 1, 2, Block, "", "hashb000"))
	m.AddUnit(mkUnit("a.go", 1, 2, Block, "", "hasha000"))

	if m.Serialize() != m.Serialize() {
		t.Fatalf("expected Serialize to be deterministic across repeated calls")
	}
}

func TestDeserializeRejectsMalformedRecordCount(t *testing.T) {
	m := New()
	if err := m.Deserialize("not-a-number\n"); err == nil {
		t.Fatalf("expected error for malformed record count")
	}
}

func TestDeserializeRejectsTruncatedInput(t *testing.T) {
	m := New()
	if err := m.Deserialize("2\nonly-one-record-follows\n"); err == nil {
		t.Fatalf("expected error for truncated input")
	}
}
