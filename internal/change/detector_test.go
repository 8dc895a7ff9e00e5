package change

import (
	"reflect"
	"testing"

	"incremental-engine/internal/units"
)

func snap(filePath, content string) *Snapshot {
	return CreateSnapshot(filePath, content, 1000)
}

func TestGetChangedLinesIsEmptyForIdenticalSnapshots(t *testing.T) {
	s := snap("f.go", "x\ny\nz")
	if got := GetChangedLines(s, s); len(got) != 0 {
		t.Fatalf("GetChangedLines(s, s) = %v, want empty", got)
	}
}

func TestGetChangedLinesSingleLineEdit(t *testing.T) {
	old := snap("f.go", "x\ny\nz")
	new := snap("f.go", "x\nY\nz")
	got := GetChangedLines(old, new)
	if !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("GetChangedLines = %v, want [2]", got)
	}
}

func TestGetChangedLinesInsertion(t *testing.T) {
	old := snap("f.go", "a\nb\nc")
	new := snap("f.go", "a\nNEW\nb\nc")
	got := GetChangedLines(old, new)
	if !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("GetChangedLines = %v, want [2]", got)
	}
}

func TestGetChangedLinesLocalizesSingleReplacedLine(t *testing.T) {
	old := snap("f.go", "one\ntwo\nthree\nfour\nfive")
	new := snap("f.go", "one\ntwo\nCHANGED\nfour\nfive")
	got := GetChangedLines(old, new)
	if !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("GetChangedLines = %v, want [3]", got)
	}
}

func TestDetectChangesClassifiesAddedRemovedModified(t *testing.T) {
	old := snap("f.go", "a\nb\nc")
	new := snap("f.go", "a\nb\nc")

	unchanged := units.NewUnit("f.go", 1, 1, units.Line, "", "hash0000")
	removed := units.NewUnit("f.go", 2, 2, units.Line, "", "hash1111")
	modifiedOld := units.NewUnit("f.go", 3, 3, units.Line, "", "hashold00")
	modifiedNew := &units.CompilationUnit{
		ID: modifiedOld.ID, FilePath: "f.go", StartLine: 3, EndLine: 3,
		Type: units.Line, ContentHash: "hashnew00",
	}
	added := units.NewUnit("f.go", 4, 4, units.Line, "", "hash2222")

	old = old.WithUnits([]*units.CompilationUnit{unchanged, removed, modifiedOld})
	new = new.WithUnits([]*units.CompilationUnit{unchanged, modifiedNew, added})

	records := DetectChanges(old, new)

	byID := make(map[string]ChangeRecord, len(records))
	for _, r := range records {
		byID[r.UnitID] = r
	}

	if len(records) != 3 {
		t.Fatalf("DetectChanges returned %d records, want 3: %+v", len(records), records)
	}
	if r, ok := byID[removed.ID]; !ok || r.ChangeType != units.Deleted {
		t.Fatalf("expected %s classified Deleted, got %+v (ok=%v)", removed.ID, r, ok)
	}
	if r, ok := byID[added.ID]; !ok || r.ChangeType != units.Added {
		t.Fatalf("expected %s classified Added, got %+v (ok=%v)", added.ID, r, ok)
	}
	if r, ok := byID[modifiedOld.ID]; !ok || r.ChangeType != units.Modified {
		t.Fatalf("expected %s classified Modified, got %+v (ok=%v)", modifiedOld.ID, r, ok)
	}
	if _, present := byID[unchanged.ID]; present {
		t.Fatalf("unchanged unit %s should not produce a record", unchanged.ID)
	}
}
