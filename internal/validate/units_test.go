package validate

import (
	"testing"

	"incremental-engine/internal/units"
)

func TestUnitsAcceptsWellFormedBatch(t *testing.T) {
	batch := []*units.CompilationUnit{
		units.NewUnit("f.go", 1, 5, units.Function, "f", "abcdef01"),
	}
	if err := Units(batch); err != nil {
		t.Fatalf("Units: unexpected error: %v", err)
	}
}

func TestUnitsRejectsBadLineRange(t *testing.T) {
	u := units.NewUnit("f.go", 5, 5, units.Line, "", "abcdef01")
	u.EndLine = 2
	if err := Units([]*units.CompilationUnit{u}); err == nil {
		t.Fatalf("expected error for end_line < start_line")
	}
}

func TestUnitsRejectsDuplicateIDs(t *testing.T) {
	a := units.NewUnit("f.go", 1, 1, units.Line, "", "abcdef01")
	b := a.Clone()
	if err := Units([]*units.CompilationUnit{a, b}); err == nil {
		t.Fatalf("expected error for duplicate id")
	}
}

func TestUnitsRejectsNonHexContentHash(t *testing.T) {
	u := units.NewUnit("f.go", 1, 1, units.Line, "", "abcdef01")
	u.ContentHash = "NOT-HEX!"
	if err := Units([]*units.CompilationUnit{u}); err == nil {
		t.Fatalf("expected error for non-hex content hash")
	}
}

func TestDependencyIDsRejectsSelfReference(t *testing.T) {
	if err := DependencyIDs("u1", []string{"u2", "u1"}); err == nil {
		t.Fatalf("expected error for self-referential dependency")
	}
}

func TestDependencyIDsAcceptsCleanList(t *testing.T) {
	if err := DependencyIDs("u1", []string{"u2", "u3"}); err != nil {
		t.Fatalf("DependencyIDs: unexpected error: %v", err)
	}
}
