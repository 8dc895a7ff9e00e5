package units

import (
	"reflect"
	"sort"
	"testing"
)

func mkUnit(file string, start, end int, typ UnitType, name, hash string) *CompilationUnit {
	return NewUnit(file, start, end, typ, name, hash)
}

func TestAddDependencyIsSymmetricAndIdempotent(t *testing.T) {
	m := New()
	a := mkUnit("f.go", 1, 5, Function, "a", "hasha000")
	b := mkUnit("f.go", 6, 10, Function, "b", "hashb000")
	m.AddUnit(a)
	m.AddUnit(b)

	m.AddDependency(a.ID, b.ID)
	m.AddDependency(a.ID, b.ID) // idempotent

	av := m.GetUnit(a.ID)
	bv := m.GetUnit(b.ID)
	if len(av.Dependencies) != 1 || av.Dependencies[0] != b.ID {
		t.Fatalf("a.Dependencies = %v, want [%s]", av.Dependencies, b.ID)
	}
	if len(bv.Dependents) != 1 || bv.Dependents[0] != a.ID {
		t.Fatalf("b.Dependents = %v, want [%s]", bv.Dependents, a.ID)
	}
}

func TestRemoveUnitScrubsBothEdgeDirections(t *testing.T) {
	m := New()
	a := mkUnit("f.go", 1, 5, Function, "a", "hasha000")
	b := mkUnit("f.go", 6, 10, Function, "b", "hashb000")
	c := mkUnit("f.go", 11, 15, Function, "c", "hashc000")
	m.AddUnit(a)
	m.AddUnit(b)
	m.AddUnit(c)
	m.AddDependency(a.ID, b.ID) // a -> b
	m.AddDependency(c.ID, a.ID) // c -> a

	m.RemoveUnit(a.ID)

	bv := m.GetUnit(b.ID)
	if len(bv.Dependents) != 0 {
		t.Fatalf("b.Dependents after removing a = %v, want empty", bv.Dependents)
	}
	cv := m.GetUnit(c.ID)
	if len(cv.Dependencies) != 0 {
		t.Fatalf("c.Dependencies after removing a = %v, want empty", cv.Dependencies)
	}
	if m.GetUnit(a.ID) != nil {
		t.Fatalf("expected a removed")
	}
}

func TestGetAffectedUnitsIsReverseReachableClosureExcludingSeed(t *testing.T) {
	m := New()
	u1 := mkUnit("f.go", 1, 2, Statement, "", "h1000000")
	u2 := mkUnit("f.go", 3, 4, Statement, "", "h2000000")
	u3 := mkUnit("f.go", 5, 6, Statement, "", "h3000000")
	m.AddUnit(u1)
	m.AddUnit(u2)
	m.AddUnit(u3)
	// u3 depends on u2, u2 depends on u1 (u1 -> u2 -> u3 chain via dependents)
	m.AddDependency(u3.ID, u2.ID)
	m.AddDependency(u2.ID, u1.ID)

	affected := m.GetAffectedUnits(u1.ID)
	sort.Strings(affected)
	want := []string{u2.ID, u3.ID}
	sort.Strings(want)
	if !reflect.DeepEqual(affected, want) {
		t.Fatalf("GetAffectedUnits(u1) = %v, want %v", affected, want)
	}
}

func TestGetAffectedUnitsTerminatesOnCycle(t *testing.T) {
	m := New()
	u1 := mkUnit("f.go", 1, 2, Statement, "", "h1000000")
	u2 := mkUnit("f.go", 3, 4, Statement, "", "h2000000")
	m.AddUnit(u1)
	m.AddUnit(u2)
	m.AddDependency(u2.ID, u1.ID) // u1 -> u2
	m.AddDependency(u1.ID, u2.ID) // u2 -> u1 (cycle)

	affected := m.GetAffectedUnits(u1.ID)
	if len(affected) != 1 || affected[0] != u2.ID {
		t.Fatalf("GetAffectedUnits on cycle = %v, want [%s]", affected, u2.ID)
	}
}

func TestUnitsForFileSortedByStartLine(t *testing.T) {
	m := New()
	u2 := mkUnit("f.go", 10, 20, Block, "", "h2000000")
	u1 := mkUnit("f.go", 1, 5, Block, "", "h1000000")
	m.AddUnit(u2)
	m.AddUnit(u1)

	got := m.UnitsForFile("f.go")
	if len(got) != 2 || got[0].ID != u1.ID || got[1].ID != u2.ID {
		t.Fatalf("UnitsForFile not sorted by start line: %v", got)
	}
}

func TestRegisterFileDropsPriorUnits(t *testing.T) {
	m := New()
	old := mkUnit("f.go", 1, 5, Block, "", "h1000000")
	m.AddUnit(old)

	fresh := mkUnit("f.go", 1, 3, Block, "", "h2000000")
	m.RegisterFile("f.go", []*CompilationUnit{fresh})

	if m.GetUnit(old.ID) != nil {
		t.Fatalf("expected old unit dropped by RegisterFile")
	}
	if m.GetUnit(fresh.ID) == nil {
		t.Fatalf("expected fresh unit present")
	}
	if len(m.UnitsForFile("f.go")) != 1 {
		t.Fatalf("expected exactly one unit for file after RegisterFile")
	}
}

func TestGetUnitsInRangeOverlap(t *testing.T) {
	m := New()
	inRange := mkUnit("f.go", 5, 10, Block, "", "h1000000")
	outOfRange := mkUnit("f.go", 20, 30, Block, "", "h2000000")
	m.AddUnit(inRange)
	m.AddUnit(outOfRange)

	got := m.GetUnitsInRange("f.go", 8, 15)
	if len(got) != 1 || got[0].ID != inRange.ID {
		t.Fatalf("GetUnitsInRange = %v, want just %s", got, inRange.ID)
	}
}
