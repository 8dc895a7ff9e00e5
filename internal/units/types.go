// Package units holds the compilation-unit graph: the value types
// (CompilationUnit, UnitType, UnitState) and UnitManager, the component
// that exclusively owns every unit and its forward/reverse dependency
// edges.
package units

import (
	"fmt"

	"incremental-engine/internal/hashutil"
)

// UnitType tags the kind of source fragment a CompilationUnit represents.
type UnitType int

const (
	Line UnitType = iota
	Statement
	Function
	Class
	Module
	Import
	Decorator
	Block
)

func (t UnitType) String() string {
	switch t {
	case Line:
		return "Line"
	case Statement:
		return "Statement"
	case Function:
		return "Function"
	case Class:
		return "Class"
	case Module:
		return "Module"
	case Import:
		return "Import"
	case Decorator:
		return "Decorator"
	case Block:
		return "Block"
	default:
		return fmt.Sprintf("UnitType(%d)", int(t))
	}
}

// IsStructural reports whether units of this type are treated as
// indivisible recompilation boundaries by the engine's boundary expansion.
func (t UnitType) IsStructural() bool {
	return t == Function || t == Class
}

// UnitState is the lifecycle state of a unit between two update_source
// calls.
type UnitState int

const (
	Unknown UnitState = iota
	Unchanged
	Modified
	Added
	Deleted
	Affected
)

func (s UnitState) String() string {
	switch s {
	case Unknown:
		return "Unknown"
	case Unchanged:
		return "Unchanged"
	case Modified:
		return "Modified"
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	case Affected:
		return "Affected"
	default:
		return fmt.Sprintf("UnitState(%d)", int(s))
	}
}

// CompilationUnit is the engine's atomic recompile granularity: a
// contiguous, addressable fragment of a source file.
//
// UnitManager exclusively owns instances of this type; everyone else reads
// copies (Clone) or looks values up through UnitManager's accessors.
type CompilationUnit struct {
	ID        string
	FilePath  string
	StartLine int
	EndLine   int
	Type      UnitType
	Name      string

	ContentHash string

	// Dependencies are forward edges (units this one depends on).
	// Dependents are reverse edges (units that depend on this one).
	// Invariant: x in y.Dependencies iff y in x.Dependents.
	Dependencies []string
	Dependents   []string

	State UnitState

	CachedOutput   string
	CacheTimestamp int64
	CacheValid     bool
}

// NewID derives a CompilationUnit's id: "file:start:end:first8ofhash".
func NewID(filePath string, startLine, endLine int, contentHash string) string {
	return fmt.Sprintf("%s:%d:%d:%s", filePath, startLine, endLine, hashutil.ShortHash(contentHash, 8))
}

// NewUnit builds a unit with its id derived from the other fields, matching
// NewID. Dependencies/Dependents start empty; the caller wires edges
// through UnitManager.AddDependency after adding the unit.
func NewUnit(filePath string, startLine, endLine int, typ UnitType, name string, contentHash string) *CompilationUnit {
	return &CompilationUnit{
		ID:          NewID(filePath, startLine, endLine, contentHash),
		FilePath:    filePath,
		StartLine:   startLine,
		EndLine:     endLine,
		Type:        typ,
		Name:        name,
		ContentHash: contentHash,
		State:       Unknown,
	}
}

// Clone returns a deep copy, used whenever a unit crosses an ownership
// boundary (e.g. into a Snapshot), so mutating the copy never reaches back
// into UnitManager's storage.
func (u *CompilationUnit) Clone() *CompilationUnit {
	if u == nil {
		return nil
	}
	c := *u
	c.Dependencies = append([]string(nil), u.Dependencies...)
	c.Dependents = append([]string(nil), u.Dependents...)
	return &c
}

// ContainsRange reports whether u's line range contains [start, end],
// i.e. u.StartLine <= start && u.EndLine >= end. An identical range counts
// as contained; the engine's boundary expansion additionally rejects
// same-range candidates so that only strictly larger containers count.
func (u *CompilationUnit) ContainsRange(start, end int) bool {
	return u.StartLine <= start && u.EndLine >= end
}

// OverlapsRange reports whether u's line range overlaps [start, end].
func (u *CompilationUnit) OverlapsRange(start, end int) bool {
	return u.StartLine <= end && u.EndLine >= start
}
