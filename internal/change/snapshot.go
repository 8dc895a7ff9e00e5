// Package change implements the engine's change-detection layer: immutable
// per-file snapshots, the LCS line differ that compares two snapshots, and
// the unit-level change records the incremental engine consumes to decide
// what needs recompiling.
package change

import (
	"incremental-engine/internal/hashutil"
	"incremental-engine/internal/units"
)

// Snapshot is an immutable record of one file's content at a point in time:
// its whole-file content hash, its per-line whitespace-insensitive hashes,
// and a copy of every unit registered under the file when the snapshot was
// taken. Snapshots hold copies, never live *units.CompilationUnit pointers,
// so a later mutation of the unit graph cannot reach back into history.
type Snapshot struct {
	FilePath    string
	ContentHash string
	LineHashes  []string
	Units       map[string]*units.CompilationUnit
	Timestamp   int64
}

// CreateSnapshot hashes content and splits it into per-line hashes. The
// Units map starts empty; the engine fills it in from the current
// UnitManager state once it knows which units belong to the snapshot.
func CreateSnapshot(filePath, content string, now int64) *Snapshot {
	return &Snapshot{
		FilePath:    filePath,
		ContentHash: hashutil.ContentHashString(content),
		LineHashes:  hashutil.LineHashes(content),
		Units:       make(map[string]*units.CompilationUnit),
		Timestamp:   now,
	}
}

// WithUnits returns a shallow copy of s with Units replaced by clones of
// the given units, keyed by id.
func (s *Snapshot) WithUnits(unitList []*units.CompilationUnit) *Snapshot {
	out := *s
	out.Units = make(map[string]*units.CompilationUnit, len(unitList))
	for _, u := range unitList {
		out.Units[u.ID] = u.Clone()
	}
	return &out
}
