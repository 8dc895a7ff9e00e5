package change

import "incremental-engine/internal/units"

// ChangeRecord reports one unit's transition between two update_source
// calls: its new lifecycle state, its line range before and after (zero
// when not applicable, e.g. a just-added unit has no "old" range), and a
// short human-readable reason.
type ChangeRecord struct {
	UnitID       string
	ChangeType   units.UnitState
	OldStartLine int
	OldEndLine   int
	NewStartLine int
	NewEndLine   int
	Reason       string
}

// GetChangedLines returns every 1-based line number on the new side that
// is not part of the LCS match between old and new's line hashes.
// Deletions on the old side never appear here; they surface at the unit
// level once the caller maps line numbers to CompilationUnits.
func GetChangedLines(old, new *Snapshot) []int {
	pairs := ComputeLCS(old.LineHashes, new.LineHashes)
	matchedNew := make(map[int]bool, len(pairs))
	for _, p := range pairs {
		matchedNew[p.NewIndex] = true
	}

	var changed []int
	for idx := range new.LineHashes {
		if !matchedNew[idx] {
			changed = append(changed, idx+1)
		}
	}
	return changed
}

// DetectChanges compares the Units maps of two snapshots of the same file
// and emits one ChangeRecord per unit whose presence or content differs:
//
//   - present only in old -> Deleted (old line range retained, new range zero)
//   - present only in new -> Added (new line range retained, old range zero)
//   - present in both with a different ContentHash -> Modified
//   - present in both with the same ContentHash -> no record
func DetectChanges(old, new *Snapshot) []ChangeRecord {
	var records []ChangeRecord

	for id, oldUnit := range old.Units {
		if _, ok := new.Units[id]; !ok {
			records = append(records, ChangeRecord{
				UnitID:       id,
				ChangeType:   units.Deleted,
				OldStartLine: oldUnit.StartLine,
				OldEndLine:   oldUnit.EndLine,
				Reason:       "unit removed from file",
			})
		}
	}

	for id, newUnit := range new.Units {
		oldUnit, ok := old.Units[id]
		if !ok {
			records = append(records, ChangeRecord{
				UnitID:       id,
				ChangeType:   units.Added,
				NewStartLine: newUnit.StartLine,
				NewEndLine:   newUnit.EndLine,
				Reason:       "unit added to file",
			})
			continue
		}
		if oldUnit.ContentHash != newUnit.ContentHash {
			records = append(records, ChangeRecord{
				UnitID:       id,
				ChangeType:   units.Modified,
				OldStartLine: oldUnit.StartLine,
				OldEndLine:   oldUnit.EndLine,
				NewStartLine: newUnit.StartLine,
				NewEndLine:   newUnit.EndLine,
				Reason:       "content hash changed",
			})
		}
	}

	return records
}
