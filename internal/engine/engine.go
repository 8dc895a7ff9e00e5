// Package engine implements the IncrementalEngine: the orchestrator that
// ties together the unit graph, change detection, and the per-unit
// compilation cache into the caller-facing update_source /
// get_units_to_compile / mark_compiled / get_combined_output contract.
package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"incremental-engine/internal/change"
	"incremental-engine/internal/compcache"
	"incremental-engine/internal/hashutil"
	"incremental-engine/internal/units"
	"incremental-engine/internal/validate"
)

// Engine exclusively owns a UnitManager, a CompilationCache, and the
// file -> latest Snapshot map. It is safe for concurrent use: every public
// method holds mu for its full duration.
type Engine struct {
	mu sync.Mutex

	units     *units.Manager
	cache     *compcache.Cache
	snapshots map[string]*change.Snapshot
	pending   map[string]bool // ids in units_to_compile

	// now is the injectable wall clock; defaults to real time but tests
	// substitute a fixed value for determinism.
	now func() int64
}

// New creates an Engine whose compilation cache persists under cacheDir.
func New(cacheDir string) *Engine {
	return &Engine{
		units:     units.New(),
		cache:     compcache.New(cacheDir),
		snapshots: make(map[string]*change.Snapshot),
		pending:   make(map[string]bool),
		now:       func() int64 { return time.Now().UnixMilli() },
	}
}

// Units exposes the underlying UnitManager for callers that need direct
// access (e.g. to assert dependency edges after RegisterUnits).
func (e *Engine) Units() *units.Manager {
	return e.units
}

// Cache exposes the underlying CompilationCache, e.g. so a caller can
// call Save/Load around process lifetime boundaries.
func (e *Engine) Cache() *compcache.Cache {
	return e.cache
}

// RegisterUnits drops every unit currently indexed under file and adds
// each of newUnits in order. Dependency edges are not inferred; the
// caller must re-assert them through Units().AddDependency afterward.
func (e *Engine) RegisterUnits(file string, newUnits []*units.CompilationUnit) error {
	if err := validate.Units(newUnits); err != nil {
		return fmt.Errorf("engine: RegisterUnits(%s): %w", file, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.units.RegisterFile(file, newUnits)
	return nil
}

// UpdateSource builds a snapshot of new_content, diffs it against the
// file's previous snapshot (or treats every unit as newly added if there
// is none), propagates the change through the dependency graph and
// structural boundary expansion, and returns one ChangeRecord per
// affected unit.
func (e *Engine) UpdateSource(file, newContent string) []change.ChangeRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	newSnap := change.CreateSnapshot(file, newContent, now)

	oldSnap, hasOld := e.snapshots[file]
	if !hasOld {
		return e.firstUpdateLocked(file, newSnap)
	}

	if oldSnap.ContentHash == newSnap.ContentHash {
		// Whole-file hash matches: skip the LCS entirely, nothing changed,
		// so the pending set becomes the (empty) affected set.
		e.pending = make(map[string]bool)
		e.installSnapshotLocked(file, newSnap)
		return nil
	}

	changedLines := change.GetChangedLines(oldSnap, newSnap)

	affected := make(map[string]bool)
	for _, line := range changedLines {
		for _, u := range e.units.GetUnitsInRange(file, line, line) {
			e.markLocked(u.ID, units.Modified)
			affected[u.ID] = true
			for _, dependentID := range e.units.GetAffectedUnits(u.ID) {
				e.markLocked(dependentID, units.Affected)
				affected[dependentID] = true
			}
		}
	}

	e.expandStructuralBoundariesLocked(file, affected)

	records := e.buildChangeRecordsLocked(affected)

	e.pending = make(map[string]bool, len(affected))
	for id := range affected {
		e.pending[id] = true
	}

	e.installSnapshotLocked(file, newSnap)
	return records
}

func (e *Engine) firstUpdateLocked(file string, newSnap *change.Snapshot) []change.ChangeRecord {
	fileUnits := e.units.UnitsForFile(file)
	records := make([]change.ChangeRecord, 0, len(fileUnits))
	e.pending = make(map[string]bool, len(fileUnits))

	for _, u := range fileUnits {
		e.markLocked(u.ID, units.Added)
		e.pending[u.ID] = true
		records = append(records, change.ChangeRecord{
			UnitID:       u.ID,
			ChangeType:   units.Added,
			NewStartLine: u.StartLine,
			NewEndLine:   u.EndLine,
			Reason:       "first observation of file",
		})
	}

	e.installSnapshotLocked(file, newSnap)
	return records
}

// expandStructuralBoundariesLocked runs a single pass over a snapshot of
// affected's ids (discovered containers are never themselves used as new
// seeds, so nesting more than one level deep is resolved by this one
// scan, not by recursion) and, for each seed, adds every Function/Class
// unit in the file whose range strictly contains it (contains it and is
// larger than it), marking that container
// Affected and invalidating its cache — even overwriting a state the
// container already holds from a direct containment match in step 4, so
// a unit that is both "directly edited" and "a container of something
// else that was edited" settles on Affected.
func (e *Engine) expandStructuralBoundariesLocked(file string, affected map[string]bool) {
	seedIDs := make([]string, 0, len(affected))
	for id := range affected {
		seedIDs = append(seedIDs, id)
	}

	fileUnits := e.units.UnitsForFile(file)
	for _, id := range seedIDs {
		u := e.units.GetUnit(id)
		if u == nil {
			continue
		}
		for _, candidate := range fileUnits {
			if candidate.ID == u.ID || !candidate.Type.IsStructural() {
				continue
			}
			sameRange := candidate.StartLine == u.StartLine && candidate.EndLine == u.EndLine
			if candidate.ContainsRange(u.StartLine, u.EndLine) && !sameRange {
				e.markLocked(candidate.ID, units.Affected)
				affected[candidate.ID] = true
			}
		}
	}
}

func (e *Engine) markLocked(id string, state units.UnitState) {
	e.units.UpdateUnit(id, func(u *units.CompilationUnit) {
		u.State = state
		u.CacheValid = false
	})
}

func (e *Engine) buildChangeRecordsLocked(affected map[string]bool) []change.ChangeRecord {
	ids := make([]string, 0, len(affected))
	for id := range affected {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]change.ChangeRecord, 0, len(ids))
	for _, id := range ids {
		u := e.units.GetUnit(id)
		if u == nil {
			continue
		}
		records = append(records, change.ChangeRecord{
			UnitID:       id,
			ChangeType:   u.State,
			NewStartLine: u.StartLine,
			NewEndLine:   u.EndLine,
			Reason:       "affected by source update",
		})
	}
	return records
}

func (e *Engine) installSnapshotLocked(file string, snap *change.Snapshot) {
	e.snapshots[file] = snap.WithUnits(e.units.UnitsForFile(file))
}

// MarkCompiled records output as the freshly compiled result for unitID:
// it is stashed on the unit itself (cached_output/cache_timestamp/
// cache_valid) and mirrored into the CompilationCache, and the id is
// cleared from the pending units_to_compile set.
func (e *Engine) MarkCompiled(unitID, output string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	var contentHash string
	e.units.UpdateUnit(unitID, func(u *units.CompilationUnit) {
		u.CachedOutput = output
		u.CacheTimestamp = now
		u.CacheValid = true
		u.State = units.Unchanged
		contentHash = u.ContentHash
	})
	e.cache.Put(unitID, output, contentHash, now)
	delete(e.pending, unitID)
}

// GetUnitsToCompile returns the ids currently pending compilation, sorted
// for determinism.
func (e *Engine) GetUnitsToCompile() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, len(e.pending))
	for id := range e.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetCombinedOutput reassembles file's output by concatenating, in
// start_line order, each unit's cached output (preferring the unit's own
// cached_output when cache_valid, falling back to the CompilationCache
// when its entry is valid for the unit's current content hash), skipping
// units with no usable cached output.
func (e *Engine) GetCombinedOutput(file string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	fileUnits := e.units.UnitsForFile(file)
	fragments := make([]string, 0, len(fileUnits))
	for _, u := range fileUnits {
		switch {
		case u.CacheValid:
			fragments = append(fragments, u.CachedOutput)
		case e.cache.IsValid(u.ID, u.ContentHash):
			fragments = append(fragments, e.cache.Get(u.ID))
		default:
			fragments = append(fragments, "")
		}
	}
	return hashutil.JoinFragments(fragments...)
}
