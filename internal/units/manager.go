package units

import (
	"sort"
	"sync"
)

// Manager stores every CompilationUnit, the forward/reverse dependency
// edges between them, and a per-file index of unit ids in insertion order.
// It is the exclusive owner of every *CompilationUnit it returns internally;
// all public accessors return clones so callers cannot mutate graph state
// behind the manager's back.
type Manager struct {
	mu        sync.Mutex
	units     map[string]*CompilationUnit
	fileUnits map[string][]string // file -> unit ids, insertion order
}

// New creates an empty Manager.
func New() *Manager {
	return &Manager{
		units:     make(map[string]*CompilationUnit),
		fileUnits: make(map[string][]string),
	}
}

// AddUnit inserts u, or overwrites the existing unit at the same id, and
// appends its id to its file's index (if not already present).
func (m *Manager) AddUnit(u *CompilationUnit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addUnitLocked(u)
}

func (m *Manager) addUnitLocked(u *CompilationUnit) {
	stored := u.Clone()
	m.units[stored.ID] = stored
	ids := m.fileUnits[stored.FilePath]
	for _, id := range ids {
		if id == stored.ID {
			return
		}
	}
	m.fileUnits[stored.FilePath] = append(ids, stored.ID)
}

// RemoveUnit erases id from storage and from its file's index, and scrubs
// both sides of every edge touching it: the removed unit's Dependencies no
// longer list it as a dependent, and the removed unit's Dependents no
// longer list it as a dependency. Scrubbing only one direction would leave
// a dangling reference to a deleted unit on the other side, breaking the
// x-in-y.Dependencies-iff-y-in-x.Dependents invariant after deletion.
func (m *Manager) RemoveUnit(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeUnitLocked(id)
}

func (m *Manager) removeUnitLocked(id string) {
	u, ok := m.units[id]
	if !ok {
		return
	}
	for _, depID := range u.Dependencies {
		if dep, ok := m.units[depID]; ok {
			dep.Dependents = removeString(dep.Dependents, id)
		}
	}
	for _, dependentID := range u.Dependents {
		if dependent, ok := m.units[dependentID]; ok {
			dependent.Dependencies = removeString(dependent.Dependencies, id)
		}
	}
	delete(m.units, id)
	ids := m.fileUnits[u.FilePath]
	ids = removeString(ids, id)
	if len(ids) == 0 {
		delete(m.fileUnits, u.FilePath)
	} else {
		m.fileUnits[u.FilePath] = ids
	}
}

// AddDependency records that "from" depends on "to": to is appended to
// from.Dependencies and from is appended to to.Dependents, each with
// set semantics (repeated calls are idempotent). A no-op if either id is
// unknown.
func (m *Manager) AddDependency(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fromUnit, ok := m.units[from]
	if !ok {
		return
	}
	toUnit, ok := m.units[to]
	if !ok {
		return
	}
	if !containsString(fromUnit.Dependencies, to) {
		fromUnit.Dependencies = append(fromUnit.Dependencies, to)
	}
	if !containsString(toUnit.Dependents, from) {
		toUnit.Dependents = append(toUnit.Dependents, from)
	}
}

// GetUnit returns a clone of the unit with the given id, or nil if unknown.
func (m *Manager) GetUnit(id string) *CompilationUnit {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.units[id]
	if !ok {
		return nil
	}
	return u.Clone()
}

// UpdateUnit applies fn to the stored unit with the given id, under the
// manager's lock, and returns whether the unit existed. fn receives the
// manager's own pointer (not a clone) so the caller may mutate state
// directly; it must not retain the pointer past fn's return.
func (m *Manager) UpdateUnit(id string, fn func(*CompilationUnit)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.units[id]
	if !ok {
		return false
	}
	fn(u)
	return true
}

// UnitsForFile returns clones of every unit registered under file, sorted
// by StartLine ascending.
func (m *Manager) UnitsForFile(file string) []*CompilationUnit {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unitsForFileLocked(file)
}

func (m *Manager) unitsForFileLocked(file string) []*CompilationUnit {
	ids := m.fileUnits[file]
	out := make([]*CompilationUnit, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.units[id]; ok {
			out = append(out, u.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartLine < out[j].StartLine })
	return out
}

// GetUnitsInRange returns clones of file's units whose range overlaps
// [start, end], sorted by StartLine ascending.
func (m *Manager) GetUnitsInRange(file string, start, end int) []*CompilationUnit {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*CompilationUnit
	for _, u := range m.unitsForFileLocked(file) {
		if u.OverlapsRange(start, end) {
			out = append(out, u)
		}
	}
	return out
}

// GetAffectedUnits returns the set of ids reachable from changedID by
// following Dependents edges (breadth-first), excluding changedID itself.
// A visited set bounds the walk, so cyclic dependency graphs still
// terminate with a finite result covering every node in the cycle.
func (m *Manager) GetAffectedUnits(changedID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getAffectedUnitsLocked(changedID)
}

func (m *Manager) getAffectedUnitsLocked(changedID string) []string {
	visited := map[string]bool{changedID: true}
	queue := []string{changedID}
	var result []string
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		u, ok := m.units[id]
		if !ok {
			continue
		}
		for _, dependentID := range u.Dependents {
			if visited[dependentID] {
				continue
			}
			visited[dependentID] = true
			result = append(result, dependentID)
			queue = append(queue, dependentID)
		}
	}
	return result
}

// RegisterFile drops every unit currently indexed under file, then adds
// each of units in order. Dependency edges are not inferred here: the
// caller must re-assert them with AddDependency after registering.
func (m *Manager) RegisterFile(file string, newUnits []*CompilationUnit) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range append([]string(nil), m.fileUnits[file]...) {
		m.removeUnitLocked(id)
	}
	for _, u := range newUnits {
		m.addUnitLocked(u)
	}
}

// AllFiles returns the set of file paths with at least one registered
// unit, in no particular order.
func (m *Manager) AllFiles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.fileUnits))
	for f := range m.fileUnits {
		out = append(out, f)
	}
	return out
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
