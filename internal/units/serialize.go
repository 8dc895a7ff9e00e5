package units

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Serialize renders the manager's units in the tab-delimited, line-oriented
// format:
//
//	<N>
//	<id>\t<file>\t<start>\t<end>\t<type_int>\t<name>\t<hash>\t<dep_count>[\t<dep_id>]*
//	... N times ...
//
// Dependents are not written: Deserialize rebuilds them from Dependencies.
func (m *Manager) Serialize() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.units))
	for id := range m.units {
		ids = append(ids, id)
	}
	// Deterministic order so repeated serialization of unchanged state
	// produces byte-identical output.
	sort.Strings(ids)

	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", len(ids))
	for _, id := range ids {
		u := m.units[id]
		fmt.Fprintf(&b, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%d",
			u.ID, u.FilePath, u.StartLine, u.EndLine, int(u.Type), u.Name, u.ContentHash, len(u.Dependencies))
		for _, dep := range u.Dependencies {
			b.WriteByte('\t')
			b.WriteString(dep)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Deserialize replaces the manager's contents with the units encoded in
// data (in Serialize's format): every unit is added first, and then
// Dependents lists are rebuilt by scanning each unit's Dependencies, so the
// forward/reverse edge invariant holds regardless of the order units
// appeared in data.
func (m *Manager) Deserialize(data string) error {
	lines := strings.Split(strings.TrimRight(data, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		m.reset()
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return fmt.Errorf("units: invalid record count %q: %w", lines[0], err)
	}
	if len(lines)-1 < n {
		return fmt.Errorf("units: expected %d records, got %d lines", n, len(lines)-1)
	}

	type parsed struct {
		unit *CompilationUnit
		deps []string
	}
	records := make([]parsed, 0, n)

	for i := 0; i < n; i++ {
		fields := strings.Split(lines[i+1], "\t")
		if len(fields) < 8 {
			return fmt.Errorf("units: record %d has %d fields, want at least 8", i, len(fields))
		}
		start, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("units: record %d start_line: %w", i, err)
		}
		end, err := strconv.Atoi(fields[3])
		if err != nil {
			return fmt.Errorf("units: record %d end_line: %w", i, err)
		}
		typeInt, err := strconv.Atoi(fields[4])
		if err != nil {
			return fmt.Errorf("units: record %d type: %w", i, err)
		}
		depCount, err := strconv.Atoi(fields[7])
		if err != nil {
			return fmt.Errorf("units: record %d dep_count: %w", i, err)
		}
		if len(fields) < 8+depCount {
			return fmt.Errorf("units: record %d declares %d deps but only has %d fields", i, depCount, len(fields)-8)
		}
		deps := append([]string(nil), fields[8:8+depCount]...)

		u := &CompilationUnit{
			ID:          fields[0],
			FilePath:    fields[1],
			StartLine:   start,
			EndLine:     end,
			Type:        UnitType(typeInt),
			Name:        fields[5],
			ContentHash: fields[6],
		}
		records = append(records, parsed{unit: u, deps: deps})
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.units = make(map[string]*CompilationUnit, n)
	m.fileUnits = make(map[string][]string)
	for _, r := range records {
		m.addUnitLocked(r.unit)
	}
	for _, r := range records {
		u := m.units[r.unit.ID]
		u.Dependencies = append([]string(nil), r.deps...)
	}
	for _, r := range records {
		for _, depID := range r.deps {
			if dep, ok := m.units[depID]; ok && !containsString(dep.Dependents, r.unit.ID) {
				dep.Dependents = append(dep.Dependents, r.unit.ID)
			}
		}
	}
	return nil
}

func (m *Manager) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units = make(map[string]*CompilationUnit)
	m.fileUnits = make(map[string][]string)
}
