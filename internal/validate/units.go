// Package validate performs lightweight, dependency-free validation of the
// compilation units and dependency lists callers hand to the engine. It is
// not a schema validator; it aggregates the handful of structural checks
// the engine's external contract actually requires into a single error.
package validate

import (
	"fmt"
	"strings"

	"incremental-engine/internal/units"
)

// isLowerHex reports whether s is a non-empty lowercase hexadecimal
// string. Length is not pinned: FNV-1a renders 16 chars, but callers may
// supply pre-truncated hashes (e.g. in tests).
func isLowerHex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}

// Units validates a batch of caller-supplied CompilationUnit records
// before they reach UnitManager: each must have a non-empty id, a
// non-empty file path, a 1-based line range with start <= end, and a
// lowercase-hex content hash. Ids must be unique within the batch.
//
// Returns nil if everything looks fine, or a single aggregated error
// describing every issue found.
func Units(batch []*units.CompilationUnit) error {
	var errs errlist
	seen := make(map[string]struct{}, len(batch))

	for i, u := range batch {
		prefix := fmt.Sprintf("units[%d]", i)
		if u == nil {
			errs.add("%s: nil unit", prefix)
			continue
		}
		if strings.TrimSpace(u.ID) == "" {
			errs.add("%s: id must be non-empty", prefix)
		} else if _, dup := seen[u.ID]; dup {
			errs.add("%s: duplicate id %q", prefix, u.ID)
		} else {
			seen[u.ID] = struct{}{}
		}
		if strings.TrimSpace(u.FilePath) == "" {
			errs.add("%s (%s): file_path must be non-empty", prefix, u.ID)
		}
		if u.StartLine < 1 {
			errs.add("%s (%s): start_line must be >= 1, got %d", prefix, u.ID, u.StartLine)
		}
		if u.EndLine < u.StartLine {
			errs.add("%s (%s): end_line must be >= start_line (start=%d, end=%d)", prefix, u.ID, u.StartLine, u.EndLine)
		}
		if !isLowerHex(u.ContentHash) {
			errs.add("%s (%s): content_hash must be lowercase hex, got %q", prefix, u.ID, u.ContentHash)
		}
	}

	return errs.err()
}

// DependencyIDs validates a caller-supplied dependency list: it must be
// free of empty entries and of self-references to ownerID.
func DependencyIDs(ownerID string, deps []string) error {
	var errs errlist
	for i, d := range deps {
		if strings.TrimSpace(d) == "" {
			errs.add("dependencies[%d]: empty dependency id", i)
			continue
		}
		if d == ownerID {
			errs.add("dependencies[%d]: unit %q cannot depend on itself", i, ownerID)
		}
	}
	return errs.err()
}
