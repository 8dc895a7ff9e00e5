package hashutil

import "strings"

// SplitLines splits content on "\n". A trailing newline produces no empty
// tail element, so JoinLines(SplitLines(s)) returns s without its final
// newline, if it had one.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return []string{""}
	}
	return strings.Split(content, "\n")
}

// JoinLines reinserts a single "\n" between elements.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// LineHashes maps SplitLines(content) through LineHash, in order.
func LineHashes(content string) []string {
	lines := SplitLines(content)
	hashes := make([]string, len(lines))
	for i, l := range lines {
		hashes[i] = LineHash(l)
	}
	return hashes
}

// JoinFragments concatenates non-empty fragments with a single '\n'
// separator, skipping empty fragments entirely rather than leaving a blank
// line in their place. Adapted from the teacher's textutil.JoinWithSingleNL,
// specialized to string fragments and to dropping empties outright, which
// is exactly the reassembly rule get_combined_output needs.
func JoinFragments(fragments ...string) string {
	var b strings.Builder
	wrote := false
	for _, f := range fragments {
		if f == "" {
			continue
		}
		if wrote {
			b.WriteByte('\n')
		}
		b.WriteString(f)
		wrote = true
	}
	return b.String()
}
