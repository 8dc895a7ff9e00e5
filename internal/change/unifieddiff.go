package change

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// RenderUnifiedDiff produces a classic unified patch (---/+++ headers, @@
// hunks) between a file's old and new content, for diagnostics and logs.
// It is never consulted by GetChangedLines or DetectChanges — those are
// driven exclusively by ComputeLCS over line hashes — this exists purely
// so a human (or a CLI) can see what actually changed in a change record.
func RenderUnifiedDiff(fileLabel, old, new string, context int) string {
	if context <= 0 {
		context = 3
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(old),
		B:        splitLinesKeepNL(new),
		FromFile: "a/" + fileLabel,
		ToFile:   "b/" + fileLabel,
		Context:  context,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		return fmt.Sprintf("--- a/%s\n+++ b/%s\n@@\n# no textual difference\n", fileLabel, fileLabel)
	}
	return s
}

func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.SplitAfter(s, "\n")
}
