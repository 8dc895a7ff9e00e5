// Package index adapts the teacher's per-language regex symbol extractors
// into compilation units for the incremental engine (see units.go). The
// extractors' own file-level metadata (package name, primary type, export
// list) is collected by each extractFoo function but unused here; the
// engine only needs the symbol's qualified name and line range.
package index

// Symbol represents a discovered code symbol: a function, method, or
// constructor found by one of the per-language extractors. Start/End are
// 1-based line numbers within Path. End is finalized by each extractor via
// finalizeSymbolEnds (set to the next symbol's start minus one, or to EOF
// for the last one).
type Symbol struct {
	Symbol string // fully-qualified, e.g., "org.acme.Server.start"
	Kind   string // "method"|"func"|"ctor"|...
	Path   string // project-relative file path
	Start  int    // 1-based
	End    int    // 1-based
}
