// Package index — common helpers shared by symbol extractors.
//
// This file provides:
//   - joinSym: builds a fully-qualified symbol name "pkg.Type.member"
//   - InferLangByExt: maps a file extension to a coarse language tag
//   - finalizeSymbolEnds: each extractor's own end-line bookkeeping, so a
//     symbol's End is settled before it ever becomes a CompilationUnit
//     boundary rather than being patched up by a generic post-pass
package index

import (
	"sort"
	"strings"
)

// finalizeSymbolEnds sorts syms by Start and sets each End to the line
// immediately before the next symbol's Start, or to totalLines for the
// last symbol in the file. Every extractor that wants its symbols to map
// onto non-overlapping CompilationUnit line ranges calls this itself on
// its own symbol set before returning, rather than leaving End unset for
// a caller to reconcile across languages.
func finalizeSymbolEnds(syms []Symbol, totalLines int) {
	sort.Slice(syms, func(i, j int) bool { return syms[i].Start < syms[j].Start })
	for i := range syms {
		if i+1 < len(syms) {
			syms[i].End = syms[i+1].Start - 1
			if syms[i].End < syms[i].Start {
				syms[i].End = syms[i].Start
			}
		} else {
			syms[i].End = totalLines
		}
	}
}

// joinSym concatenates package, type and member into a qualified symbol name.
// Empty segments are skipped; dots are inserted only between non-empty parts.
//
// Examples:
//
//	joinSym("org.acme", "Server", "start") => "org.acme.Server.start"
//	joinSym("org.acme", "", "main")        => "org.acme.main"
//	joinSym("", "Server", "start")         => "Server.start"
//	joinSym("", "", "main")                => "main"
func joinSym(pkg, typ, name string) string {
	pkg = strings.TrimSpace(pkg)
	typ = strings.TrimSpace(typ)
	name = strings.TrimSpace(name)

	var b strings.Builder
	// Append in order, inserting '.' only between non-empty parts.
	if pkg != "" {
		b.WriteString(pkg)
	}
	if typ != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(typ)
	}
	if name != "" {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(name)
	}
	// If everything was empty, return empty string (callers typically guard this).
	return b.String()
}

// InferLangByExt returns a coarse language tag for a given file extension.
// The result is used to decide which symbol extractor to run.
//
// Normalization:
//   - Case-insensitive
//   - Accepts with or without leading '.' (".go" or "go")
//
// Mapping:
//   - ".go" → "go"
//   - ".py" → "py"
//   - unknown/other → "" (caller may skip symbol extraction)
//
// Only the two languages ExtractUnits actually dispatches to are
// recognized here; the regex extractors for the rest of the original
// seven-language set were dropped as unexercised (see units.go).
func InferLangByExt(ext string) string {
	e := strings.TrimSpace(strings.ToLower(ext))
	if e == "" {
		return ""
	}
	if e[0] != '.' {
		e = "." + e
	}

	switch e {
	case ".go":
		return "go"
	case ".py":
		return "py"
	default:
		return ""
	}
}
