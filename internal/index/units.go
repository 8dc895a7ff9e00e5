// This file adapts the package's Go and Python regex symbol extractors
// into compilation units for the incremental engine. Parsing a source
// file into units is explicitly an external collaborator's job (the
// engine itself only accepts already-built CompilationUnit batches), so
// ExtractUnits is an optional convenience, not something the engine
// depends on.
package index

import (
	"bytes"
	"path/filepath"

	"incremental-engine/internal/hashutil"
	"incremental-engine/internal/units"
)

// ExtractUnits scans content (the file at relPath) with the language-specific
// extractor chosen by its extension and returns one CompilationUnit per
// detected function/method, in source order. The Go and Python extractors
// emit no type-level symbols, so every unit they yield is a Function. Each extractor finalizes its own symbols' end lines (see
// finalizeSymbolEnds), so this only has to turn already-bounded symbols
// into units. Unrecognized extensions return an empty, non-error result:
// the caller is expected to fall back to hand-built units for such files.
func ExtractUnits(relPath string, content []byte) []*units.CompilationUnit {
	lang := InferLangByExt(filepath.Ext(relPath))

	var syms []Symbol
	switch lang {
	case "go":
		_, _, _, _, syms = extractGo(relPath, content)
	case "py":
		_, _, _, _, syms = extractPy(relPath, content)
	default:
		return nil
	}

	lines := bytes.Split(content, []byte("\n"))
	out := make([]*units.CompilationUnit, 0, len(syms))
	for _, s := range syms {
		typ := units.Function
		if s.Kind == "class" || s.Kind == "interface" || s.Kind == "struct" || s.Kind == "type" {
			typ = units.Class
		}
		body := symbolBody(lines, s.Start, s.End)
		out = append(out, units.NewUnit(relPath, s.Start, s.End, typ, s.Symbol, hashutil.ContentHashString(body)))
	}
	return out
}

func symbolBody(lines [][]byte, start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return ""
	}
	var b bytes.Buffer
	for i := start - 1; i < end; i++ {
		if i > start-1 {
			b.WriteByte('\n')
		}
		b.Write(lines[i])
	}
	return b.String()
}
