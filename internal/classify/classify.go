package classify

import (
	"path/filepath"
	"sort"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/attesta/attesta/internal/types"
)

// Table maps upper-cased file extensions (no dot) to categories. Anything
// not present in any set classifies as other.
type Table struct {
	Source  map[string]bool
	Binary  map[string]bool
	Archive map[string]bool
}

var defaultSource = []string{
	"C", "H", "JAVA", "CS", "JS", "HH", "CC", "CPP", "CXX", "HPP",
	"ASP", "BAS", "BAT", "HTM", "HTML", "LSP", "PAS", "XML", "ADA",
	"VB", "ASM", "CBL", "COB", "F77", "M3", "MK", "MKE", "RMK", "MOD",
	"PL", "PM", "PRO", "REX", "SM", "ST", "SNO", "PY", "PHP", "CSS",
	"XSL", "XSLT", "SH", "XSD", "RB", "RBX", "RHTML", "RUBY",
	// extensions the original tables predate
	"GO", "RS", "TS", "KT", "SWIFT", "SCALA", "YML", "YAML", "JSON",
}

var defaultBinary = []string{
	"EXE", "DLL", "JAR", "CLASS", "SO", "A",
	"O", "DYLIB", "WASM", "PYC",
}

var defaultArchive = []string{
	"ZIP", "EAR", "TAR", "GZ", "TGZ", "BZ2", "RPM",
	"WAR", "XZ", "7Z",
}

// Default returns a table populated with the compiled-in extension sets.
func Default() Table {
	return Table{
		Source:  toSet(defaultSource),
		Binary:  toSet(defaultBinary),
		Archive: toSet(defaultArchive),
	}
}

func toSet(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		m[strings.ToUpper(e)] = true
	}
	return m
}

// Lookup maps an extension (without the leading dot) to a category. The
// match is case-insensitive and the function is total: unknown or empty
// extensions classify as other.
func (t Table) Lookup(ext string) types.Category {
	upper := strings.ToUpper(ext)
	switch {
	case t.Source[upper]:
		return types.CatSource
	case t.Binary[upper]:
		return types.CatBinary
	case t.Archive[upper]:
		return types.CatArchive
	default:
		return types.CatOther
	}
}

// File classifies a path by its base name's extension.
func (t Table) File(path string) types.Category {
	return t.Lookup(Extension(path))
}

// Extension returns the extension of a path's base name without the dot.
// Names with no dot, or whose only dot is the first character (dotfiles
// like .gitignore), have no extension.
func Extension(path string) string {
	name := filepath.Base(path)
	lastDot := strings.LastIndexByte(name, '.')
	if lastDot < 1 {
		return ""
	}
	return name[lastDot+1:]
}

// Fingerprint returns a stable 64-bit fingerprint of the table contents,
// used to correlate audit records with the classification rules in effect.
func (t Table) Fingerprint() uint64 {
	var sb strings.Builder
	for _, set := range []map[string]bool{t.Source, t.Binary, t.Archive} {
		exts := make([]string, 0, len(set))
		for e := range set {
			exts = append(exts, e)
		}
		sort.Strings(exts)
		sb.WriteString(strings.Join(exts, ","))
		sb.WriteByte(';')
	}
	return xxhash.Sum64String(sb.String())
}
