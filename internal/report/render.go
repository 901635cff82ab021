package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/attesta/attesta/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
}

// PrintText writes the manifest in plain columnar form, one file per line,
// sorted by path, followed by a summary footer with the verification code.
func PrintText(w io.Writer, identities []types.FileIdentity, code types.VerificationCode, opts PrintOptions) {
	sort.Slice(identities, func(i, j int) bool { return identities[i].Path < identities[j].Path })
	if len(identities) == 0 {
		fmt.Fprintln(w, "No files collected")
	} else {
		maxPath := 4
		for _, id := range identities {
			if l := len(id.Path); l > maxPath {
				maxPath = l
			}
		}
		for _, id := range identities {
			cat := string(id.Category)
			if !opts.NoColor {
				cat = colorCategory(id.Category)
			}
			fmt.Fprintf(w, "%-7s %-*s %s\n", cat, maxPath, id.Path, id.Checksum)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files collected: %d\n", len(identities))
	fmt.Fprintf(w, "Verification code: %s\n", code.Value)
	for _, p := range code.ExcludedPaths {
		fmt.Fprintf(w, "Excluded from code: %s\n", p)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Collection duration: %.2fs\n", opts.Duration.Seconds())
	}
}

func colorCategory(c types.Category) string {
	switch c {
	case types.CatSource:
		return "\x1b[32msource\x1b[0m" // green
	case types.CatBinary:
		return "\x1b[31mbinary\x1b[0m" // red
	case types.CatArchive:
		return "\x1b[33marchive\x1b[0m" // yellow
	default:
		return "\x1b[36mother\x1b[0m" // cyan
	}
}
