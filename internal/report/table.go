package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/attesta/attesta/internal/types"
)

// PrintTable writes the manifest as a bordered table.
func PrintTable(w io.Writer, identities []types.FileIdentity, code types.VerificationCode, opts PrintOptions) {
	sort.Slice(identities, func(i, j int) bool { return identities[i].Path < identities[j].Path })
	tbl := tablewriter.NewTable(w)
	tbl.Header([]string{"Path", "Category", "Checksum"})
	for _, id := range identities {
		tbl.Append([]string{id.Path, string(id.Category), id.Checksum})
	}
	tbl.Render()

	fmt.Fprintf(w, "Files collected: %d\n", len(identities))
	fmt.Fprintf(w, "Verification code: %s\n", code.Value)
	for _, p := range code.ExcludedPaths {
		fmt.Fprintf(w, "Excluded from code: %s\n", p)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Collection duration: %.2fs\n", opts.Duration.Seconds())
	}
}
