package attesta

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/attesta/attesta/internal/classify"
)

func init() {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the extension classification tables in effect",
		RunE: func(_ *cobra.Command, _ []string) error {
			table := classify.Default()
			if flagClassification != "" {
				var err error
				table, err = classify.LoadFile(flagClassification)
				if err != nil {
					return err
				}
			}
			printSet := func(name string, set map[string]bool) {
				exts := make([]string, 0, len(set))
				for e := range set {
					exts = append(exts, e)
				}
				sort.Strings(exts)
				fmt.Printf("%s:\n", name)
				for _, e := range exts {
					fmt.Printf("  %s\n", e)
				}
			}
			printSet("source", table.Source)
			printSet("binary", table.Binary)
			printSet("archive", table.Archive)
			fmt.Printf("fingerprint: %016x\n", table.Fingerprint())
			return nil
		},
	}
	cmd.Flags().StringVar(&flagClassification, "classification", "", "YAML file overriding the extension classification tables")
	rootCmd.AddCommand(cmd)
}
