package attesta

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagNoColor       bool
	flagNoUpdateCheck bool
	flagSelfUpdate    bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the attesta CLI.
var rootCmd = &cobra.Command{
	Use:           "attesta",
	Short:         "Build deterministic file manifests with verification codes",
	Long:          "Attesta walks a directory tree, records an identity for every non-excluded file and folds the checksums into a package verification code for license attestation.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the attesta CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.PersistentFlags().BoolVar(&flagSelfUpdate, "self-update", false, "update attesta to the latest release")
}
