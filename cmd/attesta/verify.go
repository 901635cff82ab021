package attesta

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/attesta/attesta/internal/config"
	"github.com/attesta/attesta/pkg/core"
)

var (
	flagVerifyPath   string
	flagVerifyExpect string
)

func init() {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Recompute a tree's verification code and compare it to an expected value",
		Long:  "Verify recollects the tree with the same settings and fails when the resulting verification code differs from --expect, which means the effective file set or contents changed.",
		RunE:  runVerify,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagVerifyPath, "path", "p", ".", "directory tree to verify")
	cmd.Flags().StringVar(&flagVerifyExpect, "expect", "", "expected verification code (40 hex chars)")
	_ = cmd.MarkFlagRequired("expect")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagVerifyPath)
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := core.Config{
		Root:               abs,
		ExcludePatterns:    splitList(pickString("", lcfg.Exclude, gcfg.Exclude)),
		ClassificationFile: pickString("", lcfg.Classification, gcfg.Classification),
		ExcludeFromCode:    append(lcfg.ExcludeFromCode, gcfg.ExcludeFromCode...),
	}
	res, err := core.Collect(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("collect error: %w", err)
	}
	got := res.VerificationCode.Value
	if got != flagVerifyExpect {
		return fmt.Errorf("verification code mismatch: got %s want %s", got, flagVerifyExpect)
	}
	_, _ = fmt.Fprintf(os.Stdout, "verified: %s (%d files)\n", got, res.FilesCollected)
	return nil
}
