package attesta

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/attesta/attesta/internal/audit"
	"github.com/attesta/attesta/internal/classify"
	"github.com/attesta/attesta/internal/config"
	"github.com/attesta/attesta/internal/git"
	"github.com/attesta/attesta/internal/report"
	"github.com/attesta/attesta/internal/update"
	"github.com/attesta/attesta/pkg/core"
)

var (
	flagPath            string
	flagExclude         string
	flagAlgorithm       string
	flagClassification  string
	flagExcludeFromCode string
	flagKeepGoing       bool
	flagTable           bool
	flagText            bool
	flagNoAudit         bool
	flagLicense         string
	flagCopyright       string
	flagNotice          string
	flagComment         string
)

func init() {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect a file manifest and compute its verification code",
		RunE:  runCollect,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "directory tree to collect")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated base-name glob patterns to skip")
	cmd.Flags().StringVar(&flagAlgorithm, "algorithm", "", "per-file checksum algorithm (sha1, sha256, sha512)")
	cmd.Flags().StringVar(&flagClassification, "classification", "", "YAML file overriding the extension classification tables")
	cmd.Flags().StringVar(&flagExcludeFromCode, "exclude-from-code", "", "comma-separated file names omitted from the verification code")
	cmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "record per-file errors and continue instead of aborting")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagNoAudit, "no-audit", false, "do not append a record to the run log")
	cmd.Flags().StringVar(&flagLicense, "license", "", "declared license applied to every file")
	cmd.Flags().StringVar(&flagCopyright, "copyright", "", "copyright text applied to every file")
	cmd.Flags().StringVar(&flagNotice, "notice", "", "notice text applied to every file")
	cmd.Flags().StringVar(&flagComment, "comment", "", "comment applied to every file")
}

func runCollect(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	cfg := core.Config{
		Root:               abs,
		ExcludePatterns:    splitList(pickString(flagExclude, lcfg.Exclude, gcfg.Exclude)),
		Metadata:           resolveMetadata(lcfg, gcfg),
		Algorithm:          pickString(flagAlgorithm, lcfg.Algorithm, gcfg.Algorithm),
		ClassificationFile: pickString(flagClassification, lcfg.Classification, gcfg.Classification),
		KeepGoing:          flagKeepGoing || pickBool(false, lcfg.KeepGoing, gcfg.KeepGoing),
	}
	cfg.ExcludeFromCode = splitList(flagExcludeFromCode)
	if len(cfg.ExcludeFromCode) == 0 {
		cfg.ExcludeFromCode = append(lcfg.ExcludeFromCode, gcfg.ExcludeFromCode...)
	}
	noColor := flagNoColor || pickBool(false, lcfg.NoColor, gcfg.NoColor)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		noColor = true
	}

	if !flagJSON {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'attesta' with --self-update to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
		_, _ = fmt.Fprintf(os.Stderr, "Collecting %s...\n", abs)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := core.Collect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("collect error: %w", err)
	}

	switch {
	case flagJSON:
		if err := core.MarshalResult(os.Stdout, res); err != nil {
			return err
		}
	case flagText:
		report.PrintText(os.Stdout, identities(res), res.VerificationCode, report.PrintOptions{NoColor: noColor, Duration: res.Duration, FilesScanned: res.FilesCollected})
	default:
		report.PrintTable(os.Stdout, identities(res), res.VerificationCode, report.PrintOptions{NoColor: noColor, Duration: res.Duration, FilesScanned: res.FilesCollected})
	}
	for _, fe := range res.Errors {
		_, _ = fmt.Fprintf(os.Stderr, "warning: %s\n", fe.Error())
	}

	if !flagNoAudit {
		table := classify.Default()
		if cfg.ClassificationFile != "" {
			if t, err := classify.LoadFile(cfg.ClassificationFile); err == nil {
				table = t
			}
		}
		repo, commit, branch := git.RepoMetadata(abs)
		algo := cfg.Algorithm
		if algo == "" {
			algo = "sha1"
		}
		record := audit.RunRecord{
			Root:             abs,
			Repo:             repo,
			Commit:           commit,
			Branch:           branch,
			Algorithm:        algo,
			TableFingerprint: fmt.Sprintf("%016x", table.Fingerprint()),
			FilesCollected:   res.FilesCollected,
			VerificationCode: res.VerificationCode.Value,
			ExcludedPaths:    res.VerificationCode.ExcludedPaths,
			Licenses:         res.Licenses,
			FileErrors:       len(res.Errors),
			Duration:         time.Since(start).String(),
		}
		if err := audit.NewRunLog(abs).LogRun(record); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "warning: could not write run log:", err)
		}
	}
	return nil
}

func identities(res core.Result) []core.FileIdentity {
	out := make([]core.FileIdentity, 0, len(res.Files))
	for _, id := range res.Files {
		out = append(out, id)
	}
	return out
}

func resolveMetadata(lcfg, gcfg config.FileConfig) core.FileMetadata {
	var meta core.FileMetadata
	for _, fc := range []config.FileConfig{gcfg, lcfg} {
		m := fc.Metadata
		if m == nil {
			continue
		}
		if m.License != nil {
			meta.License = *m.License
		}
		if m.ConcludedLicense != nil {
			meta.ConcludedLicense = *m.ConcludedLicense
		}
		if m.LicenseComment != nil {
			meta.LicenseComment = *m.LicenseComment
		}
		if m.Copyright != nil {
			meta.Copyright = *m.Copyright
		}
		if m.Notice != nil {
			meta.Notice = *m.Notice
		}
		if m.Comment != nil {
			meta.Comment = *m.Comment
		}
		if len(m.Contributors) > 0 {
			meta.Contributors = m.Contributors
		}
		if len(m.Projects) > 0 {
			meta.Projects = meta.Projects[:0]
			for _, p := range m.Projects {
				meta.Projects = append(meta.Projects, core.Project{Name: p.Name, Homepage: p.Homepage, URI: p.URI})
			}
		}
	}
	// CLI flags win over both config layers
	if flagLicense != "" {
		meta.License = flagLicense
	}
	if flagCopyright != "" {
		meta.Copyright = flagCopyright
	}
	if flagNotice != "" {
		meta.Notice = flagNotice
	}
	if flagComment != "" {
		meta.Comment = flagComment
	}
	return meta
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
