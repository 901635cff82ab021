package core

import (
	"context"
	"time"

	"github.com/attesta/attesta/internal/classify"
	"github.com/attesta/attesta/internal/collector"
	"github.com/attesta/attesta/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Category         = types.Category
	FileMetadata     = types.FileMetadata
	FileIdentity     = types.FileIdentity
	Project          = types.Project
	VerificationCode = types.VerificationCode
	FileError        = collector.FileError
)

// Config describes one collection run.
type Config struct {
	// Root is the directory tree to collect.
	Root string
	// ExcludePatterns are glob patterns matched against base names; a
	// matching directory is skipped with its whole subtree.
	ExcludePatterns []string
	// Metadata is the attribution record applied to every collected file.
	Metadata FileMetadata
	// Algorithm selects the per-file checksum algorithm (default sha1).
	Algorithm string
	// ClassificationFile optionally overrides the built-in extension
	// tables with a YAML file.
	ClassificationFile string
	// ExcludeFromCode names files to leave out of the verification code,
	// typically the manifest document itself.
	ExcludeFromCode []string
	// KeepGoing records per-file errors and continues instead of aborting
	// on the first failure.
	KeepGoing bool
}

// Result is the output of a completed run. The identity map and the
// verification code are owned by the caller once returned.
type Result struct {
	Files            map[string]FileIdentity `json:"files"`
	VerificationCode VerificationCode        `json:"verification_code"`
	Licenses         []string                `json:"licenses,omitempty"`
	Errors           []FileError             `json:"errors,omitempty"`
	FilesCollected   int                     `json:"files_collected"`
	Duration         time.Duration           `json:"duration"`
}

// Collect is the stable entrypoint for other programs: it walks cfg.Root
// and returns the manifest plus its verification code. The default policy
// is fail-fast; see Config.KeepGoing.
func Collect(ctx context.Context, cfg Config) (Result, error) {
	start := time.Now()
	table := classify.Default()
	if cfg.ClassificationFile != "" {
		var err error
		table, err = classify.LoadFile(cfg.ClassificationFile)
		if err != nil {
			return Result{}, err
		}
	}
	c, err := collector.New(collector.Config{
		Root:            cfg.Root,
		ExcludePatterns: cfg.ExcludePatterns,
		Metadata:        cfg.Metadata,
		Algorithm:       cfg.Algorithm,
		KeepGoing:       cfg.KeepGoing,
	}, table)
	if err != nil {
		return Result{}, err
	}
	if err := c.Collect(ctx); err != nil {
		return Result{}, err
	}
	return Result{
		Files:            c.Files(),
		VerificationCode: c.VerificationCode(cfg.ExcludeFromCode...),
		Licenses:         c.Licenses(),
		Errors:           c.Errors(),
		FilesCollected:   len(c.Files()),
		Duration:         time.Since(start),
	}, nil
}
