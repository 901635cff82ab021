// Package collector walks a directory tree and records a FileIdentity for
// every file that survives exclusion filtering. The walk is iterative with
// an explicit work stack and a visited set of resolved directory paths, so
// symlink cycles terminate instead of recursing forever.
package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/attesta/attesta/internal/classify"
	"github.com/attesta/attesta/internal/digest"
	"github.com/attesta/attesta/internal/types"
	"github.com/attesta/attesta/internal/verification"
)

// Config controls a collection run.
type Config struct {
	// Root is the directory (or single file) to collect.
	Root string
	// ExcludePatterns are glob patterns matched against base names only.
	// A matching directory is skipped with its whole subtree; a matching
	// file is skipped alone.
	ExcludePatterns []string
	// Metadata is attached verbatim to every collected file.
	Metadata types.FileMetadata
	// Algorithm names the per-file checksum algorithm. Empty means sha1,
	// which is also required whenever a verification code is computed.
	Algorithm string
	// KeepGoing switches off the default fail-fast policy: per-file errors
	// are recorded in the result and the walk continues. The default
	// (false) aborts the whole run on the first failure, yielding no
	// partial output.
	KeepGoing bool
}

// FileError records a single file's failure in keep-going mode.
type FileError struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

func (e FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

// CollectionError aborts a fail-fast run; it wraps the first per-file
// failure encountered.
type CollectionError struct {
	Path string
	Err  error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collecting %s: %v", e.Path, e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }

// Collector owns the state of one collection run. It is not safe for
// concurrent use; results are read only after Collect returns.
type Collector struct {
	cfg      Config
	algo     digest.Algorithm
	table    classify.Table
	files    map[string]types.FileIdentity
	licenses map[string]bool
	errs     []FileError
}

// New validates the configuration and returns a collector ready to run.
// An unknown digest algorithm or a malformed exclusion pattern fails here,
// before any I/O happens.
func New(cfg Config, table classify.Table) (*Collector, error) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = digest.SHA1
	}
	algo, err := digest.Lookup(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	for _, p := range cfg.ExcludePatterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &Collector{
		cfg:      cfg,
		algo:     algo,
		table:    table,
		files:    map[string]types.FileIdentity{},
		licenses: map[string]bool{},
	}, nil
}

// Collect walks the configured root. In fail-fast mode the first file that
// cannot be read aborts the run with a CollectionError and the collector's
// state must be discarded. ctx is checked between files; a canceled
// context aborts with ctx.Err().
func (c *Collector) Collect(ctx context.Context) error {
	root := filepath.Clean(c.cfg.Root)
	if c.excluded(filepath.Base(root)) {
		return nil
	}
	info, err := os.Stat(root)
	if err != nil {
		return &CollectionError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return c.addFile(root, filepath.Base(root))
	}

	visited := map[string]bool{}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		visited[resolved] = true
	}
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if herr := c.fileErr(dir, err); herr != nil {
				return herr
			}
			continue
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := entry.Name()
			if c.excluded(name) {
				continue
			}
			full := filepath.Join(dir, name)
			info, err := os.Stat(full) // follows symlinks
			if err != nil {
				if herr := c.fileErr(full, err); herr != nil {
					return herr
				}
				continue
			}
			switch {
			case info.IsDir():
				resolved, err := filepath.EvalSymlinks(full)
				if err != nil {
					if herr := c.fileErr(full, err); herr != nil {
						return herr
					}
					continue
				}
				if visited[resolved] {
					continue
				}
				visited[resolved] = true
				stack = append(stack, full)
			case info.Mode().IsRegular():
				rel, err := filepath.Rel(root, full)
				if err != nil {
					rel = name
				}
				if err := c.addFile(full, filepath.ToSlash(rel)); err != nil {
					return err
				}
			default:
				// sockets, devices, fifos: nothing to checksum
			}
		}
	}
	return nil
}

func (c *Collector) addFile(full, rel string) error {
	sum, err := digest.File(full, c.algo)
	if err != nil {
		return c.fileErr(rel, err)
	}
	c.files[rel] = types.FileIdentity{
		Path:     rel,
		Category: c.table.File(rel),
		Checksum: sum,
		Metadata: c.cfg.Metadata,
	}
	if l := c.cfg.Metadata.License; l != "" {
		c.licenses[l] = true
	}
	if l := c.cfg.Metadata.ConcludedLicense; l != "" {
		c.licenses[l] = true
	}
	return nil
}

// fileErr applies the failure policy: record and continue in keep-going
// mode, abort otherwise.
func (c *Collector) fileErr(path string, err error) error {
	if c.cfg.KeepGoing {
		c.errs = append(c.errs, FileError{Path: path, Err: err})
		return nil
	}
	return &CollectionError{Path: path, Err: err}
}

func (c *Collector) excluded(name string) bool {
	for _, p := range c.cfg.ExcludePatterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Files returns the path-keyed identity map for the completed run.
func (c *Collector) Files() map[string]types.FileIdentity { return c.files }

// Identities returns the collected identities sorted by path.
func (c *Collector) Identities() []types.FileIdentity {
	out := make([]types.FileIdentity, 0, len(c.files))
	for _, id := range c.files {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Licenses returns the distinct license references observed across the
// collected files, sorted.
func (c *Collector) Licenses() []string {
	out := make([]string, 0, len(c.licenses))
	for l := range c.licenses {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Errors returns per-file failures recorded in keep-going mode.
func (c *Collector) Errors() []FileError { return c.errs }

// VerificationCode computes the aggregate code over the collected set.
// Names in priorExcluded that were actually collected are omitted from the
// aggregate and reported in ExcludedPaths; typical use is excluding the
// manifest document itself to avoid a self-referential checksum. The code
// is only meaningful for sha1 per-file checksums, which New pins by
// default.
func (c *Collector) VerificationCode(priorExcluded ...string) types.VerificationCode {
	var excluded []string
	for _, name := range priorExcluded {
		if _, ok := c.files[name]; ok {
			excluded = append(excluded, name)
		}
	}
	return verification.Compute(c.Identities(), excluded)
}
