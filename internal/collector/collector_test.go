package collector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/attesta/attesta/internal/classify"
	"github.com/attesta/attesta/internal/types"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func collect(t *testing.T, cfg Config) *Collector {
	t.Helper()
	c, err := New(cfg, classify.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Collect(context.Background()); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return c
}

func TestCollect_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.txt", "hello")
	write(t, dir, "b.java", "world")

	c := collect(t, Config{Root: dir})
	files := c.Files()
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	a := files["a.txt"]
	if a.Category != types.CatOther || a.Checksum != "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d" {
		t.Fatalf("a.txt identity: %+v", a)
	}
	b := files["b.java"]
	if b.Category != types.CatSource || b.Checksum != "7c211433f02071597741e6ff5a8ea34789abbf43" {
		t.Fatalf("b.java identity: %+v", b)
	}
	code := c.VerificationCode()
	if code.Value != "163fc59f1d66d9237bab8ad77cd27a31c3f8e67c" {
		t.Fatalf("verification code=%s", code.Value)
	}
}

func TestCollect_SiblingsKeyedByOwnPath(t *testing.T) {
	// several plain files in one directory must all survive in the map
	dir := t.TempDir()
	write(t, dir, "sub/one.txt", "1")
	write(t, dir, "sub/two.txt", "2")
	write(t, dir, "sub/three.txt", "3")

	c := collect(t, Config{Root: dir})
	for _, rel := range []string{"sub/one.txt", "sub/two.txt", "sub/three.txt"} {
		id, ok := c.Files()[rel]
		if !ok {
			t.Fatalf("missing %s in %v", rel, c.Files())
		}
		if id.Path != rel {
			t.Fatalf("identity path=%q want %q", id.Path, rel)
		}
	}
}

func TestCollect_ExclusionByBasenameOnly(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "keep.txt", "k")
	write(t, dir, "rebuild.txt", "r")
	write(t, dir, "nested/build/lost.txt", "l")
	write(t, dir, "build/also-lost.txt", "a")

	c := collect(t, Config{Root: dir, ExcludePatterns: []string{"build"}})
	files := c.Files()
	if _, ok := files["keep.txt"]; !ok {
		t.Fatal("keep.txt missing")
	}
	if _, ok := files["rebuild.txt"]; !ok {
		t.Fatal("pattern must match base names, not substrings: rebuild.txt missing")
	}
	for p := range files {
		if filepath.Base(filepath.Dir(p)) == "build" {
			t.Fatalf("excluded subtree leaked: %s", p)
		}
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
}

func TestCollect_ExcludeGlobPatterns(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.txt", "a")
	write(t, dir, "b.tmp", "b")
	write(t, dir, "deep/c.tmp", "c")

	c := collect(t, Config{Root: dir, ExcludePatterns: []string{"*.tmp"}})
	if len(c.Files()) != 1 {
		t.Fatalf("expected only a.txt, got %v", c.Files())
	}
}

func TestCollect_RootExcluded(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "scratch")
	write(t, dir, "scratch/a.txt", "a")

	c := collect(t, Config{Root: sub, ExcludePatterns: []string{"scratch"}})
	if len(c.Files()) != 0 {
		t.Fatalf("excluded root must collect nothing, got %v", c.Files())
	}
}

func TestCollect_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "only.java", "world")

	c := collect(t, Config{Root: filepath.Join(dir, "only.java")})
	id, ok := c.Files()["only.java"]
	if !ok || id.Category != types.CatSource {
		t.Fatalf("single-file root: %v", c.Files())
	}
}

func TestCollect_FailFastOnUnreadableFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks")
	}
	dir := t.TempDir()
	write(t, dir, "ok.txt", "fine")
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")); err != nil {
		t.Fatal(err)
	}

	c, err := New(Config{Root: dir}, classify.Default())
	if err != nil {
		t.Fatal(err)
	}
	err = c.Collect(context.Background())
	var cerr *CollectionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CollectionError, got %v", err)
	}
}

func TestCollect_KeepGoingRecordsErrors(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks")
	}
	dir := t.TempDir()
	write(t, dir, "ok.txt", "fine")
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "dangling")); err != nil {
		t.Fatal(err)
	}

	c, err := New(Config{Root: dir, KeepGoing: true}, classify.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Collect(context.Background()); err != nil {
		t.Fatalf("keep-going run should not abort: %v", err)
	}
	if _, ok := c.Files()["ok.txt"]; !ok {
		t.Fatal("readable file missing from keep-going run")
	}
	if len(c.Errors()) != 1 {
		t.Fatalf("expected 1 recorded error, got %v", c.Errors())
	}
}

func TestCollect_SymlinkCycleTerminates(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks")
	}
	dir := t.TempDir()
	write(t, dir, "sub/a.txt", "a")
	if err := os.Symlink(dir, filepath.Join(dir, "sub", "loop")); err != nil {
		t.Fatal(err)
	}

	c := collect(t, Config{Root: dir})
	if _, ok := c.Files()["sub/a.txt"]; !ok {
		t.Fatalf("expected sub/a.txt, got %v", c.Files())
	}
}

func TestCollect_ContextCanceled(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.txt", "a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := New(Config{Root: dir}, classify.Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Collect(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCollect_MetadataAndLicenses(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.txt", "a")
	meta := types.FileMetadata{
		License:          "Apache-2.0",
		ConcludedLicense: "MIT",
		Copyright:        "Copyright 2014 Example",
		Contributors:     []string{"Example Dev"},
	}

	c := collect(t, Config{Root: dir, Metadata: meta})
	id := c.Files()["a.txt"]
	if id.Metadata.License != "Apache-2.0" || id.Metadata.Copyright != "Copyright 2014 Example" {
		t.Fatalf("metadata not attached verbatim: %+v", id.Metadata)
	}
	lic := c.Licenses()
	if len(lic) != 2 || lic[0] != "Apache-2.0" || lic[1] != "MIT" {
		t.Fatalf("licenses=%v", lic)
	}
}

func TestVerificationCode_PriorExcluded(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "a.txt", "hello")
	write(t, dir, "manifest.spdx", "world")

	c := collect(t, Config{Root: dir})
	code := c.VerificationCode("manifest.spdx")
	if len(code.ExcludedPaths) != 1 || code.ExcludedPaths[0] != "manifest.spdx" {
		t.Fatalf("excluded paths=%v", code.ExcludedPaths)
	}
	// only a.txt's checksum remains: sha1(sha1("hello"))
	if code.Value != "9cf5caf6c36f5cccde8c73fad8894c958f4983da" {
		t.Fatalf("code=%s", code.Value)
	}
	// names never collected are not reported as excluded
	code = c.VerificationCode("not-there")
	if len(code.ExcludedPaths) != 0 {
		t.Fatalf("phantom exclusion: %v", code.ExcludedPaths)
	}
}

func TestNew_UnknownAlgorithm(t *testing.T) {
	_, err := New(Config{Root: ".", Algorithm: "md5"}, classify.Default())
	if err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(Config{Root: ".", ExcludePatterns: []string{"["}}, classify.Default())
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}
