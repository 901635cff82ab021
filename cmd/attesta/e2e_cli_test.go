package attesta

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestCLI_Collect_JSON_Shape(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.java"), []byte("world"), 0o644); err != nil {
		t.Fatal(err)
	}
	// run as subprocess to avoid os.Exit in-process
	cmd := exec.Command("go", "run", ".", "collect", "--json", "--no-audit", "-p", dir)
	cmd.Dir = filepath.Clean(filepath.Join("..", ".."))
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	var doc struct {
		Files map[string]struct {
			Category string `json:"category"`
			Checksum string `json:"checksum"`
		} `json:"files"`
		VerificationCode struct {
			Value string `json:"value"`
		} `json:"verification_code"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("json unmarshal: %v\n%s", err, out.String())
	}
	if len(doc.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(doc.Files))
	}
	if doc.Files["b.java"].Category != "source" {
		t.Fatalf("b.java category=%q", doc.Files["b.java"].Category)
	}
	if doc.VerificationCode.Value != "163fc59f1d66d9237bab8ad77cd27a31c3f8e67c" {
		t.Fatalf("verification code=%q", doc.VerificationCode.Value)
	}
}

func TestCLI_Verify_MatchAndMismatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	repoRoot := filepath.Clean(filepath.Join("..", ".."))

	ok := exec.Command("go", "run", ".", "verify", "-p", dir, "--expect", "9cf5caf6c36f5cccde8c73fad8894c958f4983da")
	ok.Dir = repoRoot
	if out, err := ok.CombinedOutput(); err != nil {
		t.Fatalf("verify should match: %v\n%s", err, out)
	}

	bad := exec.Command("go", "run", ".", "verify", "-p", dir, "--expect", "da39a3ee5e6b4b0d3255bfef95601890afd80709")
	bad.Dir = repoRoot
	if err := bad.Run(); err == nil {
		t.Fatal("verify should fail on mismatching code")
	}
}
