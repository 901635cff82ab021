package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
)

// RunRecord is one line of the collection audit log: enough to tie a
// verification code back to the inputs that produced it.
type RunRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	RunID            string    `json:"run_id"`
	Root             string    `json:"root"`
	Repo             string    `json:"repo,omitempty"`
	Commit           string    `json:"commit,omitempty"`
	Branch           string    `json:"branch,omitempty"`
	Algorithm        string    `json:"algorithm"`
	TableFingerprint string    `json:"table_fingerprint"`
	FilesCollected   int       `json:"files_collected"`
	VerificationCode string    `json:"verification_code"`
	ExcludedPaths    []string  `json:"excluded_paths,omitempty"`
	Licenses         []string  `json:"licenses,omitempty"`
	FileErrors       int       `json:"file_errors,omitempty"`
	Duration         string    `json:"duration"`
}

type RunLog struct {
	logPath string
}

// NewRunLog places the log under .git when the root is a git repository,
// to keep it out of accidental commits, and in the root otherwise.
func NewRunLog(root string) *RunLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".attesta_runs.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "attesta_runs.jsonl")
	}
	return &RunLog{logPath: logPath}
}

// LoadHistory returns recorded runs, newest first.
func (l *RunLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(l.logPath)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			continue
		}
		records = append(records, record)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// LogRun appends a record to the log, assigning a run ID if absent.
func (l *RunLog) LogRun(record RunRecord) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if record.RunID == "" {
		record.RunID = runID(record.Root, record.Timestamp)
	}
	f, err := os.OpenFile(l.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("write run record: %w", err)
	}
	return nil
}

func runID(root string, ts time.Time) string {
	sum := xxhash.Sum64String(fmt.Sprintf("%s@%d", root, ts.UnixNano()))
	return fmt.Sprintf("run_%016x", sum)
}
