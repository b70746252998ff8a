// Package testutil provides shared helpers for tests, most notably
// temporary directories grouped under a single per-run parent so leftover
// artifacts from failed runs are easy to find and sweep.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

var (
	testRunDirOnce sync.Once
	testRunDir     string
)

// GetTestRunDir returns the directory that holds all temporary directories
// created by this test run. The directory is created on first use and is
// stable for the lifetime of the process.
func GetTestRunDir() string {
	testRunDirOnce.Do(func() {
		base := filepath.Join(os.TempDir(), "rmf-workcell-test-runs")
		run := fmt.Sprintf("run-%s-%d", time.Now().Format("20060102-150405"), os.Getpid())
		testRunDir = filepath.Join(base, run)
		if err := os.MkdirAll(testRunDir, 0o755); err != nil {
			// Fall back to the system temp dir; tests will still work,
			// they just lose the per-run grouping.
			testRunDir = os.TempDir()
		}
	})
	return testRunDir
}

// TempDir creates a temporary directory under the test run directory using
// the given pattern and removes it when the test completes.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()

	dir, err := os.MkdirTemp(GetTestRunDir(), pattern)
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		os.RemoveAll(dir)
	})

	return dir
}
