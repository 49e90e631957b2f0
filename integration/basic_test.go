//go:build basic

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLookoutVersion verifies the binary starts and reports its version.
func TestLookoutVersion(t *testing.T) {
	require.NoError(t, runLookoutCommand(t, "version"))
}

// TestLookoutHelp verifies the top-level help and the rank help render.
func TestLookoutHelp(t *testing.T) {
	require.NoError(t, runLookoutCommand(t, "--help"))
	require.NoError(t, runLookoutCommand(t, "rank", "--help"))
}

// TestLookoutRankEndToEnd builds a small Python repo with history, points the
// binary at a stub analyzer, and checks the CSV ranking it produces.
func TestLookoutRankEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	repoDir := t.TempDir()
	gitRun := func(args ...string) {
		cmd := exec.Command("git", append([]string{"-C", repoDir}, args...)...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	gitRun("init")
	appPath := filepath.Join(repoDir, "app.py")
	require.NoError(t, os.WriteFile(appPath, []byte("def f():\n    pass\n"), 0o644))
	gitRun("add", "app.py")
	gitRun("commit", "-m", "add app")
	require.NoError(t, os.WriteFile(appPath, []byte("def f():\n    return 1\n"), 0o644))
	gitRun("commit", "-am", "change app")

	// Stub analyzer that emits a fixed radon-style report for any file.
	stubPath := filepath.Join(t.TempDir(), "radon-stub")
	stub := `#!/bin/sh
path="$3"
printf '{"%s": [{"type": "function", "rank": "A", "name": "f", "complexity": 2, "lineno": 1, "endline": 3}]}' "$path"
`
	require.NoError(t, os.WriteFile(stubPath, []byte(stub), 0o755))

	outFile := filepath.Join(t.TempDir(), "ranking.csv")
	cmd := exec.Command(getLookoutBinary(), "rank", repoDir,
		"--radon-bin", stubPath,
		"--cache-backend", "none",
		"--output", "csv",
		"--output-file", outFile,
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "lookout rank: %s", output)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	csv := string(data)

	assert.Contains(t, csv, "rank,path,score,complexity,churn,label")
	assert.Contains(t, csv, "app.py")
	// Two commits touching app.py at complexity 2 give a score of 4.
	assert.Contains(t, csv, fmt.Sprintf(",%s,", "4.00"))
	assert.Equal(t, 2, len(strings.Split(strings.TrimSpace(csv), "\n")))
}
