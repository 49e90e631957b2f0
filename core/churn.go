package core

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/schema"
)

// CollectChurn asks the Git collaborator for the change history under the
// target directory and reduces it to a per-file change count. Paths are
// returned absolute and sorted ascending. History routinely names files that
// were since deleted or renamed; those are excluded because no complexity
// can ever be measured for them.
func CollectChurn(ctx context.Context, client contract.GitClient, cfg *contract.Config) ([]schema.ChurnRecord, error) {
	out, err := client.GetChangeLog(ctx, cfg.TargetDir)
	if err != nil {
		return nil, err
	}
	root, err := client.GetRepoRoot(ctx, cfg.TargetDir)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, cfg.Extension) {
			continue
		}
		// Git reports paths relative to the repository root with forward slashes.
		abs := filepath.Join(root, filepath.FromSlash(line))
		counts[filepath.Clean(abs)]++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	records := make([]schema.ChurnRecord, 0, len(counts))
	for path, count := range counts {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		records = append(records, schema.ChurnRecord{Path: path, Count: count})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})
	return records, nil
}

// ChurnMap converts churn records into a path-keyed lookup for the score engine.
func ChurnMap(records []schema.ChurnRecord) map[string]int {
	m := make(map[string]int, len(records))
	for _, r := range records {
		m[r.Path] = r.Count
	}
	return m
}
