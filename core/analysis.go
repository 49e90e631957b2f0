package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/internal/outwriter"
	"github.com/mosegui/lookout/schema"
)

// complexityCacheVersion invalidates cached analyzer output when the cached
// representation changes.
const complexityCacheVersion = 1

// RunRanking executes the full pipeline and returns the complete ranking:
// churn collection, file walk, per-file complexity analysis, join, score,
// and ordering. Collaborator failures abort the run; degenerate analyzer
// data flows through as undefined metrics.
func RunRanking(ctx context.Context, cfg *contract.Config, client contract.GitClient, analyzer contract.ComplexityAnalyzer, mgr contract.CacheManager) ([]schema.RefactoringEntry, error) {
	records, err := CollectChurn(ctx, client, cfg)
	if err != nil {
		return nil, err
	}

	files, err := ListSourceFiles(cfg)
	if err != nil {
		return nil, err
	}

	// The HEAD hash scopes cache keys to the repository state. Without it
	// (e.g. detached worktree oddities) analysis still works, uncached.
	var store contract.CacheStore
	repoHash, err := client.GetRepoHash(ctx, cfg.TargetDir)
	if err != nil {
		contract.LogWarn("complexity cache disabled", err)
	} else if mgr != nil {
		store = mgr.GetComplexityStore()
	}

	complexity, err := analyzeComplexity(ctx, cfg, analyzer, store, repoHash, files)
	if err != nil {
		return nil, err
	}

	entries := BuildEntries(ChurnMap(records), complexity)
	return Rank(entries), nil
}

// ExecuteRank runs the ranking pipeline, records it in the analysis store
// when one is configured, and writes the results in the configured format.
func ExecuteRank(ctx context.Context, cfg *contract.Config, client contract.GitClient, analyzer contract.ComplexityAnalyzer, mgr contract.CacheManager) error {
	started := time.Now()

	// Run tracking is an optimization, never a reason to fail the batch.
	var runID int64
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	if analysisStore != nil {
		params := map[string]any{
			"target_dir":   cfg.TargetDir,
			"extension":    cfg.Extension,
			"workers":      cfg.Workers,
			"result_limit": cfg.ResultLimit,
		}
		id, err := analysisStore.BeginRun(started, params)
		if err != nil {
			contract.LogWarn("analysis tracking unavailable", err)
		} else {
			runID = id
		}
	}

	ranked, err := RunRanking(ctx, cfg, client, analyzer, mgr)
	if err != nil {
		return err
	}

	if analysisStore != nil && runID > 0 {
		for i, e := range ranked {
			if err := analysisStore.RecordEntry(runID, i+1, e); err != nil {
				contract.LogWarn("failed to record ranking entry", err)
				break
			}
		}
		if err := analysisStore.EndRun(runID, time.Now(), len(ranked)); err != nil {
			contract.LogWarn("failed to finalize analysis tracking", err)
		}
	}

	if cfg.ResultLimit > 0 && len(ranked) > cfg.ResultLimit {
		ranked = ranked[:cfg.ResultLimit]
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteRanking(ranked, cfg, time.Since(started)); err != nil {
		return err
	}
	if cfg.Plot {
		if err := ow.WriteScatter(ranked, cfg); err != nil {
			return err
		}
		fmt.Printf("Wrote scatter plot to %s\n", cfg.PlotFile)
	}
	return nil
}

// analyzeComplexity fans the analyzer out across files and reduces each
// member list to a module complexity, keyed by absolute path. Per-file
// analyses are independent, so the fan-out cannot change observable output;
// results are merged into a single map before scoring.
func analyzeComplexity(ctx context.Context, cfg *contract.Config, analyzer contract.ComplexityAnalyzer, store contract.CacheStore, repoHash string, files []string) (map[string]schema.Metric, error) {
	var (
		mu       sync.Mutex
		firstErr error
		results  = make(map[string]schema.Metric, len(files))
	)

	jobs := make(chan string)
	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				members, err := analyzeWithCache(ctx, analyzer, store, repoHash, path)
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
				} else {
					results[path] = WeightedComplexity(members)
				}
				mu.Unlock()
			}
		}()
	}
	for _, f := range files {
		jobs <- f
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// analyzeWithCache consults the complexity cache before invoking the
// analyzer. Cache failures degrade to a fresh analysis.
func analyzeWithCache(ctx context.Context, analyzer contract.ComplexityAnalyzer, store contract.CacheStore, repoHash, path string) ([]schema.ComplexityMember, error) {
	key := complexityCacheKey(repoHash, path)
	if store != nil && repoHash != "" {
		if data, version, _, err := store.Get(key); err == nil && version == complexityCacheVersion {
			var members []schema.ComplexityMember
			if err := json.Unmarshal(data, &members); err == nil {
				return members, nil
			}
		}
	}

	members, err := analyzer.Analyze(ctx, path)
	if err != nil {
		return nil, err
	}

	if store != nil && repoHash != "" {
		if data, err := json.Marshal(members); err == nil {
			if err := store.Set(key, data, complexityCacheVersion, time.Now().Unix()); err != nil {
				contract.LogWarn("complexity cache write failed", err)
			}
		}
	}
	return members, nil
}

// complexityCacheKey scopes cached analyzer output to a repository state.
func complexityCacheKey(repoHash, path string) string {
	return fmt.Sprintf("complexity:%s:%s", repoHash, path)
}
