package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mosegui/lookout/core"
	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/internal/radon"
	"github.com/mosegui/lookout/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// rankedFile is the JSON shape returned by get_refactoring_scores.
// Undefined metrics serialize as null.
type rankedFile struct {
	Rank       int      `json:"rank"`
	Path       string   `json:"path"`
	Score      *float64 `json:"score"`
	Complexity *float64 `json:"complexity"`
	Churn      int      `json:"churn"`
}

// memberComplexity is the JSON shape returned by get_file_complexity.
type memberComplexity struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Rank       string  `json:"rank"`
	Complexity float64 `json:"complexity"`
	StartLine  int     `json:"start_line"`
	EndLine    int     `json:"end_line"`
}

func (h *toolHandler) handleGetRefactoringScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		abs, err := resolveDir(p)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid repo_path: %v", err)), nil
		}
		cfg.TargetDir = abs
	}
	if ext := request.GetString("extension", ""); ext != "" {
		if !strings.HasPrefix(ext, ".") {
			return mcp.NewToolResultError(fmt.Sprintf("extension must start with '.' (received %q)", ext)), nil
		}
		cfg.Extension = ext
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	client := contract.NewLocalGitClient()
	analyzer := radon.NewAnalyzer(cfg.RadonBin)

	ranked, err := core.RunRanking(ctx, cfg, client, analyzer, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	if cfg.ResultLimit > 0 && len(ranked) > cfg.ResultLimit {
		ranked = ranked[:cfg.ResultLimit]
	}

	output := make([]rankedFile, len(ranked))
	for i, e := range ranked {
		output[i] = rankedFile{
			Rank:       i + 1,
			Path:       e.Path,
			Score:      metricValue(e.Score),
			Complexity: metricValue(e.Complexity),
			Churn:      e.Churn,
		}
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetFileComplexity(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("file_path", "")
	if path == "" {
		return mcp.NewToolResultError("file_path is required"), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid file_path: %v", err)), nil
	}
	if _, err := os.Stat(abs); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot analyze %q: %v", path, err)), nil
	}

	analyzer := radon.NewAnalyzer(h.baseCfg.RadonBin)
	members, err := analyzer.Analyze(ctx, abs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("complexity analysis failed: %v", err)), nil
	}

	output := make([]memberComplexity, len(members))
	for i, m := range members {
		output[i] = memberComplexity{
			Name:       m.QualifiedName(),
			Kind:       string(m.Kind),
			Rank:       m.Rank,
			Complexity: m.Complexity,
			StartLine:  m.StartLine,
			EndLine:    m.EndLine,
		}
	}

	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// resolveDir normalizes a directory argument and verifies it exists.
func resolveDir(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", p)
	}
	return filepath.Clean(abs), nil
}

// metricValue converts a metric to its nullable JSON form.
func metricValue(m schema.Metric) *float64 {
	if !m.IsDefined() {
		return nil
	}
	v := m.Float64()
	return &v
}
