// Package radon invokes the radon CLI, the external cyclomatic-complexity
// analyzer, and maps its JSON report onto the lookout member model. lookout
// never parses source itself; every structural fact comes from here.
package radon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/schema"
)

// Analyzer shells out to the 'radon' executable for each file.
type Analyzer struct {
	bin string
}

var _ contract.ComplexityAnalyzer = &Analyzer{} // Compile-time check

// NewAnalyzer creates an analyzer backed by the given radon executable.
// An empty bin falls back to "radon" on the PATH.
func NewAnalyzer(bin string) *Analyzer {
	if bin == "" {
		bin = contract.DefaultRadonBin
	}
	return &Analyzer{bin: bin}
}

// Analyze implements the ComplexityAnalyzer interface. It runs
// 'radon cc -j <path>' and decodes the per-file report.
func (a *Analyzer) Analyze(ctx context.Context, path string) ([]schema.ComplexityMember, error) {
	cmd := exec.CommandContext(ctx, a.bin, "cc", "-j", path)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("radon failed on %q: %s", path, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("radon invocation failed: %w. Ensure radon is installed (pip install radon) and on your PATH", err)
	}
	return ParseReport(out, path)
}

// blockJSON mirrors one entry of radon's JSON report for a file.
type blockJSON struct {
	Type       string  `json:"type"`
	Rank       string  `json:"rank"`
	Name       string  `json:"name"`
	ClassName  string  `json:"classname"`
	Complexity float64 `json:"complexity"`
	LineNo     int     `json:"lineno"`
	EndLine    int     `json:"endline"`
}

// ParseReport decodes a radon JSON report into members. The report maps the
// file path to either a list of blocks or, for files radon could not parse,
// an object carrying an "error" key. The error form is degenerate data, not
// a failure: it decodes to an empty member list so the aggregator produces
// an undefined complexity for the file.
func ParseReport(report []byte, path string) ([]schema.ComplexityMember, error) {
	var byFile map[string]json.RawMessage
	if err := json.Unmarshal(report, &byFile); err != nil {
		return nil, fmt.Errorf("malformed radon report for %q: %w", path, err)
	}

	raw, ok := byFile[path]
	if !ok {
		// radon keys the report by the path it was given; when invoked with a
		// single file the sole entry is ours regardless of normalization.
		if len(byFile) != 1 {
			return nil, fmt.Errorf("radon report does not mention %q", path)
		}
		for _, v := range byFile {
			raw = v
		}
	}

	var blocks []blockJSON
	if err := json.Unmarshal(raw, &blocks); err != nil {
		var failure struct {
			Error string `json:"error"`
		}
		if jsonErr := json.Unmarshal(raw, &failure); jsonErr == nil && failure.Error != "" {
			return nil, nil
		}
		return nil, fmt.Errorf("malformed radon report for %q: %w", path, err)
	}

	members := make([]schema.ComplexityMember, 0, len(blocks))
	for _, b := range blocks {
		kind := schema.MemberKind(b.Type)
		switch kind {
		case schema.FunctionMember, schema.MethodMember, schema.ClassMember:
		default:
			continue
		}
		members = append(members, schema.ComplexityMember{
			Name:       b.Name,
			ClassName:  b.ClassName,
			Kind:       kind,
			Rank:       b.Rank,
			Complexity: b.Complexity,
			StartLine:  b.LineNo,
			EndLine:    b.EndLine,
		})
	}
	return members, nil
}
