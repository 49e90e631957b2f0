package cmd

import (
	"github.com/mosegui/lookout/core"
	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/internal/radon"
	"github.com/spf13/cobra"
)

// rankCmd performs the churn-vs-complexity ranking.
var rankCmd = &cobra.Command{
	Use:   "rank [target-dir]",
	Short: "Show the files most in need of refactoring.",
	Long: `Rank source files by refactoring priority.

Combines two signals for every source file in the target directory:
- Churn: how often the file changed across the Git history
- Complexity: the length-weighted cyclomatic complexity of its members

The product of both is the refactoring score. Files that are both complex
and frequently edited rise to the top; files whose complexity cannot be
measured (empty or unparsable) sink to the bottom, ordered by churn.

Requires the 'radon' analyzer on your PATH (pip install radon).

Examples:
  # Rank the Python files of the current repository
  lookout rank

  # Rank a specific directory, showing the top 10
  lookout rank ~/src/myproject --limit 10

  # Export findings to CSV for tracking
  lookout rank --output csv --output-file priorities.csv

  # Render a churn-vs-complexity scatter plot
  lookout rank --plot --plot-file myproject.png`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewLocalGitClient()
		analyzer := radon.NewAnalyzer(cfg.RadonBin)
		if err := core.ExecuteRank(rootCtx, cfg, client, analyzer, cacheManager); err != nil {
			contract.LogFatal("Cannot run ranking", err)
		}
	},
}
