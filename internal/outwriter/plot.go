package outwriter

import (
	"errors"
	"os"

	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/schema"

	chart "github.com/wcharczuk/go-chart"
)

// Dot sizing for the scatter plot. Each point is scaled by its score so that
// the riskiest files dominate the picture, with a floor so low scorers stay
// visible.
const (
	scoreDotScale = 0.1
	minDotWidth   = 2.0
	maxDotWidth   = 40.0
)

// WriteScatterPlot renders the churn-vs-complexity scatter to cfg.PlotFile as
// a PNG. Each entry becomes one dot at (churn, complexity), sized by score.
// Entries with undefined complexity have no position on the Y axis and are
// left out of the plot.
func WriteScatterPlot(entries []schema.RefactoringEntry, cfg *contract.Config) error {
	var xs, ys, sizes []float64
	for _, e := range entries {
		if !e.Complexity.IsDefined() {
			continue
		}
		xs = append(xs, float64(e.Churn))
		ys = append(ys, e.Complexity.Float64())
		sizes = append(sizes, dotWidthForScore(e.Score))
	}
	if len(xs) == 0 {
		return errors.New("no scoreable files to plot")
	}

	series := chart.ContinuousSeries{
		Name:    "Files",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			Show:        true,
			StrokeWidth: chart.Disabled,
			DotColor:    chart.ColorBlue,
			DotWidthProvider: func(xr, yr chart.Range, index int, x, y float64) float64 {
				return sizes[index]
			},
		},
	}

	graph := chart.Chart{
		Title:      "Churn vs. Complexity",
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      "Churn",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      "Complexity",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{series},
	}

	f, err := os.Create(cfg.PlotFile)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return graph.Render(chart.PNG, f)
}

// dotWidthForScore maps a score onto a clamped dot width. Undefined scores
// get the floor width.
func dotWidthForScore(score schema.Metric) float64 {
	if !score.IsDefined() {
		return minDotWidth
	}
	w := score.Float64() * scoreDotScale
	if w < minDotWidth {
		return minDotWidth
	}
	if w > maxDotWidth {
		return maxDotWidth
	}
	return w
}
