package viz

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/numlab/internal/experiment"
)

// ReportOptions controls how much of a result is rendered.
type ReportOptions struct {
	Plots    bool
	Width    int
	Height   int
	MaxPlots int // 0 means no limit
}

func DefaultReportOptions() ReportOptions {
	return ReportOptions{Plots: true, Width: 72, Height: 12}
}

var seriesColors = []asciigraph.AnsiColor{asciigraph.Cyan, asciigraph.Magenta}

// RenderReport writes res to w: the title, values, matrices and vectors,
// checks, and optionally plots of its series.
func RenderReport(w io.Writer, res *experiment.Result, opts ReportOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		d := DefaultReportOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s · %s", res.Section, res.Title)) + "\n\n")

	if len(res.Values) > 0 {
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, v := range res.Values {
			fmt.Fprintf(tw, "  %s\t%s\n", v.Label, FormatFloat(v.V))
		}
		tw.Flush()
		b.WriteString("\n")
	}

	for _, m := range res.Matrices {
		b.WriteString(TitleStyle.Render(m.Name) + "\n")
		b.WriteString(FormatMatrix(m.M))
		b.WriteString("\n")
	}
	for _, v := range res.Vectors {
		b.WriteString(TitleStyle.Render(v.Name) + "\n")
		b.WriteString(FormatMatrix([][]float64{v.V}))
		b.WriteString("\n")
	}

	if len(res.Checks) > 0 {
		for _, c := range res.Checks {
			line := fmt.Sprintf("  %s %s", CheckMark(c.Passed), c.Name)
			if !c.Passed && c.Detail != "" {
				line += Subtle.Render(": " + c.Detail)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if opts.Plots {
		groups := groupSeries(res.Series)
		if opts.MaxPlots > 0 && len(groups) > opts.MaxPlots {
			groups = groups[:opts.MaxPlots]
		}
		for _, g := range groups {
			b.WriteString(plotGroup(g, opts.Width, opts.Height))
			b.WriteString("\n")
		}
	}

	b.WriteString(Subtle.Render(fmt.Sprintf("completed in %s", res.Duration.Round(time.Microsecond))) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// FormatFloat prints the shortest representation that round-trips.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatMatrix prints rows right-aligned with six significant digits.
func FormatMatrix(m [][]float64) string {
	var b strings.Builder
	for _, row := range m {
		b.WriteString("  [")
		for j, v := range row {
			if j > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%12.6g", v)
		}
		b.WriteString(" ]\n")
	}
	return b.String()
}

// groupSeries pairs up consecutive series sampled on the same grid so they
// share a chart.
func groupSeries(series []experiment.Series) [][]experiment.Series {
	var groups [][]experiment.Series
	for _, s := range series {
		if len(s.Y) < 2 {
			continue
		}
		if n := len(groups); n > 0 {
			last := groups[n-1]
			if len(last) < len(seriesColors) && sameGrid(last[0], s) && uniform(s.X) {
				groups[n-1] = append(last, s)
				continue
			}
		}
		groups = append(groups, []experiment.Series{s})
	}
	return groups
}

func sameGrid(a, b experiment.Series) bool {
	if len(a.X) != len(b.X) || len(a.X) == 0 {
		return false
	}
	return a.X[0] == b.X[0] && a.X[len(a.X)-1] == b.X[len(b.X)-1]
}

// uniform reports whether x is evenly spaced to within a relative 1e-6.
func uniform(x []float64) bool {
	if len(x) < 3 {
		return true
	}
	h := x[1] - x[0]
	for i := 2; i < len(x); i++ {
		if math.Abs((x[i]-x[i-1])-h) > 1e-6*math.Abs(h) {
			return false
		}
	}
	return true
}

func plotGroup(g []experiment.Series, width, height int) string {
	first := g[0]
	caption := fmt.Sprintf("%s  (x: %s .. %s)", first.Name, FormatFloat(first.X[0]), FormatFloat(first.X[len(first.X)-1]))

	if !uniform(first.X) {
		return ScatterPlot(first.X, first.Y, width/2, height/2, first.Name)
	}
	if len(g) == 1 {
		return asciigraph.Plot(first.Y,
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(caption),
		) + "\n"
	}

	data := make([][]float64, len(g))
	names := make([]string, len(g))
	for i, s := range g {
		data[i] = s.Y
		names[i] = s.Name
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(seriesColors[:len(g)]...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption(fmt.Sprintf("x: %s .. %s", FormatFloat(first.X[0]), FormatFloat(first.X[len(first.X)-1]))),
	) + "\n"
}
