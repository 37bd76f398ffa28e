package viz

import (
	"strings"
	"testing"
	"time"

	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/waveform"
)

func sampleResult() *experiment.Result {
	res := &experiment.Result{Section: "linear", Title: "LU decomposition", Duration: 1500 * time.Microsecond}
	res.AddValue("determinant", 712224)
	res.AddValue("upper", 0.25000000000000006)
	res.AddMatrix("lower", [][]float64{{1, 0}, {0.5, 1}})
	res.AddVector("x", []float64{0.25, -1})
	res.AddCheck("factorize", nil)
	res.Checks = append(res.Checks, experiment.Check{Name: "inverse", Detail: "entry (0,1) off by 2e-13"})

	grid := waveform.Linspace(0, 1, 50)
	res.AddSeries("gauss", grid, waveform.Gauss(grid))
	res.AddSeries("top hat", grid, waveform.TopHat(grid))
	res.AddSeries("nodes", []float64{0, 0.1, 0.5, 2}, []float64{1, 2, 1, 0})
	return res
}

func TestRenderReport(t *testing.T) {
	var b strings.Builder
	if err := RenderReport(&b, sampleResult(), ReportOptions{}); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	for _, want := range []string{
		"linear · LU decomposition",
		"determinant", "712224",
		"0.25000000000000006",
		"lower", "0.5",
		"✓ factorize",
		"✗ inverse", "off by 2e-13",
		"completed in 1.5ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "top hat") {
		t.Error("plots rendered with Plots unset")
	}
}

func TestRenderReport_Plots(t *testing.T) {
	var b strings.Builder
	opts := DefaultReportOptions()
	opts.Width, opts.Height = 40, 6
	if err := RenderReport(&b, sampleResult(), opts); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	if !strings.Contains(out, "gauss") || !strings.Contains(out, "top hat") {
		t.Errorf("overlaid legends missing:\n%s", out)
	}
	if !strings.Contains(out, "nodes") || !strings.ContainsRune(out, '┤') {
		t.Errorf("scatter plot missing:\n%s", out)
	}

	opts.MaxPlots = 1
	b.Reset()
	if err := RenderReport(&b, sampleResult(), opts); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "nodes") {
		t.Error("MaxPlots not applied")
	}
}

func TestGroupSeries(t *testing.T) {
	a := waveform.Linspace(0, 1, 11)
	b := waveform.Linspace(0, 1, 21)
	series := []experiment.Series{
		{Name: "resp", X: a, Y: a},
		{Name: "exact", X: a, Y: a},
		{Name: "third", X: a, Y: a},
		{Name: "fine", X: b, Y: b},
		{Name: "point", X: []float64{1}, Y: []float64{1}},
	}

	groups := groupSeries(series)
	sizes := make([]int, len(groups))
	for i, g := range groups {
		sizes[i] = len(g)
	}
	if len(sizes) != 3 || sizes[0] != 2 || sizes[1] != 1 || sizes[2] != 1 {
		t.Fatalf("group sizes = %v, expected [2 1 1]", sizes)
	}
	if groups[1][0].Name != "third" || groups[2][0].Name != "fine" {
		t.Errorf("unexpected grouping: %s, %s", groups[1][0].Name, groups[2][0].Name)
	}
}

func TestUniform(t *testing.T) {
	if !uniform(waveform.Linspace(-20, 20, 4001)) {
		t.Error("linspace should be uniform")
	}
	if uniform([]float64{2, 1, 0.5, 0.25}) {
		t.Error("halving sequence is not uniform")
	}
}

func TestFormatMatrix(t *testing.T) {
	got := FormatMatrix([][]float64{{1, -0.5}})
	if got != "  [           1         -0.5 ]\n" {
		t.Errorf("FormatMatrix = %q", got)
	}
}
