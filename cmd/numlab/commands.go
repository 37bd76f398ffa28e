package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/numlab/internal/analysis"
	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/linalg"
	"github.com/san-kum/numlab/internal/precision"
	"github.com/san-kum/numlab/internal/storage"
	"github.com/san-kum/numlab/internal/viz"
	"github.com/san-kum/numlab/internal/waveform"
	"github.com/spf13/cobra"
)

// resolveConfig loads the config file, applies the preset, then the flags
// the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		slog.Debug("loaded config", "file", configFile)
	}

	if preset != "" {
		section, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset %q: expected section/name", preset)
		}
		apply, ok := config.Presets[section][name]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (available for %s: %s)",
				preset, section, strings.Join(config.ListPresets(section), ", "))
		}
		apply(cfg)
		slog.Debug("applied preset", "section", section, "name", name)
	}

	if cmd.Flags().Changed("verify") {
		cfg.Verify = verify
	}
	if cmd.Flags().Changed("shared-factors") {
		cfg.Linear.SharedFactors = sharedFactors
	}
	return cfg, nil
}

func newExperiment(cfg *config.Config) *experiment.Experiment {
	return experiment.New(cfg, experiment.WithLogger(slog.Default()))
}

func reportOptions() viz.ReportOptions {
	opts := viz.DefaultReportOptions()
	opts.Plots = plot
	return opts
}

// report prints each result, stores it when --save is set and fails when a
// check did not pass.
func report(cmd *cobra.Command, cfg *config.Config, results ...*experiment.Result) error {
	out := cmd.OutOrStdout()
	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	var failed []string
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out, viz.Separator(60))
		}
		if err := viz.RenderReport(out, res, reportOptions()); err != nil {
			return err
		}
		if st != nil {
			id, err := st.Save(res, cfg.Verify)
			if err != nil {
				return err
			}
			slog.Info("stored run", "id", id)
			fmt.Fprintf(out, "saved: %s\n", id)
		}
		if !res.Passed() {
			failed = append(failed, res.Section)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("self-checks failed in: %s", strings.Join(failed, ", "))
	}
	return nil
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := newExperiment(cfg).RunAll(ctx, args...)
	if err := report(cmd, cfg, results...); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func nearValues(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tLOWER\tUPPER\tFRACTIONAL RANGE\tMUTUAL")

	for _, arg := range args {
		r, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", arg, err)
		}
		nb, err := precision.Near(r)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.6g\t%s\n",
			viz.FormatFloat(r),
			viz.FormatFloat(nb.Lower),
			viz.FormatFloat(nb.Upper),
			nb.FracRange,
			viz.CheckMark(precision.Check(r) == nil),
		)
	}
	return w.Flush()
}

func solveSystem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		sys, err := config.LoadSystem(args[0])
		if err != nil {
			return err
		}
		shared := cfg.Linear.SharedFactors || sys.SharedFactors
		cfg.Linear = sys
		cfg.Linear.SharedFactors = shared
		slog.Debug("loaded system", "file", args[0], "size", len(sys.A))
	}

	res, err := newExperiment(cfg).Run(cmd.Context(), "linear")
	if err != nil {
		return err
	}
	return report(cmd, cfg, res)
}

func integrateCircuit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("method") {
		cfg.Circuit.Method = method
	}
	if cmd.Flags().Changed("samples") {
		cfg.Circuit.Samples = samples
	}
	if cmd.Flags().Changed("end") {
		cfg.Circuit.Stop = end
	}
	switch input {
	case "step":
		cfg.Circuit.Periods = nil
	case "square":
		if cmd.Flags().Changed("period") || len(cfg.Circuit.Periods) == 0 {
			cfg.Circuit.Periods = []float64{period}
		}
	default:
		return fmt.Errorf("unknown input %q (step, square)", input)
	}

	res, err := newExperiment(cfg).Run(cmd.Context(), "circuit")
	if err != nil {
		return err
	}
	return report(cmd, cfg, res)
}

func compareMethods(cmd *cobra.Command, args []string) error {
	if !(end > 0) {
		return fmt.Errorf("end must be positive, got %g", end)
	}
	counts := []int{401, 801, 1601}
	if len(args) > 0 {
		counts = counts[:0]
		for _, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid sample count %q: %w", arg, err)
			}
			counts = append(counts, n)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing methods on the step response over [0, %g]\n\n", end)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSAMPLES\tDT\tMEAN REL ERROR\tORDER\tTIME")

	for _, m := range integrators.Methods() {
		prev := 0.0
		for i, n := range counts {
			t := waveform.Linspace(0, end, n)
			if len(t) < integrators.MinSamples {
				return fmt.Errorf("%w: need at least %d samples, got %d", integrators.ErrTooFewSamples, integrators.MinSamples, n)
			}
			h := t[1] - t[0]

			start := time.Now()
			vout, err := integrators.Integrate(t, waveform.Step(t), waveform.Step(waveform.Shift(t, h/2)), m)
			elapsed := time.Since(start)
			if err != nil {
				return err
			}

			mean, _, err := analysis.MeanRelativeError(vout, waveform.Decay(t))
			if err != nil {
				return err
			}
			order := "-"
			if i > 0 {
				order = fmt.Sprintf("%.3f", analysis.ConvergenceOrder(prev, mean))
			}
			prev = mean

			fmt.Fprintf(w, "%s\t%d\t%.4g\t%.3e\t%s\t%v\n", m, n, h, mean, order, elapsed.Round(time.Microsecond))
		}
	}
	return w.Flush()
}

func benchKernel(cmd *cobra.Command, args []string) error {
	if repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", repeat)
	}
	rng := rand.New(rand.NewSource(42))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking LU kernel (verify=%t, %d repetitions)\n\n", benchVerify, repeat)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tOPERATION\tSHARED\tTIME/OP")

	for _, n := range sizes {
		if n < 1 {
			return fmt.Errorf("size must be positive, got %d", n)
		}
		a, b := dominantSystem(rng, n)

		for _, shared := range []bool{false, true} {
			k := linalg.New(linalg.WithVerification(benchVerify), linalg.WithSharedFactors(shared))
			ops := []struct {
				name string
				fn   func() error
			}{
				{"factorize", func() error { _, err := k.Factorize(a); return err }},
				{"determinant", func() error { _, err := k.Determinant(a); return err }},
				{"solve", func() error { _, err := k.Solve(a, b); return err }},
				{"inverse", func() error { _, err := k.Inverse(a); return err }},
			}
			for _, op := range ops {
				if shared && op.name != "inverse" {
					continue
				}
				start := time.Now()
				for i := 0; i < repeat; i++ {
					if err := op.fn(); err != nil {
						return fmt.Errorf("%s n=%d: %w", op.name, n, err)
					}
				}
				perOp := time.Since(start) / time.Duration(repeat)
				fmt.Fprintf(w, "%d\t%s\t%t\t%v\n", n, op.name, shared, perOp)
			}
		}
	}
	return w.Flush()
}

// dominantSystem returns a random diagonally dominant n x n system, which
// factorizes without pivoting.
func dominantSystem(rng *rand.Rand, n int) (linalg.Matrix, linalg.Vector) {
	a := linalg.NewMatrix(n)
	b := make(linalg.Vector, n)
	for i := range a {
		for j := range a[i] {
			a[i][j] = rng.Float64()*2 - 1
		}
		a[i][i] = float64(n) + 1
		b[i] = rng.Float64()
	}
	return a, b
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSECTION\tTIME\tDURATION\tVERIFY\tCHECKS")

	for _, run := range runs {
		passed := 0
		for _, c := range run.Checks {
			if c.Passed {
				passed++
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%t\t%d/%d\n",
			run.ID,
			run.Section,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration.Round(time.Microsecond),
			run.Verify,
			passed, len(run.Checks),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("run %s has no series to plot", runID)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "section: %s (%s)\n", meta.Section, meta.Title)
	fmt.Fprintf(out, "series: %d\n\n", len(series))

	for _, s := range series {
		if len(s.Y) < 2 {
			continue
		}
		caption := fmt.Sprintf("%s  (x: %s .. %s)", s.Name, viz.FormatFloat(s.X[0]), viz.FormatFloat(s.X[len(s.X)-1]))
		graph := asciigraph.Plot(s.Y,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(cmd.OutOrStdout(), args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sections := experiment.NewRegistry().Names()
	if len(args) == 1 {
		sections = args[:1]
	}

	for _, section := range sections {
		names := config.ListPresets(section)
		if names == nil {
			return fmt.Errorf("no presets for %q", section)
		}
		fmt.Fprintf(out, "presets for %s:\n", section)
		for _, name := range names {
			fmt.Fprintf(out, "  %s/%s\n", section, name)
		}
	}
	return nil
}

func listSections(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTITLE")
	for _, s := range experiment.NewRegistry().List() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, s.Title)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Log lines would corrupt the alternate screen.
	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	exp := experiment.New(cfg, experiment.WithLogger(quiet))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	return viz.RunBrowser(exp, exp.Registry().List(), st, cfg.Verify)
}
