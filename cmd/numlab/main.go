package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/numlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	theme   string
	// Config resolution
	configFile    string
	preset        string
	verify        bool
	sharedFactors bool
	// Report output
	plot bool
	save bool
	// integrate and compare
	method  string
	samples []int
	end     float64
	input   string
	period  float64
	// bench
	sizes       []int
	repeat      int
	benchVerify bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "numlab",
		Short:         "numerical methods lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			viz.SetTheme(theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".numlab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "colour theme")

	addConfigFlags := func(c *cobra.Command) {
		c.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
		c.Flags().StringVarP(&preset, "preset", "p", "", "preset as section/name")
		c.Flags().BoolVar(&verify, "verify", true, "run the kernel self-checks")
		c.Flags().BoolVar(&sharedFactors, "shared-factors", false, "factorize once per matrix")
	}

	runCmd := &cobra.Command{
		Use:   "run [section...]",
		Short: "run sections and print their reports",
		RunE:  runSections,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot series")
	runCmd.Flags().BoolVar(&save, "save", false, "store the results")

	nearCmd := &cobra.Command{
		Use:   "near [value...]",
		Short: "nearest representable neighbours of positive values",
		Args:  cobra.MinimumNArgs(1),
		RunE:  nearValues,
	}

	solveCmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "factorize, solve and invert a linear system",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveSystem,
	}
	addConfigFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "store the result")

	integrateCmd := &cobra.Command{
		Use:   "integrate",
		Short: "integrate the RC low-pass circuit",
		RunE:  integrateCircuit,
	}
	addConfigFlags(integrateCmd)
	integrateCmd.Flags().StringVarP(&method, "method", "m", "RK4", "integration method (AB4, RK4)")
	integrateCmd.Flags().IntSliceVarP(&samples, "samples", "n", []int{401, 801, 1601}, "sample counts")
	integrateCmd.Flags().Float64Var(&end, "end", 40, "end time")
	integrateCmd.Flags().StringVar(&input, "input", "step", "input waveform (step, square)")
	integrateCmd.Flags().Float64Var(&period, "period", 2, "square wave period")
	integrateCmd.Flags().BoolVar(&plot, "plot", true, "plot series")
	integrateCmd.Flags().BoolVar(&save, "save", false, "store the result")

	compareCmd := &cobra.Command{
		Use:   "compare [samples...]",
		Short: "compare integration methods on the step response",
		RunE:  compareMethods,
	}
	compareCmd.Flags().Float64Var(&end, "end", 40, "end time")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time the LU kernel",
		RunE:  benchKernel,
	}
	benchCmd.Flags().IntSliceVar(&sizes, "sizes", []int{5, 20, 80}, "matrix sizes")
	benchCmd.Flags().IntVar(&repeat, "repeat", 20, "repetitions per operation")
	benchCmd.Flags().BoolVar(&benchVerify, "verify", false, "run the kernel self-checks")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the series of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [section]",
		Short: "list config presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	sectionsCmd := &cobra.Command{
		Use:   "sections",
		Short: "list sections",
		RunE:  listSections,
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write the resolved config to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	addConfigFlags(initCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive section browser",
		RunE:  runTUI,
	}
	addConfigFlags(tuiCmd)

	rootCmd.AddCommand(runCmd, nearCmd, solveCmd, integrateCmd, compareCmd, benchCmd,
		listCmd, plotCmd, exportCmd, presetsCmd, sectionsCmd, initCmd, tuiCmd)
	return rootCmd
}
