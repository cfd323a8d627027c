package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"benchkit/internal/benchmark"
	"benchkit/internal/config"
	"benchkit/internal/outputter"
	"benchkit/internal/samples"
	"benchkit/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var exit = os.Exit

var registerSamples sync.Once

// closeLogger releases the log file opened by initConfig.
var closeLogger = func() error { return nil }

// registry returns the registry the root command runs. Tests replace it.
var registry = func() (*benchmark.Registry, error) {
	var err error
	registerSamples.Do(func() {
		err = samples.Register(benchmark.Default())
	})
	return benchmark.Default(), err
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(os.Stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	err := newRootCmd().Execute()
	closeLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'benchkit --help' for usage.")
		exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "benchkit",
		Short: "Run registered micro-benchmarks",
		Long: `benchkit runs every registered benchmark a fixed number of times and
reports run and iteration statistics to one or more outputs.

Filters use the form positive[-negative], each side a ':' separated list of
wildcard patterns matched against Fixture.Test names.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
		RunE: runBenchmarks,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ./benchkit.yaml)")
	pf.BoolP("verbose", "v", false, "Enable verbose/debug logging")
	pf.String("log-file", "", "Also write logs to this file")

	f := rootCmd.Flags()
	f.BoolP("list", "l", false, "List benchmarks without running them")
	f.StringP("filter", "f", "", "Glob filter positive[-negative] on Fixture.Test names")
	f.StringArray("include", nil, "Only run benchmarks whose name contains this substring (repeatable)")
	f.BoolP("shuffle", "s", false, "Run benchmarks in random order")
	f.Uint64("seed", 0, "Shuffle seed (0 picks a random seed)")
	f.StringArrayP("output", "o", []string{"console"}, "Output as <format>[:<path>], formats: "+strings.Join(outputter.Formats, ", ")+" (repeatable)")
	f.BoolP("color", "c", true, "Colour console output")

	bindFlags(pf, map[string]string{
		"verbose":  config.KeyVerbose,
		"log-file": config.KeyLogFile,
	})
	bindFlags(f, map[string]string{
		"filter":  config.KeyFilter,
		"include": config.KeyInclude,
		"shuffle": config.KeyShuffle,
		"seed":    config.KeySeed,
		"output":  config.KeyOutput,
		"color":   config.KeyColor,
	})

	rootCmd.AddCommand(newHistoryCmd(), newVersionCmd())
	return rootCmd
}

// bindFlags binds each named flag of fs to its viper key.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		viper.BindPFlag(key, fs.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables and sets up logging.
func initConfig(cfgFile string) error {
	if err := config.Load(cfgFile); err != nil {
		return err
	}
	if err := config.ValidateConfig(); err != nil {
		return err
	}
	cfg := config.Current()
	closeLogger()
	_, closeLogger = telemetry.InitLogger(cfg.Verbose, cfg.LogFile)
	return nil
}

func runBenchmarks(cmd *cobra.Command, args []string) error {
	cfg := config.Current()
	out := cmd.OutOrStdout()

	reg, err := registry()
	if err != nil {
		return fmt.Errorf("failed to register benchmarks: %w", err)
	}

	if cfg.Filter != "" {
		if err := reg.ApplyPatternFilter(cfg.Filter); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}
	for _, s := range cfg.Include {
		reg.AddIncludeFilter(s)
	}

	if listFlag(cmd) {
		return listBenchmarks(out, reg)
	}

	if cfg.Shuffle {
		seed := cfg.Seed
		if seed == 0 {
			seed = rand.Uint64()
		}
		slog.Info("shuffling benchmarks", "seed", seed)
		reg.ShuffleTests(rand.New(rand.NewPCG(seed, seed)))
	}

	sinks, openErr := outputter.OpenAll(resolveOutputs(cfg), out, outputter.Options{
		Color:   cfg.Color,
		PushJob: cfg.PushJob,
		Logger:  slog.Default(),
	})
	var usage *outputter.UsageError
	if errors.As(openErr, &usage) {
		return openErr
	}

	outs := make([]outputter.Outputter, len(sinks))
	for i, s := range sinks {
		outs[i] = s
	}
	reg.RunAllTests(outs...)

	errs := []error{openErr}
	for _, s := range sinks {
		if err := s.Err(); err != nil {
			errs = append(errs, fmt.Errorf("output %s: %w", s.Format, err))
		}
	}
	errs = append(errs, outputter.CloseAll(sinks))
	return errors.Join(errs...)
}

func listFlag(cmd *cobra.Command) bool {
	list, _ := cmd.Flags().GetBool("list")
	return list
}

func listBenchmarks(w io.Writer, reg *benchmark.Registry) error {
	for _, d := range reg.ListTests() {
		if _, err := fmt.Fprintln(w, d.DisplayName()); err != nil {
			return err
		}
	}
	return nil
}

// resolveOutputs points a bare "history" output at the configured store.
func resolveOutputs(cfg config.Config) []string {
	specs := make([]string, len(cfg.Output))
	for i, spec := range cfg.Output {
		if strings.EqualFold(strings.TrimSpace(spec), "history") && cfg.HistoryStore != "" {
			spec = "history:" + cfg.HistoryStore
		}
		specs[i] = spec
	}
	return specs
}
