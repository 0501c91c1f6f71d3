package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mpint/internal/check"
	"mpint/internal/observ"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the arithmetic laws against seeded random operands",
	Long: `check runs every property (cmp, mul, divmod, gcd, shift, parse) for a number
of generated cases. Settings come from the [check] table of mpint.toml and
are overridden by flags. The command fails if any property finds a
counterexample; rerunning with the printed seed reproduces it.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	addCheckFlags(checkCmd.Flags())
}

func addCheckFlags(f *pflag.FlagSet) {
	f.Uint64("seed", 1, "random seed")
	f.Uint("cases", check.DefaultCases, "cases per property")
	f.Uint("max-digits", check.DefaultMaxDigits, "maximum decimal digits per operand")
	f.Uint("jobs", 0, "properties checked in parallel (0 = GOMAXPROCS)")
	f.StringSlice("property", nil, "check only these properties (repeatable)")
	f.String("cpu-profile", "", "write a CPU profile of the run to file")
	f.String("mem-profile", "", "write a heap profile after the run to file")
	f.String("runtime-trace", "", "write a Go runtime trace of the run to file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := checkOptions(cmd.Flags(), cfg.Check)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	useTUI := shouldUseTUI(mode) && !quiet(cmd)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	timer := observ.NewTimer()
	var report check.Report
	err = phase(ctx, timer, "check", func() error {
		var err error
		if useTUI {
			report, err = runCheckWithUI(ctx, fmt.Sprintf("check (seed %d)", opts.Seed), opts)
			return err
		}
		var sink check.Sink
		if !quiet(cmd) {
			sink = newLineSink(out)
		}
		report, err = check.Run(ctx, opts, sink)
		return err
	})
	if err != nil {
		return err
	}

	printTimings(cmd, timer)
	failures := report.Failures()
	if len(failures) == 0 {
		fmt.Fprintf(out, "%s %d properties, seed %d\n", passColor.Sprint("passed"), len(report.Results), report.Seed)
		return nil
	}
	errOut := cmd.ErrOrStderr()
	for _, f := range failures {
		fmt.Fprintf(errOut, "%s %v\n", failColor.Sprint("counterexample:"), f)
	}
	fmt.Fprintf(errOut, "%s %d of %d properties failed, seed %d\n", failColor.Sprint("failed"), len(failures), len(report.Results), report.Seed)
	dumpTraceRing(cmd, errOut)
	return errReported
}

// checkOptions layers changed flags over the config file.
func checkOptions(flags *pflag.FlagSet, cfg checkConfig) (check.Options, error) {
	if flags.Changed("seed") {
		seed, err := flags.GetUint64("seed")
		if err != nil {
			return check.Options{}, err
		}
		cfg.Seed = seed
	}
	for name, dst := range map[string]*int{"cases": &cfg.Cases, "max-digits": &cfg.MaxDigits, "jobs": &cfg.Jobs} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetUint(name)
		if err != nil {
			return check.Options{}, err
		}
		if *dst, err = safecast.Conv[int](v); err != nil {
			return check.Options{}, fmt.Errorf("--%s: %w", name, err)
		}
	}
	if flags.Changed("property") {
		props, err := flags.GetStringSlice("property")
		if err != nil {
			return check.Options{}, err
		}
		cfg.Properties = props
	}
	return cfg.options()
}

// lineSink prints one line per finished property.
type lineSink struct {
	mu  sync.Mutex
	out io.Writer
}

func newLineSink(out io.Writer) *lineSink {
	return &lineSink{out: out}
}

func (s *lineSink) OnEvent(ev check.Event) {
	var status string
	switch ev.Status {
	case check.StatusPassed:
		status = passColor.Sprint("ok  ")
	case check.StatusFailed:
		status = failColor.Sprint("FAIL")
	default:
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s %6d cases  %s\n",
		status,
		runewidth.FillRight(string(ev.Property), 8),
		ev.Done,
		ev.Elapsed.Round(time.Millisecond))
}
