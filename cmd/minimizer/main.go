package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"minimizer/internal/config"
	"minimizer/internal/diagnostics"
	"minimizer/internal/driver"
	"minimizer/internal/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg         config.Config
		strategyStr string
		maxTimeSec  int
	)

	cmd := &cobra.Command{
		Use:           "minimizer",
		Short:         "Shrink a failing input file to a minimal reproducing case",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Strategy = config.Strategy(strategyStr)
			if maxTimeSec > 0 {
				cfg.MaxTime = time.Duration(maxTimeSec) * time.Second
			}

			reporter := diagnostics.NewReporter()
			if err := cfg.Validate(); err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), reporter.Format(diagnostics.Diagnostic{
					Level:   diagnostics.Fatal,
					Message: err.Error(),
				}))
				return err
			}

			log := telemetry.NewFromFlags(cmd.ErrOrStderr(), cfg.Quiet, cfg.Verbose)
			d := driver.New(cfg, log)

			warning, err := d.Run(context.Background())
			if err != nil {
				if fatalErr, ok := err.(*driver.FatalError); ok {
					fmt.Fprint(cmd.ErrOrStderr(), reporter.Format(fatalErr.Diagnostic))
				}
				return err
			}
			if warning != nil {
				fmt.Fprint(cmd.ErrOrStderr(), reporter.Format(warning.Diagnostic))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.InputFile, "input-file", "", "path to the input file to shrink (required)")
	flags.StringVar(&cfg.OutputFile, "output-file", "", "path to write the shrunk result to (required)")
	flags.IntVar(&cfg.Attempts, "attempts", 0, "per-run oracle-invocation budget (required)")
	flags.BoolVar(&cfg.ResetAttempts, "reset-attempts", false, "reset the per-pass attempt counter on every accepted improvement")
	flags.StringVar(&cfg.Command, "command", "", "the oracle command; {} is replaced by the candidate path (required)")
	flags.StringVar(&cfg.FileSymbol, "file-symbol", "{}", "placeholder token substituted with the candidate path")
	flags.BoolVar(&cfg.DisableFileNameEscaping, "disable-file-name-escaping", false, "substitute the bare candidate path instead of a quoted one")
	flags.StringArrayVar(&cfg.BrokenInfo, "broken-info", nil, "substring(s) whose presence in the oracle output marks a candidate interesting (required, repeatable)")
	flags.StringArrayVar(&cfg.IgnoredInfo, "ignored-info", nil, "substring(s) whose presence overrides interesting back to not-interesting (repeatable)")
	flags.StringVar(&cfg.AdditionalCommand, "additional-command", "", "a second command joined to --command with ';'")
	flags.IntVar(&maxTimeSec, "max-time", 0, "optional wall-clock budget in seconds")
	flags.BoolVar(&cfg.Quiet, "quiet", false, "only log warnings and above")
	flags.BoolVar(&cfg.Verbose, "verbose", false, "log every rule attempt at debug level")
	flags.BoolVar(&cfg.PrintCommandOutput, "print-command-output", false, "log the oracle's combined output for the initial and final checks")
	flags.StringVar(&strategyStr, "strategy", string(config.General), "reduction strategy: General, Pedantic, or GeneralMulti")

	return cmd
}
