// Package driver wires config, oracle, strategy, and budget together
// into the three-pass pipeline spec.md §4.6 describes: validate the
// input, confirm the oracle is configured sanely, shrink across
// granularities with cumulative budgets, and leave the best-so-far
// result on disk regardless of how the run ends.
package driver

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"
	"unicode/utf8"

	"minimizer/internal/budget"
	"minimizer/internal/config"
	"minimizer/internal/diagnostics"
	"minimizer/internal/oracle"
	"minimizer/internal/sequence"
	"minimizer/internal/strategy"
	"minimizer/internal/telemetry"
)

// FatalError wraps a rendered Diagnostic for the configuration, I/O,
// and subprocess failure kinds spec.md §7 calls fatal. cmd/minimizer
// renders it with a Reporter and exits non-zero.
type FatalError struct {
	Diagnostic diagnostics.Diagnostic
}

func (e *FatalError) Error() string { return e.Diagnostic.Message }

func fatal(level diagnostics.Level, message string, opts ...func(*diagnostics.Diagnostic)) *FatalError {
	d := diagnostics.Diagnostic{Level: level, Message: message}
	for _, opt := range opts {
		opt(&d)
	}
	return &FatalError{Diagnostic: d}
}

func withCommand(command string) func(*diagnostics.Diagnostic) {
	return func(d *diagnostics.Diagnostic) { d.Command = command }
}

func withOutput(output string) func(*diagnostics.Diagnostic) {
	return func(d *diagnostics.Diagnostic) { d.Output = output }
}

func withHelp(help string) func(*diagnostics.Diagnostic) {
	return func(d *diagnostics.Diagnostic) { d.HelpText = help }
}

// Driver owns one run's oracle and logger and drives it through the
// pipeline below.
type Driver struct {
	cfg config.Config
	ora *oracle.Oracle
	log *telemetry.Logger
}

// New builds a Driver for cfg. log may be telemetry.Discard() in tests.
func New(cfg config.Config, log *telemetry.Logger) *Driver {
	ora := oracle.New(oracle.Config{
		Command:           cfg.Command,
		AdditionalCommand: cfg.AdditionalCommand,
		FileSymbol:        cfg.FileSymbol,
		DisableEscaping:   cfg.DisableFileNameEscaping,
		BrokenInfo:        cfg.BrokenInfo,
		IgnoredInfo:       cfg.IgnoredInfo,
	})
	return &Driver{cfg: cfg, ora: ora, log: log}
}

// Warning is a non-fatal notice produced by Run — currently only the
// flaky-oracle re-check failure from spec.md §4.6 step 5. Run returns
// it alongside a nil error; cmd/minimizer decides how to surface it.
type Warning struct {
	Diagnostic diagnostics.Diagnostic
}

// Run executes the full pipeline. It returns a *FatalError for every
// spec.md §7 fatal kind, a non-nil *Warning (with a nil error) for the
// flaky-oracle notice, or (nil, nil) on an ordinary, possibly
// zero-improvement, completion.
func (d *Driver) Run(ctx context.Context) (*Warning, error) {
	data, err := os.ReadFile(d.cfg.InputFile)
	if err != nil {
		return nil, fatal(diagnostics.Fatal, fmt.Sprintf("input file %q does not exist or is unreadable", d.cfg.InputFile), withHelp(err.Error()))
	}

	if err := os.WriteFile(d.cfg.OutputFile, data, 0o644); err != nil {
		return nil, fatal(diagnostics.Fatal, fmt.Sprintf("cannot write output file %q", d.cfg.OutputFile), withHelp(err.Error()))
	}

	initial := sequence.FromBytes(data)
	initialResult, err := d.ora.Evaluate(ctx, initial, 0)
	if err != nil {
		return nil, fatal(diagnostics.Fatal, "failed to spawn the oracle command", withCommand(initialResult.Command), withHelp(err.Error()))
	}
	if d.cfg.PrintCommandOutput {
		d.log.OracleOutput(initialResult.Command, initialResult.Output)
	}
	if !initialResult.Interesting {
		return nil, fatal(diagnostics.Fatal, "initial input is not interesting to the oracle; check --command, --file-symbol, and --broken-info",
			withCommand(initialResult.Command), withOutput(initialResult.Output))
	}

	b := budget.New(0, d.cfg.ResetAttempts)
	strat := strategyFor(d.cfg.Strategy)
	r := rand.New(rand.NewPCG(uint64(os.Getpid()), uint64(time.Now().UnixNano())))

	var deadline time.Time
	if d.cfg.MaxTime > 0 {
		deadline = time.Now().Add(d.cfg.MaxTime)
	}

	commit := func(seq *sequence.Sequence) error {
		if err := os.WriteFile(d.cfg.OutputFile, seq.Serialize(), 0o644); err != nil {
			return fmt.Errorf("driver: persist %s: %w", d.cfg.OutputFile, err)
		}
		return nil
	}

	runPass := func(passName string, seq *sequence.Sequence, maxAttempts int) error {
		b.NextPass(maxAttempts)
		d.log.PassStarted(passName, seq.Len(), maxAttempts)
		opts := strategy.Options{Rand: r, Budget: b, Deadline: deadline, Worker: 0, Pass: passName, Logger: d.log}
		if err := strat.Run(ctx, seq, d.ora, opts, commit); err != nil {
			return fatal(diagnostics.Fatal, fmt.Sprintf("%s pass aborted", passName), withHelp(err.Error()))
		}
		return nil
	}

	var final *sequence.Sequence
	if utf8.Valid(data) {
		lines := sequence.FromLines(string(data))
		if err := runPass("Lines", lines, d.cfg.Attempts/3); err != nil {
			return nil, err
		}

		chars := sequence.FromCharacters(string(lines.Serialize()))
		if err := runPass("Characters", chars, 2*d.cfg.Attempts/3); err != nil {
			return nil, err
		}

		bytesSeq := sequence.FromBytes(chars.Serialize())
		if err := runPass("Bytes", bytesSeq, d.cfg.Attempts); err != nil {
			return nil, err
		}
		final = bytesSeq
	} else {
		bytesSeq := sequence.FromBytes(data)
		if err := runPass("Bytes", bytesSeq, d.cfg.Attempts); err != nil {
			return nil, err
		}
		final = bytesSeq
	}

	finalResult, err := d.ora.Evaluate(ctx, final, 0)
	if err != nil {
		return nil, fatal(diagnostics.Fatal, "failed to spawn the oracle command during the final re-check", withCommand(finalResult.Command), withHelp(err.Error()))
	}
	if d.cfg.PrintCommandOutput {
		d.log.OracleOutput(finalResult.Command, finalResult.Output)
	}
	if !finalResult.Interesting {
		d.log.Warn("final re-check did not reproduce the oracle's interesting classification; the command may be non-deterministic")
		return &Warning{Diagnostic: diagnostics.Diagnostic{
			Level:   diagnostics.Warning,
			Message: "final output no longer reproduces as interesting; the oracle command may be flaky",
			Command: finalResult.Command,
			Output:  finalResult.Output,
			Notes:   []string{"the output file still contains the smallest candidate found before this check"},
		}}, nil
	}

	return nil, nil
}

func strategyFor(name config.Strategy) strategy.Strategy {
	switch name {
	case config.Pedantic:
		return strategy.Pedantic{}
	case config.GeneralMulti:
		return strategy.GeneralMulti{}
	default:
		return strategy.General{}
	}
}
