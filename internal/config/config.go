// Package config defines the plain configuration structure the
// minimizer engine consumes. It deliberately has no dependency on any
// flag-parsing library: cmd/minimizer is the only place that knows how
// a Config gets populated, matching spec.md §1's choice to keep
// argument parsing an external collaborator of the engine.
package config

import "time"

// Strategy names one of the three interchangeable reduction strategies
// from spec.md §4.5.
type Strategy string

const (
	General      Strategy = "General"
	Pedantic     Strategy = "Pedantic"
	GeneralMulti Strategy = "GeneralMulti"
)

// Config mirrors the CLI flags in spec.md §6, one field per flag.
type Config struct {
	InputFile     string
	OutputFile    string
	Attempts      int
	ResetAttempts bool

	Command                 string
	FileSymbol              string
	DisableFileNameEscaping bool
	BrokenInfo              []string
	IgnoredInfo             []string
	AdditionalCommand       string

	MaxTime time.Duration // zero means "no wall-clock limit"

	Quiet              bool
	Verbose            bool
	PrintCommandOutput bool

	Strategy Strategy
}

// Validate checks the configuration-shape requirements that don't need
// the oracle: required flags present, attempts positive, at least one
// broken-info marker. Requirements that need to run the oracle (input
// exists and is initially interesting) are the Driver's job.
func (c Config) Validate() error {
	switch {
	case c.InputFile == "":
		return errRequired("--input-file")
	case c.OutputFile == "":
		return errRequired("--output-file")
	case c.Attempts <= 0:
		return errInvalid("--attempts", "must be a positive integer")
	case c.Command == "":
		return errRequired("--command")
	case len(c.BrokenInfo) == 0:
		return errRequired("--broken-info")
	}
	switch c.Strategy {
	case General, Pedantic, GeneralMulti:
	default:
		return errInvalid("--strategy", "must be one of General, Pedantic, GeneralMulti")
	}
	return nil
}
