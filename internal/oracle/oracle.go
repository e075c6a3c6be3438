// Package oracle runs the user-configured shell command against a
// candidate sequence and classifies its combined output as interesting
// or not. It is the minimizer's only point of contact with the
// subprocess under test.
package oracle

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"minimizer/internal/sequence"
)

// Config is the subset of CLI configuration the Oracle needs. It is a
// plain struct so the oracle package never imports the flag-parsing
// layer.
type Config struct {
	Command           string
	AdditionalCommand string
	FileSymbol        string // default "{}"
	DisableEscaping   bool
	BrokenInfo        []string
	IgnoredInfo       []string
}

// Oracle serializes candidates to a temp path, spawns the configured
// shell command(s), and classifies the result.
type Oracle struct {
	cfg     Config
	pid     int
	tempDir string
}

// New builds an Oracle bound to the current process id, matching
// spec's "one temp file per process" default naming.
func New(cfg Config) *Oracle {
	return &Oracle{cfg: cfg, pid: os.Getpid(), tempDir: os.TempDir()}
}

// TempPath returns the scratch path a given worker writes candidates
// to. worker 0 is the single-threaded path, `/tmp/minimizer_<pid>`;
// worker > 0 gets its own slot so GeneralMulti's concurrent evaluators
// never collide on the same file.
func (o *Oracle) TempPath(worker int) string {
	if worker == 0 {
		return fmt.Sprintf("%s/minimizer_%d", o.tempDir, o.pid)
	}
	return fmt.Sprintf("%s/minimizer_%d_%d", o.tempDir, o.pid, worker)
}

// Result is everything a single Evaluate call produced, kept together
// so callers can log or report it without re-deriving the command.
type Result struct {
	Interesting bool
	Command     string
	Output      string
}

// Evaluate writes seq to its worker's temp path, runs the configured
// command(s) against it, and classifies the combined output. worker
// selects which temp-path slot is used; pass 0 outside GeneralMulti.
func (o *Oracle) Evaluate(ctx context.Context, seq *sequence.Sequence, worker int) (Result, error) {
	path := o.TempPath(worker)
	if err := os.WriteFile(path, seq.Serialize(), 0o644); err != nil {
		return Result{}, fmt.Errorf("oracle: write candidate to %s: %w", path, err)
	}

	command := o.buildCommand(path)

	stdout, stderr, exitCode, signal, runErr := runShell(ctx, command)
	if runErr != nil {
		return Result{}, fmt.Errorf("oracle: spawn shell for %q: %w", command, runErr)
	}

	output := combinedOutput(stdout, stderr, exitCode, signal)
	return Result{
		Interesting: classify(output, o.cfg.BrokenInfo, o.cfg.IgnoredInfo),
		Command:     command,
		Output:      output,
	}, nil
}

// buildCommand folds `"` to `'` in the configured templates (so a
// double-quoted file-symbol substitution below can't collide with
// characters the user already put in --command), joins the primary and
// additional command with `;`, then substitutes every occurrence of
// the file-symbol with the candidate path, quoted unless escaping is
// disabled.
func (o *Oracle) buildCommand(path string) string {
	symbol := o.cfg.FileSymbol
	if symbol == "" {
		symbol = "{}"
	}

	template := strings.ReplaceAll(o.cfg.Command, `"`, "'")
	if o.cfg.AdditionalCommand != "" {
		template += ";" + strings.ReplaceAll(o.cfg.AdditionalCommand, `"`, "'")
	}

	replacement := path
	if !o.cfg.DisableEscaping {
		replacement = `"` + path + `"`
	}
	return strings.ReplaceAll(template, symbol, replacement)
}

// runShell spawns one `sh -c command`, waits, and captures everything
// spec.md's combined-output format needs.
func runShell(ctx context.Context, command string) (stdout, stderr string, exitCode, signal *int, err error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	stdout = outBuf.String()
	stderr = errBuf.String()

	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			// Spawn failure (binary missing, permissions, ...): fatal.
			return stdout, stderr, nil, nil, runErr
		}
	}

	exitCode, signal = extractStatus(cmd.ProcessState)
	return stdout, stderr, exitCode, signal, nil
}

// combinedOutput renders spec.md §6's exact substring-matching format.
func combinedOutput(stdout, stderr string, exitCode, signal *int) string {
	var b strings.Builder
	b.WriteString(stdout)
	if !strings.HasSuffix(stdout, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(stderr)
	if !strings.HasSuffix(stderr, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("====== Status %s, Signal %s\n", optionString(exitCode), optionString(signal)))
	return b.String()
}

func optionString(v *int) string {
	if v == nil {
		return "None"
	}
	return fmt.Sprintf("Some(%d)", *v)
}

// classify implements spec.md §4.1 step 5 and §8 property 3: interesting
// iff at least one broken-info substring is present and no ignored-info
// substring is present.
func classify(output string, brokenInfo, ignoredInfo []string) bool {
	broken := false
	for _, marker := range brokenInfo {
		if strings.Contains(output, marker) {
			broken = true
			break
		}
	}
	if !broken {
		return false
	}
	for _, marker := range ignoredInfo {
		if strings.Contains(output, marker) {
			return false
		}
	}
	return true
}
