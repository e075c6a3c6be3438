package oracle

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"minimizer/internal/sequence"
)

func TestBuildCommandSubstitutesSymbolAndFoldsQuotes(t *testing.T) {
	o := New(Config{
		Command:    `grep -q "BROKEN" {}`,
		FileSymbol: "{}",
	})
	got := o.buildCommand("/tmp/minimizer_1")
	require.Equal(t, `grep -q 'BROKEN' "/tmp/minimizer_1"`, got)
}

func TestBuildCommandDisableEscaping(t *testing.T) {
	o := New(Config{Command: "cat {}", FileSymbol: "{}", DisableEscaping: true})
	require.Equal(t, "cat /tmp/minimizer_1", o.buildCommand("/tmp/minimizer_1"))
}

func TestBuildCommandJoinsAdditionalCommand(t *testing.T) {
	o := New(Config{Command: "cmd1 {}", AdditionalCommand: "cmd2 {}", FileSymbol: "{}", DisableEscaping: true})
	require.Equal(t, "cmd1 /tmp/x;cmd2 /tmp/x", o.buildCommand("/tmp/x"))
}

func TestEvaluateClassifiesInteresting(t *testing.T) {
	o := New(Config{
		Command:         "grep -q BROKEN {}",
		FileSymbol:      "{}",
		DisableEscaping: true,
		BrokenInfo:      []string{"====== Status Some(0)"},
	})
	defer os.Remove(o.TempPath(0))

	seq := sequence.FromBytes([]byte("AAAAABROKENAAAAA"))
	result, err := o.Evaluate(context.Background(), seq, 0)
	require.NoError(t, err)
	require.True(t, result.Interesting)
	require.Contains(t, result.Output, "Status Some(0)")
}

func TestEvaluateRespectsIgnoredInfo(t *testing.T) {
	o := New(Config{
		Command:         "grep -q BROKEN {}",
		FileSymbol:      "{}",
		DisableEscaping: true,
		BrokenInfo:      []string{"====== Status Some(0)"},
		IgnoredInfo:     []string{"Some(0)"},
	})
	defer os.Remove(o.TempPath(0))

	seq := sequence.FromBytes([]byte("BROKEN"))
	result, err := o.Evaluate(context.Background(), seq, 0)
	require.NoError(t, err)
	require.False(t, result.Interesting)
}

func TestEvaluateNotInterestingOnNonZeroExit(t *testing.T) {
	o := New(Config{
		Command:         "grep -q BROKEN {}",
		FileSymbol:      "{}",
		DisableEscaping: true,
		BrokenInfo:      []string{"====== Status Some(0)"},
	})
	defer os.Remove(o.TempPath(0))

	seq := sequence.FromBytes([]byte("AAAAA"))
	result, err := o.Evaluate(context.Background(), seq, 0)
	require.NoError(t, err)
	require.False(t, result.Interesting)
	require.Contains(t, result.Output, "Status Some(1)")
}

func TestTempPathPerWorker(t *testing.T) {
	o := New(Config{})
	require.NotEqual(t, o.TempPath(0), o.TempPath(1))
	require.NotEqual(t, o.TempPath(1), o.TempPath(2))
	require.Contains(t, o.TempPath(0), fmt.Sprintf("minimizer_%d", os.Getpid()))
}
