package diagnostics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatIncludesCommandAndOutput(t *testing.T) {
	r := NewReporter()
	out := r.Format(Diagnostic{
		Level:   Fatal,
		Message: "input is not initially interesting",
		Command: `grep -q BROKEN "/tmp/minimizer_1"`,
		Output:  "stdout line\n\n====== Status Some(1), Signal None\n",
		Notes:   []string{"check --broken-info and --command"},
	})

	require.Contains(t, out, "input is not initially interesting")
	require.Contains(t, out, "grep -q BROKEN")
	require.Contains(t, out, "stdout line")
	require.Contains(t, out, "check --broken-info and --command")
}

func TestFormatOmitsEmptySections(t *testing.T) {
	r := NewReporter()
	out := r.Format(Diagnostic{Level: Warning, Message: "final output no longer reproduces"})

	require.NotContains(t, strings.ToLower(out), "command:")
	require.NotContains(t, strings.ToLower(out), "oracle output:")
}
