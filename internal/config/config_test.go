package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		InputFile:  "in",
		OutputFile: "out",
		Attempts:   100,
		Command:    "grep -q BROKEN {}",
		BrokenInfo: []string{"BROKEN"},
		Strategy:   General,
	}
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsMissingBrokenInfo(t *testing.T) {
	c := validConfig()
	c.BrokenInfo = nil
	require.Error(t, c.Validate())
}

func TestValidateRejectsNonPositiveAttempts(t *testing.T) {
	c := validConfig()
	c.Attempts = 0
	require.Error(t, c.Validate())
}

func TestValidateRejectsUnknownStrategy(t *testing.T) {
	c := validConfig()
	c.Strategy = "Bogus"
	require.Error(t, c.Validate())
}
