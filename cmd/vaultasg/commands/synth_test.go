package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynth(t *testing.T) {
	cmd := Synth()

	require.NotNil(t, cmd)
	assert.Equal(t, "synth", cmd.Use)
	assert.Equal(t, "Synthesize the stack into a cloud assembly", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestSynth_Flags(t *testing.T) {
	cmd := Synth()

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "config", shorthand: "c", defValue: ""},
		{name: "out", shorthand: "o", defValue: "assembly.out"},
		{name: "format", defValue: "json"},
		{name: "stdout", defValue: "false"},
		{name: "metrics-file", defValue: ""},
		{name: "account", defValue: ""},
		{name: "region", defValue: ""},
		{name: "use-aws-region", defValue: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "%s flag should exist", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestSynth_RejectsArgs(t *testing.T) {
	cmd := Synth()
	assert.Error(t, cmd.Args(cmd, []string{"extra"}))
}

func TestValidate(t *testing.T) {
	cmd := Validate()

	require.NotNil(t, cmd)
	assert.Equal(t, "validate", cmd.Use)
	for _, name := range []string{"config", "account", "region", "use-aws-region"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "%s flag should exist", name)
	}
}
