package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		quiet   bool
		verbose int
		want    log.Level
		wantErr string
	}{
		{name: "default", want: log.InfoLevel},
		{name: "quiet", quiet: true, want: log.ErrorLevel},
		{name: "verbose", verbose: 1, want: log.DebugLevel},
		{name: "very verbose", verbose: 2, want: log.TraceLevel},
		{name: "too verbose", verbose: 3, wantErr: "verbose flag can only be given up to 2 times"},
		{name: "quiet and verbose", quiet: true, verbose: 1, wantErr: "can't set quiet and verbose flag at the same time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := log.New()
			err := Setup(l, &bytes.Buffer{}, tt.quiet, tt.verbose)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.GetLevel())
		})
	}
}

func TestSetup_InfoIsPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := log.New()
	require.NoError(t, Setup(l, &buf, false, 0))

	l.Info("wrote assembly.out")
	l.Warn("careful")
	l.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "wrote assembly.out\n")
	assert.Contains(t, out, "level=warning msg=careful")
	assert.NotContains(t, out, "hidden")
}

func TestSetup_VerboseUsesTextFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := log.New()
	require.NoError(t, Setup(l, &buf, false, 1))

	l.WithField("stack", "Vault").Info("synthesized")
	l.Debug("details")

	out := buf.String()
	assert.Contains(t, out, `level=info msg=synthesized stack=Vault`)
	assert.Contains(t, out, "level=debug msg=details")
}
