package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixveritas/vaultasg/internal/descriptor"
)

func testDescriptor() *descriptor.Descriptor {
	return &descriptor.Descriptor{
		StackName: "Vault",
		Summary: []descriptor.ResourceCount{
			{Type: "AWS::AutoScaling::AutoScalingGroup", Count: 1},
			{Type: "AWS::EC2::Subnet", Count: 2},
		},
	}
}

func TestSynthRecorder_Record(t *testing.T) {
	t.Parallel()

	r := NewSynthRecorder()
	r.Record(testDescriptor(), 1500*time.Millisecond, time.Unix(1700000000, 0))

	assert.Equal(t, float64(2), testutil.ToFloat64(r.resources.WithLabelValues("Vault", "AWS::EC2::Subnet")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.resources.WithLabelValues("Vault", "AWS::AutoScaling::AutoScalingGroup")))
	assert.Equal(t, 1.5, testutil.ToFloat64(r.duration.WithLabelValues("Vault")))
	assert.Equal(t, float64(1700000000), testutil.ToFloat64(r.lastRun.WithLabelValues("Vault")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.resources))
}

func TestSynthRecorder_Exposition(t *testing.T) {
	t.Parallel()

	r := NewSynthRecorder()
	r.Record(testDescriptor(), time.Second, time.Unix(1700000000, 0))

	expected := `
# HELP vaultasg_synth_resources Number of resources in the synthesized template by type
# TYPE vaultasg_synth_resources gauge
vaultasg_synth_resources{stack="Vault",type="AWS::AutoScaling::AutoScalingGroup"} 1
vaultasg_synth_resources{stack="Vault",type="AWS::EC2::Subnet"} 2
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected), "vaultasg_synth_resources"))
}

func TestSynthRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()

	r := NewSynthRecorder()
	r.Record(testDescriptor(), time.Second, time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "vaultasg.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `vaultasg_synth_duration_seconds{stack="Vault"} 1`)
	assert.Contains(t, string(data), `vaultasg_synth_resources{stack="Vault",type="AWS::EC2::Subnet"} 2`)
}

func TestSynthRecorder_WriteTextfileError(t *testing.T) {
	t.Parallel()

	err := NewSynthRecorder().WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics")
}
