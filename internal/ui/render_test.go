package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixveritas/vaultasg/internal/descriptor"
	"github.com/phoenixveritas/vaultasg/internal/publish"
)

func TestRenderSynthSummary(t *testing.T) {
	t.Parallel()

	d := &descriptor.Descriptor{
		StackName:    "Vault",
		Environment:  "aws://123456789012/us-east-2",
		TemplateFile: "Vault.template.json",
		TemplateHash: "0123456789abcdef0123",
		Summary: []descriptor.ResourceCount{
			{Type: "AWS::EC2::Subnet", Count: 2},
			{Type: "AWS::EC2::VPC", Count: 1},
		},
	}

	out := RenderSynthSummary(d, []string{"assembly.out/Vault.template.json", "assembly.out/manifest.json"})

	assert.Contains(t, out, "vaultasg synth: Vault")
	assert.Contains(t, out, "aws://123456789012/us-east-2")
	assert.Contains(t, out, "0123456789ab")
	assert.NotContains(t, out, "0123456789abcdef0123")
	assert.Contains(t, out, "AWS::EC2::Subnet")
	assert.Regexp(t, `Total\s+3`, out)
	assert.Contains(t, out, "assembly.out/manifest.json")
}

func TestRenderSynthSummary_NoFiles(t *testing.T) {
	t.Parallel()

	out := RenderSynthSummary(&descriptor.Descriptor{StackName: "Vault"}, nil)
	assert.NotContains(t, out, "Files")
}

func TestRenderPublishSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reused    bool
		unchanged bool
	}{
		{name: "fresh upload"},
		{name: "reused template", reused: true, unchanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := RenderPublishSummary("Vault", &publish.Result{
				TemplateURL:    "s3://assets/abc.json",
				ManifestURL:    "s3://assets/Vault/manifest.json",
				TemplateReused: tt.reused,
			})
			assert.Contains(t, out, "s3://assets/abc.json")
			assert.Contains(t, out, "s3://assets/Vault/manifest.json")
			if tt.unchanged {
				assert.Contains(t, out, "(unchanged)")
			} else {
				assert.NotContains(t, out, "(unchanged)")
			}
		})
	}
}

func TestIsInteractiveTTY_RegularFile(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsInteractiveTTY(f))
}

func TestShortHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", shortHash("abc"))
	assert.Equal(t, "0123456789ab", shortHash("0123456789abcdef"))
}
