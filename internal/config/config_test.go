package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixveritas/vaultasg/internal/stack"
	"github.com/phoenixveritas/vaultasg/internal/util/ptr"
)

func TestDefault_BuildsReferenceStack(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, DefaultStackName, cfg.StackName)
	assert.Equal(t, 1, *cfg.Compute.MinCapacity)
	assert.Equal(t, 3, *cfg.Compute.DesiredCapacity)
	assert.Equal(t, 3, *cfg.Compute.MaxCapacity)

	g, err := stack.Build(cfg.ToParams())
	require.NoError(t, err)
	require.Len(t, g.Subnets, 2)
	assert.Equal(t, "13.0.0.0/24", g.Subnets[0].CIDR)
	assert.Equal(t, "13.0.1.0/24", g.Subnets[1].CIDR)
}

func TestApplyDefaults_Capacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                      string
		min, desired, max         *int
		wantMin, wantDes, wantMax int
	}{
		{name: "nothing set", wantMin: 1, wantDes: 1, wantMax: 1},
		{name: "desired only", desired: ptr.Int(3), wantMin: 1, wantDes: 3, wantMax: 3},
		{name: "min only", min: ptr.Int(2), wantMin: 2, wantDes: 2, wantMax: 2},
		{name: "zero min", min: ptr.Int(0), wantMin: 0, wantDes: 0, wantMax: 1},
		{name: "max only", max: ptr.Int(5), wantMin: 1, wantDes: 1, wantMax: 5},
		{name: "all set", min: ptr.Int(1), desired: ptr.Int(3), max: ptr.Int(3), wantMin: 1, wantDes: 3, wantMax: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Compute: ComputeConfig{MinCapacity: tt.min, DesiredCapacity: tt.desired, MaxCapacity: tt.max}}
			cfg.ApplyDefaults()
			assert.Equal(t, tt.wantMin, *cfg.Compute.MinCapacity)
			assert.Equal(t, tt.wantDes, *cfg.Compute.DesiredCapacity)
			assert.Equal(t, tt.wantMax, *cfg.Compute.MaxCapacity)
		})
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		StackName: "Custom",
		Network: NetworkConfig{
			CIDR:    "10.0.0.0/16",
			MaxAZs:  2,
			Subnets: []SubnetConfig{{Name: "app", Type: "public"}, {Name: "db", Type: "isolated", CIDR: "10.0.8.0/24"}},
		},
		Role: RoleConfig{ManagedPolicies: []string{}},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, "Custom", cfg.StackName)
	assert.Equal(t, "10.0.0.0/16", cfg.Network.CIDR)
	assert.Equal(t, 2, cfg.Network.MaxAZs)
	assert.Equal(t, DefaultSubnetMask, cfg.Network.Subnets[0].Mask)
	assert.Zero(t, cfg.Network.Subnets[1].Mask, "pinned subnets get no mask")
	assert.Empty(t, cfg.Role.ManagedPolicies, "an explicit empty list is kept")
	assert.Equal(t, DefaultPrincipal, cfg.Role.Principal)
}

func TestToParams_DoesNotAlias(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Tags = map[string]string{"team": "platform"}
	p := cfg.ToParams()

	cfg.Compute.Images["eu-west-1"] = "ami-00000001"
	cfg.Role.ManagedPolicies[0] = "Other"
	cfg.Tags["team"] = "changed"

	assert.NotContains(t, p.Compute.Images, "eu-west-1")
	assert.Equal(t, []string{DefaultManagedPolicy}, p.Role.ManagedPolicies)
	assert.Equal(t, "platform", p.Tags["team"])
}

func TestToParams_Mapping(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Environment = EnvironmentConfig{Account: "123456789012", Region: "us-east-2"}
	cfg.Scaling = ScalingConfig{
		AdjustmentType: "change-in-capacity",
		Steps:          []StepConfig{{Adjustment: 1, LowerBound: 0}, {Adjustment: 2, LowerBound: 50}},
	}
	p := cfg.ToParams()

	assert.Equal(t, stack.Environment{Account: "123456789012", Region: "us-east-2"}, p.Env)
	assert.Equal(t, stack.AdjustmentChangeInCapacity, p.Scaling.AdjustmentType)
	assert.Equal(t, []stack.StepAdjustment{{Adjustment: 1, LowerBound: 0}, {Adjustment: 2, LowerBound: 50}}, p.Scaling.Steps)
	assert.Equal(t, stack.VisibilityPublic, p.Compute.Placement)
	assert.Equal(t, []stack.SubnetSpec{
		{Name: "public", Mask: 24, Visibility: stack.VisibilityPublic},
		{Name: "isolated", Mask: 24, Visibility: stack.VisibilityIsolated},
	}, p.Network.Subnets)
}
