package config

import (
	"maps"
	"slices"

	"github.com/phoenixveritas/vaultasg/internal/stack"
	"github.com/phoenixveritas/vaultasg/internal/util/ptr"
)

// Defaults of the reference stack.
const (
	DefaultStackName       = "VaultClusterAsgStack"
	DefaultDescription     = "Vault cluster on an auto-scaling group"
	DefaultCIDR            = "13.0.0.0/16"
	DefaultMaxAZs          = 1
	DefaultSubnetMask      = 24
	DefaultInstanceType    = "t3.small"
	DefaultImageRegion     = "us-east-2"
	DefaultImageID         = "ami-0a0591de7c3c8aee9"
	DefaultPrincipal       = "ec2.amazonaws.com"
	DefaultManagedPolicy   = "AmazonSSMManagedInstanceCore"
	DefaultMinCapacity     = 1
	DefaultDesiredCapacity = 3
	DefaultMaxCapacity     = 3
)

// Config holds the stack configuration.
type Config struct {
	StackName   string            `mapstructure:"stack_name" yaml:"stack_name"`
	Description string            `mapstructure:"description" yaml:"description,omitempty"`
	Environment EnvironmentConfig `mapstructure:"environment" yaml:"environment,omitempty"`
	Network     NetworkConfig     `mapstructure:"network" yaml:"network"`
	Compute     ComputeConfig     `mapstructure:"compute" yaml:"compute"`
	Role        RoleConfig        `mapstructure:"role" yaml:"role"`
	Scaling     ScalingConfig     `mapstructure:"scaling" yaml:"scaling"`
	Tags        map[string]string `mapstructure:"tags" yaml:"tags,omitempty"`
}

// EnvironmentConfig pins the stack to an account and region. Both are
// optional.
type EnvironmentConfig struct {
	Account string `mapstructure:"account" yaml:"account,omitempty"`
	Region  string `mapstructure:"region" yaml:"region,omitempty"`
}

// NetworkConfig describes the network and its subnet groups.
type NetworkConfig struct {
	CIDR    string         `mapstructure:"cidr" yaml:"cidr"`
	MaxAZs  int            `mapstructure:"max_azs" yaml:"max_azs,omitempty"`
	Subnets []SubnetConfig `mapstructure:"subnets" yaml:"subnets"`
}

// SubnetConfig is one subnet group. Mask and CIDR are mutually exclusive.
type SubnetConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
	Type string `mapstructure:"type" yaml:"type"`
	Mask int    `mapstructure:"mask" yaml:"mask,omitempty"`
	CIDR string `mapstructure:"cidr" yaml:"cidr,omitempty"`
}

// ComputeConfig describes the instances and the capacity of the group.
type ComputeConfig struct {
	InstanceType      string            `mapstructure:"instance_type" yaml:"instance_type"`
	Images            map[string]string `mapstructure:"images" yaml:"images"`
	MinCapacity       *int              `mapstructure:"min_capacity" yaml:"min_capacity,omitempty"`
	DesiredCapacity   *int              `mapstructure:"desired_capacity" yaml:"desired_capacity,omitempty"`
	MaxCapacity       *int              `mapstructure:"max_capacity" yaml:"max_capacity,omitempty"`
	Placement         string            `mapstructure:"placement" yaml:"placement,omitempty"`
	AssociatePublicIP bool              `mapstructure:"associate_public_ip" yaml:"associate_public_ip,omitempty"`
}

// RoleConfig describes the instance role.
type RoleConfig struct {
	Principal       string   `mapstructure:"principal" yaml:"principal"`
	ManagedPolicies []string `mapstructure:"managed_policies" yaml:"managed_policies"`
}

// ScalingConfig describes the step scaling policy.
type ScalingConfig struct {
	AdjustmentType string       `mapstructure:"adjustment_type" yaml:"adjustment_type"`
	Steps          []StepConfig `mapstructure:"steps" yaml:"steps"`
}

// StepConfig is one step of the scaling policy.
type StepConfig struct {
	Adjustment int     `mapstructure:"adjustment" yaml:"adjustment"`
	LowerBound float64 `mapstructure:"lower_bound" yaml:"lower_bound"`
}

// Default returns the configuration of the reference stack.
func Default() *Config {
	cfg := &Config{
		Description: DefaultDescription,
		Compute: ComputeConfig{
			DesiredCapacity: ptr.Int(DefaultDesiredCapacity),
			MaxCapacity:     ptr.Int(DefaultMaxCapacity),
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field. Capacity follows the group
// defaults: min is 1, desired falls back to min, and max falls back to
// desired or, failing that, to the larger of min and 1.
func (c *Config) ApplyDefaults() {
	if c.StackName == "" {
		c.StackName = DefaultStackName
	}

	if c.Network.CIDR == "" {
		c.Network.CIDR = DefaultCIDR
	}
	if c.Network.MaxAZs == 0 {
		c.Network.MaxAZs = DefaultMaxAZs
	}
	if len(c.Network.Subnets) == 0 {
		c.Network.Subnets = []SubnetConfig{
			{Name: "public", Type: string(stack.VisibilityPublic), Mask: DefaultSubnetMask},
			{Name: "isolated", Type: string(stack.VisibilityIsolated), Mask: DefaultSubnetMask},
		}
	}
	for i := range c.Network.Subnets {
		s := &c.Network.Subnets[i]
		if s.Mask == 0 && s.CIDR == "" {
			s.Mask = DefaultSubnetMask
		}
	}

	if c.Compute.InstanceType == "" {
		c.Compute.InstanceType = DefaultInstanceType
	}
	if len(c.Compute.Images) == 0 {
		c.Compute.Images = map[string]string{DefaultImageRegion: DefaultImageID}
	}
	if c.Compute.Placement == "" {
		c.Compute.Placement = string(stack.VisibilityPublic)
	}
	if c.Compute.MinCapacity == nil {
		c.Compute.MinCapacity = ptr.Int(DefaultMinCapacity)
	}
	if c.Compute.MaxCapacity == nil {
		if c.Compute.DesiredCapacity != nil {
			c.Compute.MaxCapacity = ptr.Int(*c.Compute.DesiredCapacity)
		} else {
			c.Compute.MaxCapacity = ptr.Int(max(*c.Compute.MinCapacity, 1))
		}
	}
	if c.Compute.DesiredCapacity == nil {
		c.Compute.DesiredCapacity = ptr.Int(*c.Compute.MinCapacity)
	}

	if c.Role.Principal == "" {
		c.Role.Principal = DefaultPrincipal
	}
	if c.Role.ManagedPolicies == nil {
		c.Role.ManagedPolicies = []string{DefaultManagedPolicy}
	}

	if c.Scaling.AdjustmentType == "" {
		c.Scaling.AdjustmentType = string(stack.AdjustmentExactCapacity)
	}
	if len(c.Scaling.Steps) == 0 {
		c.Scaling.Steps = []StepConfig{{Adjustment: 1, LowerBound: 1}}
	}
}

// ToParams converts a defaulted configuration into builder parameters. The
// result shares no memory with c.
func (c *Config) ToParams() stack.Params {
	subnets := make([]stack.SubnetSpec, 0, len(c.Network.Subnets))
	for _, s := range c.Network.Subnets {
		subnets = append(subnets, stack.SubnetSpec{
			Name:       s.Name,
			Mask:       s.Mask,
			Visibility: stack.Visibility(s.Type),
			CIDR:       s.CIDR,
		})
	}

	steps := make([]stack.StepAdjustment, 0, len(c.Scaling.Steps))
	for _, s := range c.Scaling.Steps {
		steps = append(steps, stack.StepAdjustment{Adjustment: s.Adjustment, LowerBound: s.LowerBound})
	}

	return stack.Params{
		StackName:   c.StackName,
		Description: c.Description,
		Env: stack.Environment{
			Account: c.Environment.Account,
			Region:  c.Environment.Region,
		},
		Network: stack.NetworkSpec{
			CIDR:    c.Network.CIDR,
			MaxAZs:  c.Network.MaxAZs,
			Subnets: subnets,
		},
		Compute: stack.ComputeSpec{
			InstanceType:      c.Compute.InstanceType,
			Images:            maps.Clone(c.Compute.Images),
			MinCapacity:       ptr.Deref(c.Compute.MinCapacity, 0),
			DesiredCapacity:   ptr.Deref(c.Compute.DesiredCapacity, 0),
			MaxCapacity:       ptr.Deref(c.Compute.MaxCapacity, 0),
			Placement:         stack.Visibility(c.Compute.Placement),
			AssociatePublicIP: c.Compute.AssociatePublicIP,
		},
		Role: stack.RoleSpec{
			Principal:       c.Role.Principal,
			ManagedPolicies: slices.Clone(c.Role.ManagedPolicies),
		},
		Scaling: stack.ScalingPolicySpec{
			AdjustmentType: stack.AdjustmentType(c.Scaling.AdjustmentType),
			Steps:          steps,
		},
		Tags: maps.Clone(c.Tags),
	}
}
