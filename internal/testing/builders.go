package testing

import (
	"maps"
	"slices"

	"github.com/phoenixveritas/vaultasg/internal/config"
	"github.com/phoenixveritas/vaultasg/internal/util/ptr"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder starts from the reference stack.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: *config.Default()}
}

// WithStackName sets the stack name.
func (b *ConfigBuilder) WithStackName(name string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.StackName = name
	return nb
}

// WithRegion sets the target region.
func (b *ConfigBuilder) WithRegion(region string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Environment.Region = region
	return nb
}

// WithNetwork replaces the network CIDR and subnet list.
func (b *ConfigBuilder) WithNetwork(cidr string, subnets ...config.SubnetConfig) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Network.CIDR = cidr
	nb.cfg.Network.Subnets = slices.Clone(subnets)
	return nb
}

// WithInstanceType sets the instance type.
func (b *ConfigBuilder) WithInstanceType(instanceType string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Compute.InstanceType = instanceType
	return nb
}

// WithPlacement sets the subnet visibility instances are placed in.
func (b *ConfigBuilder) WithPlacement(placement string) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Compute.Placement = placement
	return nb
}

// WithCapacity sets min, desired and max capacity.
func (b *ConfigBuilder) WithCapacity(minimum, desired, maximum int) *ConfigBuilder {
	nb := b.clone()
	nb.cfg.Compute.MinCapacity = ptr.Int(minimum)
	nb.cfg.Compute.DesiredCapacity = ptr.Int(desired)
	nb.cfg.Compute.MaxCapacity = ptr.Int(maximum)
	return nb
}

// WithTag adds a user tag.
func (b *ConfigBuilder) WithTag(key, value string) *ConfigBuilder {
	nb := b.clone()
	if nb.cfg.Tags == nil {
		nb.cfg.Tags = map[string]string{}
	}
	nb.cfg.Tags[key] = value
	return nb
}

// Build returns the constructed config.
func (b *ConfigBuilder) Build() *config.Config {
	return &b.clone().cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	c := b.cfg
	c.Network.Subnets = slices.Clone(b.cfg.Network.Subnets)
	c.Compute.Images = maps.Clone(b.cfg.Compute.Images)
	c.Compute.MinCapacity = clonePtr(b.cfg.Compute.MinCapacity)
	c.Compute.DesiredCapacity = clonePtr(b.cfg.Compute.DesiredCapacity)
	c.Compute.MaxCapacity = clonePtr(b.cfg.Compute.MaxCapacity)
	c.Role.ManagedPolicies = slices.Clone(b.cfg.Role.ManagedPolicies)
	c.Scaling.Steps = slices.Clone(b.cfg.Scaling.Steps)
	c.Tags = maps.Clone(b.cfg.Tags)
	return &ConfigBuilder{cfg: c}
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	return ptr.Int(*p)
}
