package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclConfigFile is the top-level structure of an HCL config file.
type hclConfigFile struct {
	StackName   string            `hcl:"stack_name,optional"`
	Description string            `hcl:"description,optional"`
	Tags        map[string]string `hcl:"tags,optional"`
	Environment *hclEnvironment   `hcl:"environment,block"`
	Network     *hclNetwork       `hcl:"network,block"`
	Compute     *hclCompute       `hcl:"compute,block"`
	Role        *hclRole          `hcl:"role,block"`
	Scaling     *hclScaling       `hcl:"scaling,block"`
}

type hclEnvironment struct {
	Account string `hcl:"account,optional"`
	Region  string `hcl:"region,optional"`
}

type hclNetwork struct {
	CIDR    string      `hcl:"cidr,optional"`
	MaxAZs  int         `hcl:"max_azs,optional"`
	Subnets []hclSubnet `hcl:"subnet,block"`
}

type hclSubnet struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
	Mask int    `hcl:"mask,optional"`
	CIDR string `hcl:"cidr,optional"`
}

type hclCompute struct {
	InstanceType      string            `hcl:"instance_type,optional"`
	Images            map[string]string `hcl:"images,optional"`
	MinCapacity       *int              `hcl:"min_capacity,optional"`
	DesiredCapacity   *int              `hcl:"desired_capacity,optional"`
	MaxCapacity       *int              `hcl:"max_capacity,optional"`
	Placement         string            `hcl:"placement,optional"`
	AssociatePublicIP bool              `hcl:"associate_public_ip,optional"`
}

type hclRole struct {
	Principal       string   `hcl:"principal,optional"`
	ManagedPolicies []string `hcl:"managed_policies,optional"`
}

type hclScaling struct {
	AdjustmentType string    `hcl:"adjustment_type,optional"`
	Steps          []hclStep `hcl:"step,block"`
}

type hclStep struct {
	Adjustment int     `hcl:"adjustment"`
	LowerBound float64 `hcl:"lower_bound"`
}

// ParseHCL decodes HCL data. filename is used in diagnostics only.
// Defaults are not applied.
func ParseHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclConfigFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	return parsed.toConfig(), nil
}

func (f *hclConfigFile) toConfig() *Config {
	cfg := &Config{
		StackName:   f.StackName,
		Description: f.Description,
		Tags:        f.Tags,
	}

	if f.Environment != nil {
		cfg.Environment = EnvironmentConfig{Account: f.Environment.Account, Region: f.Environment.Region}
	}

	if f.Network != nil {
		cfg.Network.CIDR = f.Network.CIDR
		cfg.Network.MaxAZs = f.Network.MaxAZs
		for _, s := range f.Network.Subnets {
			cfg.Network.Subnets = append(cfg.Network.Subnets, SubnetConfig(s))
		}
	}

	if f.Compute != nil {
		cfg.Compute = ComputeConfig(*f.Compute)
	}

	if f.Role != nil {
		cfg.Role = RoleConfig(*f.Role)
	}

	if f.Scaling != nil {
		cfg.Scaling.AdjustmentType = f.Scaling.AdjustmentType
		for _, s := range f.Scaling.Steps {
			cfg.Scaling.Steps = append(cfg.Scaling.Steps, StepConfig(s))
		}
	}

	return cfg
}
