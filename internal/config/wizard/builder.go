package wizard

import (
	"strings"

	"github.com/phoenixveritas/vaultasg/internal/config"
	"github.com/phoenixveritas/vaultasg/internal/util/ptr"
)

// BuildConfig creates a defaulted Config from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	subnets := []config.SubnetConfig{
		{Name: "public", Type: PlacementPublic, Mask: config.DefaultSubnetMask},
	}
	if result.IncludeIsolated || result.Placement == PlacementIsolated {
		subnets = append(subnets, config.SubnetConfig{Name: "isolated", Type: PlacementIsolated, Mask: config.DefaultSubnetMask})
	}

	cfg := &config.Config{
		StackName:   strings.TrimSpace(result.StackName),
		Description: config.DefaultDescription,
		Network: config.NetworkConfig{
			CIDR:    result.NetworkCIDR,
			Subnets: subnets,
		},
		Compute: config.ComputeConfig{
			InstanceType:    result.InstanceType,
			Images:          map[string]string{result.Region: result.ImageID},
			MinCapacity:     ptr.Int(result.MinCapacity),
			DesiredCapacity: ptr.Int(result.DesiredCapacity),
			MaxCapacity:     ptr.Int(result.MaxCapacity),
			Placement:       result.Placement,
		},
	}

	cfg.ApplyDefaults()
	return cfg
}
