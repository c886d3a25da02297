package wizard

import (
	"context"
	"net"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/phoenixveritas/vaultasg/internal/config"
)

var (
	stackNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,127}$`)
	imageIDRegex   = regexp.MustCompile(`^ami-[0-9a-f]{8,17}$`)
)

// runIdentityGroup prompts for stack name and region.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.StackName = config.DefaultStackName
	result.Region = config.DefaultImageRegion

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Stack Name").
				Description("Letters, digits or hyphens, starting with a letter").
				Placeholder(config.DefaultStackName).
				Value(&result.StackName).
				Validate(validateStackName),
			huh.NewSelect[string]().
				Title("Region").
				Description("Region the image ID below belongs to").
				Options(RegionsToOptions()...).
				Value(&result.Region),
		).Title("Stack Identity"),
	).RunWithContext(ctx)
}

// runNetworkGroup prompts for the network range and subnet layout.
func runNetworkGroup(ctx context.Context, result *WizardResult) error {
	result.NetworkCIDR = config.DefaultCIDR
	result.IncludeIsolated = true
	result.Placement = PlacementPublic

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Network CIDR").
				Description("IPv4 range of the network, /16 to /28").
				Placeholder(config.DefaultCIDR).
				Value(&result.NetworkCIDR).
				Validate(validateCIDR),
			huh.NewConfirm().
				Title("Add Isolated Subnet").
				Description("A subnet without internet access next to the public one").
				Value(&result.IncludeIsolated),
			huh.NewSelect[string]().
				Title("Instance Placement").
				Description("Subnets the Vault instances are launched in").
				Options(PlacementOptions...).
				Value(&result.Placement),
		).Title("Network"),
	).RunWithContext(ctx)
}

// runComputeGroup prompts for instance type and image.
func runComputeGroup(ctx context.Context, result *WizardResult) error {
	result.InstanceType = config.DefaultInstanceType
	if result.Region == config.DefaultImageRegion {
		result.ImageID = config.DefaultImageID
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Instance Type").
				Description("EC2 instance type of the Vault servers").
				Options(InstanceTypesToOptions()...).
				Value(&result.InstanceType),
			huh.NewInput().
				Title("Image ID").
				Description("Machine image in "+result.Region).
				Placeholder("ami-0123456789abcdef0").
				Value(&result.ImageID).
				Validate(validateImageID),
		).Title("Compute"),
	).RunWithContext(ctx)
}

// runCapacityGroup prompts for group capacity. Each bound is offered only
// values at or above the previous one.
func runCapacityGroup(ctx context.Context, result *WizardResult) error {
	result.MinCapacity = config.DefaultMinCapacity

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Minimum Capacity").
				Options(CapacityOptions(0)...).
				Value(&result.MinCapacity),
		).Title("Capacity"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.DesiredCapacity = max(result.MinCapacity, config.DefaultDesiredCapacity)
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Desired Capacity").
				Description("Odd numbers keep the Raft quorum stable").
				Options(CapacityOptions(result.MinCapacity)...).
				Value(&result.DesiredCapacity),
		).Title("Capacity"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.MaxCapacity = result.DesiredCapacity
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Maximum Capacity").
				Options(CapacityOptions(max(result.DesiredCapacity, 1))...).
				Value(&result.MaxCapacity),
		).Title("Capacity"),
	).RunWithContext(ctx)
}

// validateStackName validates the stack name format.
func validateStackName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errStackNameRequired
	}
	if !stackNameRegex.MatchString(s) {
		return errStackNameInvalid
	}
	return nil
}

// validateCIDR validates an IPv4 network range with a /16 to /28 prefix.
func validateCIDR(s string) error {
	if s == "" {
		return errCIDRRequired
	}
	ip, ipNet, err := net.ParseCIDR(s)
	if err != nil || ip.To4() == nil {
		return errCIDRInvalid
	}
	if ones, _ := ipNet.Mask.Size(); ones < 16 || ones > 28 {
		return errCIDRInvalid
	}
	return nil
}

// validateImageID validates an image ID.
func validateImageID(s string) error {
	if s == "" {
		return errImageRequired
	}
	if !imageIDRegex.MatchString(s) {
		return errImageInvalid
	}
	return nil
}
