package wizard

import (
	"strconv"

	"github.com/charmbracelet/huh"
)

// RegionOption represents an AWS region.
type RegionOption struct {
	Value       string
	Description string
}

// InstanceTypeOption represents an EC2 instance type.
type InstanceTypeOption struct {
	Value       string
	Description string
}

// Regions contains the regions offered by the wizard.
var Regions = []RegionOption{
	{Value: "us-east-2", Description: "US East (Ohio)"},
	{Value: "us-east-1", Description: "US East (N. Virginia)"},
	{Value: "us-west-2", Description: "US West (Oregon)"},
	{Value: "eu-central-1", Description: "Europe (Frankfurt)"},
	{Value: "eu-west-1", Description: "Europe (Ireland)"},
	{Value: "ap-southeast-1", Description: "Asia Pacific (Singapore)"},
}

// InstanceTypes contains recommended instance types for Vault servers.
var InstanceTypes = []InstanceTypeOption{
	{Value: "t3.small", Description: "2 vCPU, 2GB RAM (burstable)"},
	{Value: "t3.medium", Description: "2 vCPU, 4GB RAM (burstable)"},
	{Value: "m5.large", Description: "2 vCPU, 8GB RAM"},
	{Value: "m5.xlarge", Description: "4 vCPU, 16GB RAM"},
	{Value: "c5.large", Description: "2 vCPU, 4GB RAM (compute optimized)"},
}

// Placement choices for the instances.
const (
	PlacementPublic   = "public"
	PlacementIsolated = "isolated"
)

// PlacementOptions contains subnet placement options.
var PlacementOptions = []huh.Option[string]{
	huh.NewOption("Public subnets (Recommended, allows management access)", PlacementPublic),
	huh.NewOption("Isolated subnets", PlacementIsolated),
}

// MaxCapacityChoice is the largest capacity offered by the wizard.
const MaxCapacityChoice = 9

// RegionsToOptions converts the region list to huh options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Value+" - "+r.Description, r.Value)
	}
	return opts
}

// InstanceTypesToOptions converts the instance type list to huh options.
func InstanceTypesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(InstanceTypes))
	for i, it := range InstanceTypes {
		opts[i] = huh.NewOption(it.Value+" - "+it.Description, it.Value)
	}
	return opts
}

// CapacityOptions returns the capacities from low to MaxCapacityChoice.
func CapacityOptions(low int) []huh.Option[int] {
	if low > MaxCapacityChoice {
		low = MaxCapacityChoice
	}
	opts := make([]huh.Option[int], 0, MaxCapacityChoice-low+1)
	for n := low; n <= MaxCapacityChoice; n++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(n), n))
	}
	return opts
}
