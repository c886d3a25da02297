package stack

// Visibility controls how a subnet is reachable.
type Visibility string

const (
	// VisibilityPublic subnets route 0.0.0.0/0 through an internet gateway.
	VisibilityPublic Visibility = "public"
	// VisibilityIsolated subnets have no route outside the network.
	VisibilityIsolated Visibility = "isolated"
)

// IsValid returns true for a known visibility.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityIsolated:
		return true
	default:
		return false
	}
}

// AdjustmentType selects how a step adjustment changes capacity.
type AdjustmentType string

const (
	// AdjustmentExactCapacity sets the group to the adjustment value.
	AdjustmentExactCapacity AdjustmentType = "exact-capacity"
	// AdjustmentChangeInCapacity adds the adjustment to the current capacity.
	AdjustmentChangeInCapacity AdjustmentType = "change-in-capacity"
	// AdjustmentPercentChangeInCapacity scales the current capacity by a percentage.
	AdjustmentPercentChangeInCapacity AdjustmentType = "percent-change-in-capacity"
)

// IsValid returns true for a known adjustment type.
func (a AdjustmentType) IsValid() bool {
	switch a {
	case AdjustmentExactCapacity, AdjustmentChangeInCapacity, AdjustmentPercentChangeInCapacity:
		return true
	default:
		return false
	}
}

// SubnetSpec describes one subnet group. Without an explicit CIDR the
// builder allocates one block of the given mask per availability zone.
type SubnetSpec struct {
	Name       string
	Mask       int
	Visibility Visibility

	// CIDR pins the subnet to a block. Pinned subnets occupy the first
	// availability zone only.
	CIDR string
}

// NetworkSpec describes the virtual network.
type NetworkSpec struct {
	CIDR    string
	MaxAZs  int
	Subnets []SubnetSpec
}

// ComputeSpec describes the auto-scaling group's instances.
type ComputeSpec struct {
	InstanceType string

	// Images maps region names to machine image IDs.
	Images map[string]string

	MinCapacity     int
	DesiredCapacity int
	MaxCapacity     int

	// Placement selects the subnets the group launches into.
	Placement         Visibility
	AssociatePublicIP bool
}

// RoleSpec describes the instance role.
type RoleSpec struct {
	// Principal is the service allowed to assume the role.
	Principal string

	// ManagedPolicies holds managed policy names or full ARNs.
	ManagedPolicies []string
}

// StepAdjustment applies Adjustment once the metric breach reaches LowerBound.
type StepAdjustment struct {
	Adjustment int
	LowerBound float64
}

// ScalingPolicySpec describes the step-scaling policy of the group.
type ScalingPolicySpec struct {
	AdjustmentType AdjustmentType
	Steps          []StepAdjustment
}

// Environment pins the stack to an account and region. The zero value
// produces an environment-agnostic descriptor.
type Environment struct {
	Account string
	Region  string
}

// IsAgnostic returns true when neither account nor region is set.
func (e Environment) IsAgnostic() bool {
	return e.Account == "" && e.Region == ""
}

// Params is the complete input of Build.
type Params struct {
	StackName   string
	Description string
	Env         Environment
	Network     NetworkSpec
	Compute     ComputeSpec
	Role        RoleSpec
	Scaling     ScalingPolicySpec
	Tags        map[string]string
}

func (p Params) clone() Params {
	out := p
	out.Network.Subnets = append([]SubnetSpec(nil), p.Network.Subnets...)
	out.Compute.Images = cloneMap(p.Compute.Images)
	out.Role.ManagedPolicies = append([]string(nil), p.Role.ManagedPolicies...)
	out.Scaling.Steps = append([]StepAdjustment(nil), p.Scaling.Steps...)
	out.Tags = cloneMap(p.Tags)
	return out
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
