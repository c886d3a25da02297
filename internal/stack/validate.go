package stack

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/phoenixveritas/vaultasg/internal/util/naming"
)

var (
	stackNameRegex    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,127}$`)
	accountRegex      = regexp.MustCompile(`^[0-9]{12}$`)
	regionRegex       = regexp.MustCompile(`^[a-z]{2}(-gov|-iso[a-z]*)?-[a-z]+-[0-9]$`)
	subnetNameRegex   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	instanceTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*\.[a-z0-9-]+$`)
	imageIDRegex      = regexp.MustCompile(`^ami-[0-9a-f]{8,17}$`)
	principalRegex    = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*\.amazonaws\.com(\.cn)?$`)
	policyNameRegex   = regexp.MustCompile(`^[A-Za-z0-9+=,.@_/-]+$`)
	logicalIDRegex    = regexp.MustCompile(`^[A-Za-z0-9]{1,255}$`)
)

const maxAZs = 6

// Validate checks every parameter and graph invariant of g. It has no side
// effects and returns g unchanged on success, or a nil graph and a
// *ValidationError.
func Validate(g *Graph) (*Graph, error) {
	if g == nil {
		return nil, invalid("graph", "graph is nil")
	}

	p := Params{
		StackName:   g.StackName,
		Description: g.Description,
		Env:         g.Env,
		Network:     g.Network,
		Compute:     g.Compute,
		Role:        g.Role,
		Scaling:     g.Scaling,
		Tags:        g.Tags,
	}
	if err := validateParams(p); err != nil {
		return nil, err
	}

	if err := validateLayout(g); err != nil {
		return nil, err
	}

	if err := validatePlacement(g); err != nil {
		return nil, err
	}

	if err := validateStructure(g); err != nil {
		return nil, err
	}

	return g, nil
}

// validateParams checks the invariants that do not depend on the subnet layout.
func validateParams(p Params) error {
	if !stackNameRegex.MatchString(p.StackName) {
		return invalid("stack_name", "%q must start with a letter and contain only letters, digits and hyphens (max 128)", p.StackName)
	}

	if err := validateEnvironment(p.Env); err != nil {
		return err
	}

	if err := validateNetwork(p.Network); err != nil {
		return err
	}

	if err := validateRole(p.Role); err != nil {
		return err
	}

	if err := validateCompute(p.Compute, p.Env); err != nil {
		return err
	}

	if err := validateScaling(p.Scaling, p.Compute); err != nil {
		return err
	}

	return validateTags(p.Tags)
}

func validateEnvironment(env Environment) error {
	if env.Account != "" && !accountRegex.MatchString(env.Account) {
		return invalid("environment.account", "%q must be a 12-digit account ID", env.Account)
	}
	if env.Region != "" && !regionRegex.MatchString(env.Region) {
		return invalid("environment.region", "%q is not a region name", env.Region)
	}
	return nil
}

func validateNetwork(n NetworkSpec) error {
	parent, err := parseIPv4Block(n.CIDR)
	if err != nil {
		return invalid("network.cidr", "%v", err)
	}
	if parent.prefix < minNetworkPrefix || parent.prefix > maxPrefix {
		return invalid("network.cidr", "prefix /%d must be between /%d and /%d", parent.prefix, minNetworkPrefix, maxPrefix)
	}

	if n.MaxAZs < 0 || n.MaxAZs > maxAZs {
		return invalid("network.max_azs", "%d must be between 0 and %d", n.MaxAZs, maxAZs)
	}

	if len(n.Subnets) == 0 {
		return invalid("network.subnets", "at least one subnet is required")
	}

	names := make(map[string]int, len(n.Subnets))
	for i, s := range n.Subnets {
		prefix := fmt.Sprintf("network.subnets[%d]", i)

		if !subnetNameRegex.MatchString(s.Name) {
			return invalid(prefix+".name", "%q must start with a letter and contain only letters, digits, '-' and '_'", s.Name)
		}
		key := strings.ToLower(naming.LogicalID(s.Name))
		if j, dup := names[key]; dup {
			return invalid(prefix+".name", "%q duplicates subnet %d", s.Name, j)
		}
		names[key] = i

		if !s.Visibility.IsValid() {
			return invalid(prefix+".type", "%q must be one of %s, %s", s.Visibility, VisibilityPublic, VisibilityIsolated)
		}

		if s.CIDR != "" {
			block, err := parseIPv4Block(s.CIDR)
			if err != nil {
				return invalid(prefix+".cidr", "%v", err)
			}
			if s.Mask != 0 && s.Mask != block.prefix {
				return invalid(prefix+".mask", "mask /%d disagrees with cidr %s", s.Mask, s.CIDR)
			}
			if block.prefix > maxPrefix {
				return invalid(prefix+".cidr", "prefix /%d must be at most /%d", block.prefix, maxPrefix)
			}
			continue
		}

		if s.Mask < parent.prefix || s.Mask > maxPrefix {
			return invalid(prefix+".mask", "mask /%d must be between /%d and /%d", s.Mask, parent.prefix, maxPrefix)
		}
	}

	return nil
}

// validateLayout checks that allocated subnets are subdivisions of the
// network and do not overlap each other.
func validateLayout(g *Graph) error {
	parent, err := parseIPv4Block(g.Network.CIDR)
	if err != nil {
		return invalid("network.cidr", "%v", err)
	}

	if len(g.Subnets) == 0 {
		return invalid("network.subnets", "no subnets were allocated")
	}

	blocks := make([]ipv4Block, len(g.Subnets))
	for i, s := range g.Subnets {
		block, err := parseIPv4Block(s.CIDR)
		if err != nil {
			return invalid("network.subnets", "subnet %q: %v", s.Name, err)
		}
		if !parent.contains(block) {
			return invalid("network.subnets", "subnet %q (%s) is outside network %s", s.Name, block, parent)
		}
		for j := 0; j < i; j++ {
			if blocks[j].overlaps(block) {
				return invalid("network.subnets", "subnet %q (%s) overlaps subnet %q (%s)",
					s.Name, block, g.Subnets[j].Name, blocks[j])
			}
		}
		blocks[i] = block
	}

	return nil
}

func validatePlacement(g *Graph) error {
	placement := g.Compute.Placement
	if len(g.SubnetsByVisibility(placement)) > 0 {
		return nil
	}
	if placement == VisibilityPublic {
		return invalid("compute.placement", "instances need inbound management access but no public subnet is declared")
	}
	return invalid("compute.placement", "no %s subnet is declared", placement)
}

func validateRole(r RoleSpec) error {
	if r.Principal == "" {
		return invalid("role.assumed_by", "a trust principal is required")
	}
	if !principalRegex.MatchString(r.Principal) {
		return invalid("role.assumed_by", "%q is not a service principal such as ec2.amazonaws.com", r.Principal)
	}

	seen := make(map[string]bool, len(r.ManagedPolicies))
	for i, p := range r.ManagedPolicies {
		field := fmt.Sprintf("role.managed_policies[%d]", i)
		switch {
		case p == "":
			return invalid(field, "policy identifier is empty")
		case strings.HasPrefix(p, "arn:"):
			if len(strings.SplitN(p, ":", 6)) != 6 {
				return invalid(field, "%q is not a valid ARN", p)
			}
		case !policyNameRegex.MatchString(p):
			return invalid(field, "%q is not a valid managed policy name", p)
		}
		if seen[p] {
			return invalid(field, "%q is attached twice", p)
		}
		seen[p] = true
	}
	return nil
}

func validateCompute(c ComputeSpec, env Environment) error {
	if !instanceTypeRegex.MatchString(c.InstanceType) {
		return invalid("compute.instance_type", "%q must look like family.size, e.g. t3.small", c.InstanceType)
	}

	if len(c.Images) == 0 {
		return invalid("compute.images", "at least one region to image mapping is required")
	}
	for _, region := range sortedKeys(c.Images) {
		if !regionRegex.MatchString(region) {
			return invalid("compute.images", "%q is not a region name", region)
		}
		if !imageIDRegex.MatchString(c.Images[region]) {
			return invalid("compute.images", "%q for region %s is not an image ID", c.Images[region], region)
		}
	}
	if env.Region != "" {
		if _, ok := c.Images[env.Region]; !ok {
			return invalid("compute.images", "no image for region %s (have %s)", env.Region, strings.Join(sortedKeys(c.Images), ", "))
		}
	}

	if c.MinCapacity < 0 {
		return invalid("compute.min_capacity", "%d must not be negative", c.MinCapacity)
	}
	if c.DesiredCapacity < 0 {
		return invalid("compute.desired_capacity", "%d must not be negative", c.DesiredCapacity)
	}
	if c.MaxCapacity < 1 {
		return invalid("compute.max_capacity", "%d must be at least 1", c.MaxCapacity)
	}
	if c.MinCapacity > c.MaxCapacity {
		return invalid("compute.min_capacity", "min capacity %d exceeds max capacity %d", c.MinCapacity, c.MaxCapacity)
	}
	if c.DesiredCapacity < c.MinCapacity || c.DesiredCapacity > c.MaxCapacity {
		return invalid("compute.desired_capacity", "desired capacity %d is outside capacity bounds [%d, %d]",
			c.DesiredCapacity, c.MinCapacity, c.MaxCapacity)
	}

	if !c.Placement.IsValid() {
		return invalid("compute.placement", "%q must be one of %s, %s", c.Placement, VisibilityPublic, VisibilityIsolated)
	}
	return nil
}

func validateScaling(s ScalingPolicySpec, c ComputeSpec) error {
	if !s.AdjustmentType.IsValid() {
		return invalid("scaling.adjustment_type", "%q must be one of %s, %s, %s", s.AdjustmentType,
			AdjustmentExactCapacity, AdjustmentChangeInCapacity, AdjustmentPercentChangeInCapacity)
	}

	if len(s.Steps) == 0 {
		return invalid("scaling.steps", "at least one step adjustment is required")
	}

	for i, step := range s.Steps {
		if math.IsNaN(step.LowerBound) || math.IsInf(step.LowerBound, 0) {
			return invalid(fmt.Sprintf("scaling.steps[%d].lower_bound", i), "%g is not a finite number", step.LowerBound)
		}
		if i > 0 && step.LowerBound <= s.Steps[i-1].LowerBound {
			return invalid(fmt.Sprintf("scaling.steps[%d].lower_bound", i),
				"lower bounds must be strictly increasing, %g follows %g", step.LowerBound, s.Steps[i-1].LowerBound)
		}
		if s.AdjustmentType == AdjustmentExactCapacity && (step.Adjustment < 0 || step.Adjustment > c.MaxCapacity) {
			return invalid(fmt.Sprintf("scaling.steps[%d].adjustment", i),
				"exact capacity %d is outside [0, %d]", step.Adjustment, c.MaxCapacity)
		}
	}
	return nil
}

func validateTags(tags map[string]string) error {
	for _, k := range sortedKeys(tags) {
		switch {
		case k == "":
			return invalid("tags", "tag key is empty")
		case len(k) > 128:
			return invalid("tags", "tag key %q is longer than 128 characters", k)
		case strings.HasPrefix(strings.ToLower(k), "aws:"):
			return invalid("tags", "tag key %q uses the reserved aws: prefix", k)
		case len(tags[k]) > 256:
			return invalid("tags", "value of tag %q is longer than 256 characters", k)
		}
	}
	return nil
}

// validateStructure checks the node set: one node per singleton kind, one
// node per allocated subnet, alphanumeric IDs, resolvable acyclic edges.
func validateStructure(g *Graph) error {
	counts := make(map[Kind]int)
	for _, n := range g.nodes {
		if !logicalIDRegex.MatchString(n.ID) {
			return invalid("graph", "node ID %q must be alphanumeric", n.ID)
		}
		counts[n.Kind]++
	}

	for _, k := range []Kind{KindNetwork, KindRole, KindScalingGroup, KindScalingPolicy} {
		if counts[k] != 1 {
			return invalid("graph", "expected exactly one %s node, found %d", k, counts[k])
		}
	}

	if counts[KindSubnet] != len(g.Subnets) {
		return invalid("graph", "found %d subnet nodes for %d allocated subnets", counts[KindSubnet], len(g.Subnets))
	}
	for _, s := range g.Subnets {
		n, ok := g.Node(s.ID)
		if !ok || n.Kind != KindSubnet {
			return invalid("graph", "allocated subnet %q has no subnet node", s.ID)
		}
	}

	if _, err := g.TopologicalOrder(); err != nil {
		return invalid("graph", "%v", err)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
