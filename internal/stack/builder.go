package stack

import "github.com/phoenixveritas/vaultasg/internal/util/naming"

// Build turns params into a validated resource graph.
//
// The graph has one network node, one node per allocated subnet (each
// depending on the network), the instance role, the auto-scaling group
// (depending on the role, the network and every subnet it launches into)
// and the scaling policy (depending on the group). On any invariant
// violation Build returns a nil graph and a *ValidationError.
func Build(p Params) (*Graph, error) {
	p = p.clone()

	if err := validateParams(p); err != nil {
		return nil, err
	}

	subnets, err := allocateSubnets(p.Network)
	if err != nil {
		return nil, err
	}

	g := &Graph{
		StackName:   p.StackName,
		Description: p.Description,
		Env:         p.Env,
		Network:     p.Network,
		Subnets:     subnets,
		Role:        p.Role,
		Compute:     p.Compute,
		Scaling:     p.Scaling,
		Tags:        p.Tags,
	}

	g.addNode(naming.NetworkID, KindNetwork)
	for _, s := range subnets {
		g.addNode(s.ID, KindSubnet, naming.NetworkID)
	}

	g.addNode(naming.RoleID, KindRole)

	groupDeps := []string{naming.RoleID, naming.NetworkID}
	for _, s := range g.SubnetsByVisibility(p.Compute.Placement) {
		groupDeps = append(groupDeps, s.ID)
	}
	g.addNode(naming.ScalingGroupID, KindScalingGroup, groupDeps...)
	g.addNode(naming.ScalingPolicyID, KindScalingPolicy, naming.ScalingGroupID)

	return Validate(g)
}
