package stack

import (
	"fmt"

	"github.com/phoenixveritas/vaultasg/internal/util/naming"
)

// Subnet is a subnet placed in the network address space.
type Subnet struct {
	// ID is the graph node ID of the subnet.
	ID         string
	Name       string
	Visibility Visibility
	AZ         int
	CIDR       string
}

// allocateSubnets places every subnet group inside the network block.
// Pinned subnets are reserved first; the remaining groups are laid out in
// declaration order, one block per availability zone, from the start of
// the network.
func allocateSubnets(n NetworkSpec) ([]Subnet, error) {
	parent, err := parseIPv4Block(n.CIDR)
	if err != nil {
		return nil, invalid("network.cidr", "%v", err)
	}

	var taken []ipv4Block
	pinned := make(map[int]ipv4Block)
	for i, s := range n.Subnets {
		if s.CIDR == "" {
			continue
		}
		field := fmt.Sprintf("network.subnets[%d].cidr", i)
		block, err := parseIPv4Block(s.CIDR)
		if err != nil {
			return nil, invalid(field, "%v", err)
		}
		if !parent.contains(block) {
			return nil, invalid(field, "%s is outside network %s", block, parent)
		}
		for j, other := range n.Subnets {
			if o, ok := pinned[j]; ok && o.overlaps(block) {
				return nil, invalid(field, "%s overlaps subnet %q (%s)", block, other.Name, o)
			}
		}
		pinned[i] = block
		taken = append(taken, block)
	}

	azs := n.MaxAZs
	if azs < 1 {
		azs = 1
	}

	var out []Subnet
	cursor := parent.base
	for i, s := range n.Subnets {
		if block, ok := pinned[i]; ok {
			out = append(out, Subnet{
				ID:         naming.Subnet(s.Name, 0),
				Name:       s.Name,
				Visibility: s.Visibility,
				AZ:         0,
				CIDR:       block.String(),
			})
			continue
		}

		if s.Mask < parent.prefix || s.Mask > maxPrefix {
			return nil, invalid(fmt.Sprintf("network.subnets[%d].mask", i),
				"mask /%d must be between /%d and /%d", s.Mask, parent.prefix, maxPrefix)
		}

		for az := 0; az < azs; az++ {
			block, ok := nextFree(parent, s.Mask, cursor, taken)
			if !ok {
				return nil, invalid(fmt.Sprintf("network.subnets[%d].mask", i),
					"no room left in %s for a /%d block for subnet %q", parent, s.Mask, s.Name)
			}
			taken = append(taken, block)
			cursor = block.end()
			out = append(out, Subnet{
				ID:         naming.Subnet(s.Name, az),
				Name:       s.Name,
				Visibility: s.Visibility,
				AZ:         az,
				CIDR:       block.String(),
			})
		}
	}

	return out, nil
}
