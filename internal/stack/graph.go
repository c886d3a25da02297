package stack

import (
	"fmt"
	"sort"
)

// Kind identifies what a graph node declares.
type Kind string

const (
	KindNetwork       Kind = "network"
	KindSubnet        Kind = "subnet"
	KindRole          Kind = "role"
	KindScalingGroup  Kind = "scaling-group"
	KindScalingPolicy Kind = "scaling-policy"
)

// Node is one declaration in the resource graph.
type Node struct {
	ID        string
	Kind      Kind
	DependsOn []string
}

// Graph is the resource graph of one stack. The *Spec fields hold the
// inputs the nodes were built from; Subnets holds the allocated layout.
type Graph struct {
	StackName   string
	Description string
	Env         Environment
	Network     NetworkSpec
	Subnets     []Subnet
	Role        RoleSpec
	Compute     ComputeSpec
	Scaling     ScalingPolicySpec
	Tags        map[string]string

	nodes []Node
}

func (g *Graph) addNode(id string, kind Kind, deps ...string) {
	g.nodes = append(g.nodes, Node{ID: id, Kind: kind, DependsOn: deps})
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		n.DependsOn = append([]string(nil), n.DependsOn...)
		out[i] = n
	}
	return out
}

// Node looks up a node by ID.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Subnet looks up an allocated subnet by node ID.
func (g *Graph) Subnet(id string) (Subnet, bool) {
	for _, s := range g.Subnets {
		if s.ID == id {
			return s, true
		}
	}
	return Subnet{}, false
}

// SubnetsByVisibility returns the allocated subnets with the given visibility.
func (g *Graph) SubnetsByVisibility(v Visibility) []Subnet {
	var out []Subnet
	for _, s := range g.Subnets {
		if s.Visibility == v {
			out = append(out, s)
		}
	}
	return out
}

// HasPublicSubnets reports whether any subnet routes to the internet.
func (g *Graph) HasPublicSubnets() bool {
	return len(g.SubnetsByVisibility(VisibilityPublic)) > 0
}

// TopologicalOrder returns the nodes so that every node follows its
// dependencies. Ties keep insertion order, which keeps the result stable.
func (g *Graph) TopologicalOrder() ([]Node, error) {
	index := make(map[string]int, len(g.nodes))
	for i, n := range g.nodes {
		if _, dup := index[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node %q", n.ID)
		}
		index[n.ID] = i
	}

	indegree := make([]int, len(g.nodes))
	dependents := make([][]int, len(g.nodes))
	for i, n := range g.nodes {
		for _, dep := range n.DependsOn {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("node %q depends on unknown node %q", n.ID, dep)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	var ready []int
	for i := range g.nodes {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	out := make([]Node, 0, len(g.nodes))
	for len(ready) > 0 {
		sort.Ints(ready)
		i := ready[0]
		ready = ready[1:]
		out = append(out, g.nodes[i])
		for _, d := range dependents[i] {
			indegree[d]--
			if indegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(out) != len(g.nodes) {
		var stuck []string
		for i, n := range g.nodes {
			if indegree[i] > 0 {
				stuck = append(stuck, n.ID)
			}
		}
		return nil, fmt.Errorf("dependency cycle between %v", stuck)
	}
	return out, nil
}
