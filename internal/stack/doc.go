// Package stack builds and validates the resource graph of a Vault
// auto-scaling stack.
//
// [Build] turns a [Params] value into a [Graph] whose nodes are the network,
// one node per allocated subnet, the instance role, the auto-scaling group and
// its step-scaling policy. Edges point from a node to the nodes it depends on.
// [Validate] enforces every parameter and graph invariant and is the only
// place business rules live; the descriptor emitter trusts a validated graph.
//
// All failures are reported as [*ValidationError].
package stack
