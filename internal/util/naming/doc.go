// Package naming provides consistent naming functions for stack resources.
//
// Graph nodes and template resources use alphanumeric logical IDs built by
// [LogicalID]: each part is split on non-alphanumeric characters and
// title-cased, so "public" and subnet index 0 give "VpcPublicSubnet1".
// Human-readable names follow the construct path pattern
// {stack}/{node}/{child} and end up in Name tags and descriptions.
package naming
