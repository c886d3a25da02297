// Package config defines the user-facing configuration of a Vault
// auto-scaling stack and converts it into [stack.Params].
//
// A [Config] is read from YAML (checked against a JSON schema before it is
// decoded) or from HCL, completed with [Config.ApplyDefaults], and handed to
// the stack builder through [Config.ToParams]. [Default] reproduces the
// reference stack: one public and one isolated /24 in 13.0.0.0/16 running
// three t3.small instances.
package config
