// Package main is the entry point for the vaultasg CLI.
//
// vaultasg declares a Vault server fleet on an EC2 auto-scaling group inside
// a dedicated VPC and synthesizes it into a CloudFormation cloud assembly.
//
// Commands: init, validate, synth, publish.
//
// For detailed usage information, run:
//
//	vaultasg --help
package main

import (
	"fmt"
	"os"

	"github.com/phoenixveritas/vaultasg/cmd/vaultasg/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
