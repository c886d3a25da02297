// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers package.
package commands

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phoenixveritas/vaultasg/internal/logging"
)

// Root returns the root command for the vaultasg CLI.
func Root() *cobra.Command {
	var (
		quiet   bool
		verbose int
	)

	cmd := &cobra.Command{
		Use:           "vaultasg",
		Short:         "Synthesize a Vault auto-scaling group stack for AWS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logging.Setup(log.StandardLogger(), os.Stderr, quiet, verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")
	cmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Increase log verbosity, repeat for trace output")

	cmd.AddCommand(Init())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Synth())
	cmd.AddCommand(Publish())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// addEnvironmentFlags binds the flags that select the target environment.
func addEnvironmentFlags(cmd *cobra.Command, account, region *string, useAWSRegion *bool) {
	cmd.Flags().StringVar(account, "account", "", "Target AWS account ID")
	cmd.Flags().StringVar(region, "region", "", "Target AWS region")
	cmd.Flags().BoolVar(useAWSRegion, "use-aws-region", false, "Take the region from AWS_REGION or the active profile when none is set")
}
