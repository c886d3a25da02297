package commands

import (
	"github.com/spf13/cobra"

	"github.com/phoenixveritas/vaultasg/cmd/vaultasg/handlers"
)

// Init returns the command for creating a stack configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "vaultasg.yaml")
//	--defaults: Write the reference stack without prompting
func Init() *cobra.Command {
	var (
		outputPath  string
		useDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a stack configuration",
		Long: `Interactively create a stack configuration file.

This command asks about:

  - Stack name and region
  - Network CIDR and subnet layout
  - Instance type and machine image
  - Group capacity

Use --defaults to write the reference stack without prompting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, useDefaults)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "vaultasg.yaml", "Output file path")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write the reference stack without prompting")

	return cmd
}
