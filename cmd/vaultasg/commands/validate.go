package commands

import (
	"github.com/spf13/cobra"

	"github.com/phoenixveritas/vaultasg/cmd/vaultasg/handlers"
)

// Validate returns the command that checks a config without writing output.
func Validate() *cobra.Command {
	var (
		configPath   string
		account      string
		region       string
		useAWSRegion bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the config describes a valid stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Validate(cmd.Context(), configPath, handlers.EnvironmentOverrides{
				Account:      account,
				Region:       region,
				UseAWSRegion: useAWSRegion,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	addEnvironmentFlags(cmd, &account, &region, &useAWSRegion)

	return cmd
}
