package commands

import (
	"github.com/spf13/cobra"

	"github.com/phoenixveritas/vaultasg/cmd/vaultasg/handlers"
)

// Synth returns the command that writes the cloud assembly.
//
// Flags:
//
//	--config, -c: Path to config file (default: search for vaultasg.yaml/.hcl)
//	--out, -o: Assembly output directory (default "assembly.out")
//	--format: Template format for --stdout (json or yaml)
//	--stdout: Print the template instead of writing the assembly
//	--metrics-file: Write Prometheus textfile metrics to this path
func Synth() *cobra.Command {
	var (
		opts         handlers.SynthOptions
		account      string
		region       string
		useAWSRegion bool
	)

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the stack into a cloud assembly",
		Long: `Build the stack declared by the config file and write its cloud assembly.

The assembly directory receives <StackName>.template.json and manifest.json.
Without --config, vaultasg.yaml or vaultasg.hcl is searched for in the current
directory and its parents; when neither exists the built-in reference stack is
synthesized.

Output is deterministic: the same config always yields byte-identical files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Env = handlers.EnvironmentOverrides{
				Account:      account,
				Region:       region,
				UseAWSRegion: useAWSRegion,
			}
			return handlers.Synth(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&opts.OutDir, "out", "o", "assembly.out", "Assembly output directory")
	cmd.Flags().StringVar(&opts.Format, "format", handlers.FormatJSON, "Template format for --stdout (json or yaml)")
	cmd.Flags().BoolVar(&opts.Stdout, "stdout", false, "Print the template instead of writing the assembly")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	addEnvironmentFlags(cmd, &account, &region, &useAWSRegion)

	return cmd
}
