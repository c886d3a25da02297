package commands

import (
	"github.com/spf13/cobra"

	"github.com/phoenixveritas/vaultasg/cmd/vaultasg/handlers"
)

// Publish returns the command that stages a synthesized assembly in S3.
func Publish() *cobra.Command {
	var opts handlers.PublishOptions

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload a synthesized assembly to an S3 bucket",
		Long: `Upload the template and manifest of a synthesized assembly to S3.

The template is stored under <prefix>/<sha256>.json, so unchanged templates
are not uploaded twice. The manifest is stored under
<prefix>/<StackName>/manifest.json. The bucket is created when missing.

Credentials come from AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY or the
default AWS configuration chain. Use --endpoint and --path-style for
S3-compatible stores.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Publish(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.AssemblyDir, "assembly", "a", "assembly.out", "Assembly directory written by synth")
	cmd.Flags().StringVar(&opts.Bucket, "bucket", "", "Destination bucket (required)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&opts.Region, "region", "", "Bucket region")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Custom S3 endpoint URL")
	cmd.Flags().BoolVar(&opts.PathStyle, "path-style", false, "Use path-style bucket addressing")
	_ = cmd.MarkFlagRequired("bucket")

	return cmd
}
