package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/phoenixveritas/vaultasg/internal/descriptor"
	"github.com/phoenixveritas/vaultasg/internal/platform/s3"
	"github.com/phoenixveritas/vaultasg/internal/publish"
	"github.com/phoenixveritas/vaultasg/internal/ui"
)

// Factory function variables for publish - can be replaced in tests.
var (
	// readAssembly loads a previously synthesized assembly.
	readAssembly = descriptor.ReadAssembly

	// newUploader creates the object storage client.
	newUploader = func(ctx context.Context, opts s3.Options) (publish.Uploader, error) {
		client, err := s3.NewClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	// publishDescriptor uploads a descriptor.
	publishDescriptor = publish.Publish
)

// PublishOptions holds the publish command flags.
type PublishOptions struct {
	AssemblyDir string
	Bucket      string
	Prefix      string
	Region      string
	Endpoint    string
	PathStyle   bool
}

// Publish uploads the template and manifest of a synthesized assembly to an
// S3 bucket. Static credentials are taken from AWS_ACCESS_KEY_ID and
// AWS_SECRET_ACCESS_KEY when set, otherwise from the SDK's default chain.
func Publish(ctx context.Context, opts PublishOptions) error {
	if opts.Bucket == "" {
		return errors.New("--bucket is required")
	}

	d, err := readAssembly(opts.AssemblyDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no assembly in %s, run 'vaultasg synth' first: %w", opts.AssemblyDir, err)
		}
		return err
	}

	up, err := newUploader(ctx, s3.Options{
		Region:    opts.Region,
		Endpoint:  opts.Endpoint,
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		PathStyle: opts.PathStyle,
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"stack":  d.StackName,
		"bucket": opts.Bucket,
	}).Debug("publishing assembly")

	res, err := publishDescriptor(ctx, up, opts.Bucket, opts.Prefix, d)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", d.StackName, err)
	}

	if isInteractive() {
		fmt.Fprint(stdout, ui.RenderPublishSummary(d.StackName, res))
		return nil
	}
	if res.TemplateReused {
		log.Infof("template already staged at %s", res.TemplateURL)
	} else {
		log.Infof("uploaded template to %s", res.TemplateURL)
	}
	log.Infof("uploaded manifest to %s", res.ManifestURL)
	return nil
}
