// Package publish stages a synthesized descriptor in object storage so the
// provisioning engine can fetch it by URL.
package publish

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/phoenixveritas/vaultasg/internal/descriptor"
	"github.com/phoenixveritas/vaultasg/internal/platform/s3"
	"github.com/phoenixveritas/vaultasg/internal/util/naming"
	"github.com/phoenixveritas/vaultasg/internal/util/retry"
)

const contentTypeJSON = "application/json"

// Uploader is the object storage surface publishing needs. *s3.Client
// implements it.
type Uploader interface {
	EnsureBucket(ctx context.Context, bucket string) error
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
}

// Result lists where the descriptor was staged.
type Result struct {
	TemplateURL string
	ManifestURL string
	// TemplateReused is set when an identical template was already staged.
	TemplateReused bool
}

// Publish uploads the template to a content-addressed key and the manifest
// to a per-stack key under prefix, creating the bucket first if needed.
// Transient storage errors are retried. Republishing an unchanged
// descriptor skips the template upload.
func Publish(ctx context.Context, up Uploader, bucket, prefix string, d *descriptor.Descriptor, opts ...retry.Option) (*Result, error) {
	if bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	if d == nil {
		return nil, fmt.Errorf("descriptor is required")
	}

	opts = append([]retry.Option{retry.WithRetryIf(s3.IsTransient)}, opts...)

	err := retry.Do(ctx, "ensure bucket", func(ctx context.Context) error {
		return up.EnsureBucket(ctx, bucket)
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare bucket %s: %w", bucket, err)
	}

	templateKey := naming.TemplateObjectKey(prefix, d.TemplateHash)
	manifestKey := naming.ManifestObjectKey(prefix, d.StackName)
	result := &Result{
		TemplateURL: s3.ObjectURL(bucket, templateKey),
		ManifestURL: s3.ObjectURL(bucket, manifestKey),
	}

	err = retry.Do(ctx, "check template", func(ctx context.Context) error {
		exists, err := up.ObjectExists(ctx, bucket, templateKey)
		result.TemplateReused = exists
		return err
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to check template %s: %w", templateKey, err)
	}

	if result.TemplateReused {
		log.WithField("key", templateKey).Debug("template already staged")
	} else if err := put(ctx, up, bucket, templateKey, d.Template, opts); err != nil {
		return nil, err
	}

	if err := put(ctx, up, bucket, manifestKey, d.Manifest, opts); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"stack":    d.StackName,
		"template": result.TemplateURL,
		"manifest": result.ManifestURL,
	}).Debug("descriptor published")

	return result, nil
}

func put(ctx context.Context, up Uploader, bucket, key string, data []byte, opts []retry.Option) error {
	err := retry.Do(ctx, "upload "+key, func(ctx context.Context) error {
		return up.PutObject(ctx, bucket, key, contentTypeJSON, data)
	}, opts...)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
