// Package s3 provides the S3 client used to stage synthesized stack
// descriptors.
//
// It ensures the staging bucket exists, uploads templates and manifests,
// and classifies API errors so callers can retry only transient failures.
// Endpoint and path-style options allow S3-compatible stores.
package s3
