package publish

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vtesting "github.com/phoenixveritas/vaultasg/internal/testing"
	"github.com/phoenixveritas/vaultasg/internal/util/retry"
)

// fakeUploader is an in-memory Uploader. Failures queued in putErrs are
// returned by successive PutObject calls before it starts succeeding.
type fakeUploader struct {
	mu        sync.Mutex
	buckets   map[string]bool
	objects   map[string][]byte
	types     map[string]string
	puts      []string
	putErrs   []error
	ensureErr error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{
		buckets: map[string]bool{},
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
}

func (f *fakeUploader) EnsureBucket(_ context.Context, bucket string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ensureErr != nil {
		return f.ensureErr
	}
	f.buckets[bucket] = true
	return nil
}

func (f *fakeUploader) ObjectExists(_ context.Context, bucket, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[bucket+"/"+key]
	return ok, nil
}

func (f *fakeUploader) PutObject(_ context.Context, bucket, key, contentType string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, key)
	if len(f.putErrs) > 0 {
		err := f.putErrs[0]
		f.putErrs = f.putErrs[1:]
		return err
	}
	f.objects[bucket+"/"+key] = append([]byte(nil), data...)
	f.types[bucket+"/"+key] = contentType
	return nil
}

func fastRetry() retry.Option {
	return func(p *retry.Policy) {
		p.InitialDelay = time.Millisecond
		p.MaxDelay = time.Millisecond
	}
}

func TestPublish(t *testing.T) {
	t.Parallel()

	up := newFakeUploader()
	d := vtesting.ReferenceDescriptor(t)

	res, err := Publish(vtesting.TestContext(t), up, "assets", "stacks/", d, fastRetry())
	require.NoError(t, err)

	templateKey := "stacks/" + d.TemplateHash + ".json"
	manifestKey := "stacks/VaultClusterAsgStack/manifest.json"
	assert.Equal(t, &Result{
		TemplateURL: "s3://assets/" + templateKey,
		ManifestURL: "s3://assets/" + manifestKey,
	}, res)

	assert.True(t, up.buckets["assets"])
	assert.Equal(t, d.Template, up.objects["assets/"+templateKey])
	assert.Equal(t, d.Manifest, up.objects["assets/"+manifestKey])
	assert.Equal(t, contentTypeJSON, up.types["assets/"+templateKey])
}

func TestPublish_Idempotent(t *testing.T) {
	t.Parallel()

	up := newFakeUploader()
	d := vtesting.ReferenceDescriptor(t)

	_, err := Publish(vtesting.TestContext(t), up, "assets", "", d, fastRetry())
	require.NoError(t, err)
	res, err := Publish(vtesting.TestContext(t), up, "assets", "", d, fastRetry())
	require.NoError(t, err)

	assert.True(t, res.TemplateReused)
	assert.Equal(t, []string{
		d.TemplateHash + ".json",
		"VaultClusterAsgStack/manifest.json",
		"VaultClusterAsgStack/manifest.json",
	}, up.puts)
}

func TestPublish_RetriesTransientErrors(t *testing.T) {
	t.Parallel()

	up := newFakeUploader()
	up.putErrs = []error{
		&smithy.GenericAPIError{Code: "SlowDown", Fault: smithy.FaultServer},
		&smithy.GenericAPIError{Code: "InternalError", Fault: smithy.FaultServer},
	}
	d := vtesting.ReferenceDescriptor(t)

	_, err := Publish(vtesting.TestContext(t), up, "assets", "", d, fastRetry())
	require.NoError(t, err)
	assert.Len(t, up.puts, 4)
	assert.Equal(t, d.Template, up.objects["assets/"+d.TemplateHash+".json"])
}

func TestPublish_PermanentErrorStops(t *testing.T) {
	t.Parallel()

	denied := &smithy.GenericAPIError{Code: "AccessDenied", Fault: smithy.FaultClient}
	up := newFakeUploader()
	up.putErrs = []error{denied}

	_, err := Publish(vtesting.TestContext(t), up, "assets", "", vtesting.ReferenceDescriptor(t), fastRetry())
	require.Error(t, err)
	assert.Len(t, up.puts, 1)

	var apiErr smithy.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "AccessDenied", apiErr.ErrorCode())
}

func TestPublish_BucketError(t *testing.T) {
	t.Parallel()

	up := newFakeUploader()
	up.ensureErr = errors.New("no permission")

	_, err := Publish(vtesting.TestContext(t), up, "assets", "", vtesting.ReferenceDescriptor(t), fastRetry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare bucket assets")
	assert.Empty(t, up.puts)
}

func TestPublish_InvalidArguments(t *testing.T) {
	t.Parallel()

	_, err := Publish(vtesting.TestContext(t), newFakeUploader(), "", "", vtesting.ReferenceDescriptor(t))
	assert.EqualError(t, err, "bucket is required")

	_, err = Publish(vtesting.TestContext(t), newFakeUploader(), "assets", "", nil)
	assert.EqualError(t, err, "descriptor is required")
}
