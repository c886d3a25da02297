//go:build integration

// Integration tests that publish a synthesized stack through the real S3
// client against an in-memory S3 endpoint.
//
// Run these tests with:
//
//	go test -v -tags=integration ./internal/publish/...
package publish_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phoenixveritas/vaultasg/internal/config"
	"github.com/phoenixveritas/vaultasg/internal/descriptor"
	"github.com/phoenixveritas/vaultasg/internal/platform/s3"
	"github.com/phoenixveritas/vaultasg/internal/publish"
	"github.com/phoenixveritas/vaultasg/internal/stack"
)

func TestPublishIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Publish Integration Suite")
}

// memoryS3 serves the path-style bucket and object calls publish makes.
type memoryS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	puts    []string
}

func newMemoryS3() *memoryS3 {
	return &memoryS3{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (m *memoryS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	switch {
	case key == "" && r.Method == http.MethodHead:
		if !m.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case key == "" && r.Method == http.MethodPut:
		m.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodHead:
		if _, ok := m.objects[bucket+"/"+key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		if !m.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		m.objects[bucket+"/"+key] = body
		m.puts = append(m.puts, key)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (m *memoryS3) object(bucket, key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[bucket+"/"+key]
}

func (m *memoryS3) uploads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.puts...)
}

var _ = Describe("Publishing a synthesized stack", func() {
	var (
		ctx    context.Context
		store  *memoryS3
		server *httptest.Server
		client *s3.Client
		desc   *descriptor.Descriptor
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newMemoryS3()
		server = httptest.NewServer(store)
		DeferCleanup(server.Close)

		var err error
		client, err = s3.NewClient(ctx, s3.Options{
			Region:    "us-east-2",
			Endpoint:  server.URL,
			AccessKey: "test-key",
			SecretKey: "test-secret",
			PathStyle: true,
		})
		Expect(err).NotTo(HaveOccurred())

		g, err := stack.Build(config.Default().ToParams())
		Expect(err).NotTo(HaveOccurred())
		desc, err = descriptor.Emit(g)
		Expect(err).NotTo(HaveOccurred())
	})

	It("creates the bucket and uploads template and manifest", func() {
		res, err := publish.Publish(ctx, client, "assets", "stacks", desc)
		Expect(err).NotTo(HaveOccurred())

		templateKey := "stacks/" + desc.TemplateHash + ".json"
		Expect(res.TemplateURL).To(Equal("s3://assets/" + templateKey))
		Expect(res.TemplateReused).To(BeFalse())
		Expect(store.object("assets", templateKey)).To(Equal(desc.Template))
		Expect(store.object("assets", "stacks/VaultClusterAsgStack/manifest.json")).To(Equal(desc.Manifest))
	})

	It("skips the template when republishing an unchanged stack", func() {
		_, err := publish.Publish(ctx, client, "assets", "", desc)
		Expect(err).NotTo(HaveOccurred())

		res, err := publish.Publish(ctx, client, "assets", "", desc)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.TemplateReused).To(BeTrue())
		Expect(store.uploads()).To(Equal([]string{
			desc.TemplateHash + ".json",
			"VaultClusterAsgStack/manifest.json",
			"VaultClusterAsgStack/manifest.json",
		}))
	})

	It("publishes a new template when the stack changes", func() {
		_, err := publish.Publish(ctx, client, "assets", "", desc)
		Expect(err).NotTo(HaveOccurred())

		cfg := config.Default()
		cfg.Compute.InstanceType = "t3.medium"
		g, err := stack.Build(cfg.ToParams())
		Expect(err).NotTo(HaveOccurred())
		changed, err := descriptor.Emit(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(changed.TemplateHash).NotTo(Equal(desc.TemplateHash))

		res, err := publish.Publish(ctx, client, "assets", "", changed)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.TemplateReused).To(BeFalse())
		Expect(store.object("assets", changed.TemplateHash+".json")).To(Equal(changed.Template))
		Expect(store.object("assets", "VaultClusterAsgStack/manifest.json")).To(Equal(changed.Manifest))
	})
})
