package testing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phoenixveritas/vaultasg/internal/config"
	"github.com/phoenixveritas/vaultasg/internal/descriptor"
	"github.com/phoenixveritas/vaultasg/internal/stack"
)

// Descriptor builds and emits cfg, failing the test on any error.
func Descriptor(t *testing.T, cfg *config.Config) *descriptor.Descriptor {
	t.Helper()
	g, err := stack.Build(cfg.ToParams())
	require.NoError(t, err)
	d, err := descriptor.Emit(g)
	require.NoError(t, err)
	return d
}

// ReferenceDescriptor emits the built-in reference stack.
func ReferenceDescriptor(t *testing.T) *descriptor.Descriptor {
	t.Helper()
	return Descriptor(t, config.Default())
}

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
