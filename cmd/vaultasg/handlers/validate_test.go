package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phoenixveritas/vaultasg/internal/config"
	"github.com/phoenixveritas/vaultasg/internal/stack"
)

func TestValidate_Defaults(t *testing.T) {
	saveAndRestoreFactories(t)
	findConfigFile = noConfigFile
	logs := captureLog(t)

	require.NoError(t, Validate(context.Background(), "", EnvironmentOverrides{}))
	assert.Contains(t, logs.String(), "stack VaultClusterAsgStack is valid")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantField string
	}{
		{
			name:      "bad cidr",
			mutate:    func(c *config.Config) { c.Network.CIDR = "13.0.0.0/33" },
			wantField: "network.cidr",
		},
		{
			name: "capacity out of order",
			mutate: func(c *config.Config) {
				*c.Compute.MinCapacity = 5
			},
			wantField: "compute.min_capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saveAndRestoreFactories(t)
			loadConfigFile = func(string) (*config.Config, error) {
				cfg := config.Default()
				tt.mutate(cfg)
				return cfg, nil
			}

			err := Validate(context.Background(), "vaultasg.yaml", EnvironmentOverrides{})
			require.Error(t, err)

			var verr *stack.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Field, tt.wantField)
		})
	}
}
