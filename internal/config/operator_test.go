package config_test

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexfrei/gerrit-operator/internal/config"
)

func validConfig() config.OperatorConfig {
	return config.OperatorConfig{
		ClusterMode:             config.ClusterModeHighAvailability,
		IngressType:             config.IngressTypeIngress,
		ClusterDomain:           config.DefaultClusterDomain,
		MaxConcurrentReconciles: 1,
	}
}

func TestOperatorConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.OperatorConfig)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(*config.OperatorConfig) {},
		},
		{
			name: "multisite with istio",
			mutate: func(c *config.OperatorConfig) {
				c.ClusterMode = config.ClusterModeMultisite
				c.IngressType = config.IngressTypeIstio
			},
		},
		{
			name:    "unknown cluster mode",
			mutate:  func(c *config.OperatorConfig) { c.ClusterMode = "SINGLE" },
			wantErr: true,
		},
		{
			name:    "unknown ingress type",
			mutate:  func(c *config.OperatorConfig) { c.IngressType = "traefik" },
			wantErr: true,
		},
		{
			name:    "gateway api without parent",
			mutate:  func(c *config.OperatorConfig) { c.IngressType = config.IngressTypeGatewayAPI },
			wantErr: true,
		},
		{
			name: "gateway api with parent",
			mutate: func(c *config.OperatorConfig) {
				c.IngressType = config.IngressTypeGatewayAPI
				c.GatewayParentName = "public"
			},
		},
		{
			name:    "empty cluster domain",
			mutate:  func(c *config.OperatorConfig) { c.ClusterDomain = "" },
			wantErr: true,
		},
		{
			name:    "no workers",
			mutate:  func(c *config.OperatorConfig) { c.MaxConcurrentReconciles = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, config.ErrInvalidConfig))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestOperatorConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.OperatorConfig{}

	assert.Equal(t, config.DefaultFieldOwner, cfg.GetFieldOwner())
	assert.Equal(t, config.DefaultReloadTimeout, cfg.GetReloadTimeout())
	assert.False(t, cfg.IsMultisite())

	cfg = config.OperatorConfig{
		ClusterMode:   config.ClusterModeMultisite,
		FieldOwner:    "custom",
		ReloadTimeout: time.Second,
	}

	assert.Equal(t, "custom", cfg.GetFieldOwner())
	assert.Equal(t, time.Second, cfg.GetReloadTimeout())
	assert.True(t, cfg.IsMultisite())
}
