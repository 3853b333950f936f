// Package config holds the operator-wide configuration and resolves
// references from primary resources to other cluster objects.
package config

import (
	"slices"
	"time"

	"github.com/cockroachdb/errors"
)

// ClusterMode selects how Gerrit instances of one cluster share state.
type ClusterMode string

const (
	// ClusterModeHighAvailability runs primaries on shared storage with a
	// global ref-database.
	ClusterModeHighAvailability ClusterMode = "HIGH_AVAILABILITY"

	// ClusterModeMultisite replicates between sites with the multi-site plugin.
	ClusterModeMultisite ClusterMode = "MULTISITE"
)

// IngressType selects the network topology strategy.
type IngressType string

const (
	IngressTypeNone       IngressType = "none"
	IngressTypeIngress    IngressType = "ingress"
	IngressTypeIstio      IngressType = "istio"
	IngressTypeAmbassador IngressType = "ambassador"
	IngressTypeGatewayAPI IngressType = "gatewayapi"
)

// Defaults applied by cmd/controller.
const (
	DefaultClusterDomain           = "cluster.local"
	DefaultFieldOwner              = "gerrit-operator"
	DefaultMaxConcurrentReconciles = 4
	DefaultReloadTimeout           = 10 * time.Second
	DefaultIstioGatewaySelector    = "ingressgateway"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid operator configuration")

// OperatorConfig is built once at startup and never modified afterwards.
// It is passed by pointer to every controller, producer and resolver.
type OperatorConfig struct {
	ClusterMode ClusterMode
	IngressType IngressType

	// ClusterDomain is used to build in-cluster service URLs.
	ClusterDomain string

	// IngressClassName is set on Ingress objects when not empty.
	IngressClassName string

	// IstioGatewaySelector is the value of the "istio" label selecting the
	// Istio ingress gateway pods.
	IstioGatewaySelector string

	// GatewayParentName and GatewayParentNamespace reference the Gateway
	// that HTTPRoutes and TCPRoutes attach to.
	GatewayParentName      string
	GatewayParentNamespace string

	// FieldOwner is the field manager name used for writes.
	FieldOwner string

	MaxConcurrentReconciles int

	// ReloadTimeout bounds each plugin reload call.
	ReloadTimeout time.Duration

	MetricsAddr     string
	HealthAddr      string
	LeaderElect     bool
	LeaderElectNS   string
	LeaderElectName string
}

// Validate rejects unknown modes and missing required settings.
func (c *OperatorConfig) Validate() error {
	modes := []ClusterMode{ClusterModeHighAvailability, ClusterModeMultisite}
	if !slices.Contains(modes, c.ClusterMode) {
		return errors.Wrapf(ErrInvalidConfig, "unknown cluster mode %q", c.ClusterMode)
	}

	types := []IngressType{
		IngressTypeNone,
		IngressTypeIngress,
		IngressTypeIstio,
		IngressTypeAmbassador,
		IngressTypeGatewayAPI,
	}
	if !slices.Contains(types, c.IngressType) {
		return errors.Wrapf(ErrInvalidConfig, "unknown ingress type %q", c.IngressType)
	}

	if c.IngressType == IngressTypeGatewayAPI && c.GatewayParentName == "" {
		return errors.Wrap(ErrInvalidConfig, "gateway parent name is required for ingress type gatewayapi")
	}

	if c.ClusterDomain == "" {
		return errors.Wrap(ErrInvalidConfig, "cluster domain is required")
	}

	if c.MaxConcurrentReconciles < 1 {
		return errors.Wrapf(ErrInvalidConfig, "max concurrent reconciles must be positive, got %d", c.MaxConcurrentReconciles)
	}

	return nil
}

// IsMultisite reports whether the operator manages multi-site clusters.
func (c *OperatorConfig) IsMultisite() bool {
	return c.ClusterMode == ClusterModeMultisite
}

// GetFieldOwner returns the field owner, falling back to the default.
func (c *OperatorConfig) GetFieldOwner() string {
	if c.FieldOwner == "" {
		return DefaultFieldOwner
	}

	return c.FieldOwner
}

// GetReloadTimeout returns the reload timeout, falling back to the default.
func (c *OperatorConfig) GetReloadTimeout() time.Duration {
	if c.ReloadTimeout <= 0 {
		return DefaultReloadTimeout
	}

	return c.ReloadTimeout
}
