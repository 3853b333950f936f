package network

import (
	"context"
	"maps"

	"github.com/cockroachdb/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

// Kind is one object kind a strategy emits.
type Kind struct {
	// Name is a short lower-case identifier, unique per strategy.
	Name string

	// Type is an empty object of the kind.
	Type client.Object
}

// Strategy renders the routing table of a cluster with one ingress technology.
type Strategy interface {
	// Type returns the ingress type the strategy implements.
	Type() config.IngressType

	// Kinds lists every kind Produce can emit.
	Kinds() []Kind

	// Produce renders the entrypoint objects of spec keyed by Kind.Name.
	// Objects are named after the cluster and are deterministic for a
	// given spec.
	Produce(ctx context.Context, spec *Spec) (map[string][]client.Object, error)
}

// New returns the strategy selected by cfg.
func New(cfg *config.OperatorConfig) (Strategy, error) {
	switch cfg.IngressType {
	case config.IngressTypeNone:
		return NoneStrategy{}, nil
	case config.IngressTypeIngress:
		return &IngressStrategy{cfg: cfg}, nil
	case config.IngressTypeIstio:
		return &IstioStrategy{cfg: cfg}, nil
	case config.IngressTypeAmbassador:
		return &AmbassadorStrategy{cfg: cfg}, nil
	case config.IngressTypeGatewayAPI:
		return &GatewayAPIStrategy{cfg: cfg}, nil
	default:
		return nil, errors.Wrapf(config.ErrInvalidConfig, "unknown ingress type %q", cfg.IngressType)
	}
}

// NoneStrategy exposes nothing. Members stay reachable through their
// cluster-internal Services only.
type NoneStrategy struct{}

// Type implements Strategy.
func (NoneStrategy) Type() config.IngressType {
	return config.IngressTypeNone
}

// Kinds implements Strategy.
func (NoneStrategy) Kinds() []Kind {
	return nil
}

// Produce implements Strategy.
func (NoneStrategy) Produce(context.Context, *Spec) (map[string][]client.Object, error) {
	return map[string][]client.Object{}, nil
}

// newUnstructured returns an empty object of gvk.
func newUnstructured(gvk schema.GroupVersionKind) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{}
	obj.SetGroupVersionKind(gvk)

	return obj
}

// newEntrypointObject returns an unstructured object of gvk named after the
// cluster, carrying the network labels and the user annotations.
func newEntrypointObject(gvk schema.GroupVersionKind, spec *Spec, name string, content map[string]any) *unstructured.Unstructured {
	obj := newUnstructured(gvk)
	obj.Object["spec"] = content
	obj.SetName(name)
	obj.SetNamespace(spec.Namespace)
	obj.SetLabels(names.ComponentLabels(names.ComponentNetwork, spec.Name, spec.Name))

	if len(spec.Annotations) > 0 {
		obj.SetAnnotations(maps.Clone(spec.Annotations))
	}

	return obj
}
