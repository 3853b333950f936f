package network

import (
	"context"
	"fmt"
	"maps"
	"strings"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

// ingress-nginx annotations.
const (
	annotationUseRegex             = "nginx.ingress.kubernetes.io/use-regex"
	annotationConfigurationSnippet = "nginx.ingress.kubernetes.io/configuration-snippet"
)

const kindIngress = "ingress"

// IngressStrategy renders one networking/v1 Ingress for ingress-nginx.
//
// Ingress paths cannot match on query parameters or methods. Git fetches
// are routed with a configuration snippet that switches the upstream of
// info/refs requests asking for git-upload-pack, and git-upload-pack
// requests are routed by path alone. SSH is not expressible and skipped.
type IngressStrategy struct {
	cfg *config.OperatorConfig
}

// Type implements Strategy.
func (s *IngressStrategy) Type() config.IngressType {
	return config.IngressTypeIngress
}

// Kinds implements Strategy.
func (s *IngressStrategy) Kinds() []Kind {
	return []Kind{{Name: kindIngress, Type: &networkingv1.Ingress{}}}
}

// Produce implements Strategy.
func (s *IngressStrategy) Produce(ctx context.Context, spec *Spec) (map[string][]client.Object, error) {
	routes, err := Routes(spec)
	if err != nil {
		return nil, err
	}

	if spec.SSH {
		log.FromContext(ctx).Info("SSH routing is not supported by Ingress, skipping", "cluster", spec.Name)
	}

	annotations := maps.Clone(spec.Annotations)
	if annotations == nil {
		annotations = map[string]string{}
	}

	annotations[annotationUseRegex] = "true"

	var paths []networkingv1.HTTPIngressPath

	for i := range routes {
		route := &routes[i]

		switch {
		case route.IsDefault():
			paths = append(paths, ingressPath("/", networkingv1.PathTypePrefix, &route.Backend))
		case len(route.Query) > 0:
			annotations[annotationConfigurationSnippet] = upstreamSnippet(spec, route)
		default:
			paths = append(paths, ingressPath(
				strings.TrimPrefix(route.PathRegex, "^"),
				networkingv1.PathTypeImplementationSpecific,
				&route.Backend,
			))
		}
	}

	ingress := &networkingv1.Ingress{
		ObjectMeta: metav1.ObjectMeta{
			Name:        names.Entrypoint(spec.Name, kindIngress),
			Namespace:   spec.Namespace,
			Labels:      names.ComponentLabels(names.ComponentNetwork, spec.Name, spec.Name),
			Annotations: annotations,
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{{
				Host: spec.Host,
				IngressRuleValue: networkingv1.IngressRuleValue{
					HTTP: &networkingv1.HTTPIngressRuleValue{Paths: paths},
				},
			}},
		},
	}

	if s.cfg.IngressClassName != "" {
		ingress.Spec.IngressClassName = ptr.To(s.cfg.IngressClassName)
	}

	if spec.TLS {
		ingress.Spec.TLS = []networkingv1.IngressTLS{{
			Hosts:      []string{spec.Host},
			SecretName: spec.TLSSecret,
		}}
	}

	return map[string][]client.Object{kindIngress: {ingress}}, nil
}

func ingressPath(path string, pathType networkingv1.PathType, backend *Member) networkingv1.HTTPIngressPath {
	return networkingv1.HTTPIngressPath{
		Path:     path,
		PathType: ptr.To(pathType),
		Backend: networkingv1.IngressBackend{
			Service: &networkingv1.IngressServiceBackend{
				Name: backend.ServiceName,
				Port: networkingv1.ServiceBackendPort{Number: backend.HTTPPort},
			},
		},
	}
}

// upstreamSnippet switches the ingress-nginx upstream to the route backend
// for requests carrying the route's query parameter.
func upstreamSnippet(spec *Spec, route *Route) string {
	upstream := fmt.Sprintf("%s-%s-%d", spec.Namespace, route.Backend.ServiceName, route.Backend.HTTPPort)

	var conditions []string
	for _, key := range sortedKeys(route.Query) {
		conditions = append(conditions, fmt.Sprintf("$args ~ %s=%s", key, route.Query[key]))
	}

	var snippet strings.Builder

	for _, condition := range conditions {
		fmt.Fprintf(&snippet, "if (%s){\n", condition)
		fmt.Fprintf(&snippet, "  set $proxy_upstream_name \"%s\";\n", upstream)
		snippet.WriteString("  set $proxy_host $proxy_upstream_name;\n")
		fmt.Fprintf(&snippet, "  set $service_name \"%s\";\n", route.Backend.ServiceName)
		snippet.WriteString("}\n")
	}

	return snippet.String()
}
