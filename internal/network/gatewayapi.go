package network

import (
	"context"
	"fmt"
	"maps"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	gatewayv1 "sigs.k8s.io/gateway-api/apis/v1"
	gatewayv1alpha2 "sigs.k8s.io/gateway-api/apis/v1alpha2"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

const (
	kindHTTPRoute = "httproute"
	kindTCPRoute  = "tcproute"
)

// GatewayAPIStrategy renders an HTTPRoute and one TCPRoute per SSH member,
// attached to the Gateway named in the operator configuration. TLS is
// terminated by that Gateway.
type GatewayAPIStrategy struct {
	cfg *config.OperatorConfig
}

// Type implements Strategy.
func (s *GatewayAPIStrategy) Type() config.IngressType {
	return config.IngressTypeGatewayAPI
}

// Kinds implements Strategy.
func (s *GatewayAPIStrategy) Kinds() []Kind {
	return []Kind{
		{Name: kindHTTPRoute, Type: &gatewayv1.HTTPRoute{}},
		{Name: kindTCPRoute, Type: &gatewayv1alpha2.TCPRoute{}},
	}
}

// Produce implements Strategy.
func (s *GatewayAPIStrategy) Produce(_ context.Context, spec *Spec) (map[string][]client.Object, error) {
	routes, err := Routes(spec)
	if err != nil {
		return nil, err
	}

	sshRoutes, err := SSHRoutes(spec)
	if err != nil {
		return nil, err
	}

	rules := make([]gatewayv1.HTTPRouteRule, 0, len(routes))
	for i := range routes {
		rules = append(rules, httpRouteRule(&routes[i]))
	}

	httpRoute := &gatewayv1.HTTPRoute{
		ObjectMeta: s.objectMeta(spec, names.Entrypoint(spec.Name, "http-route")),
		Spec: gatewayv1.HTTPRouteSpec{
			CommonRouteSpec: gatewayv1.CommonRouteSpec{
				ParentRefs: []gatewayv1.ParentReference{s.parentRef(nil)},
			},
			Hostnames: []gatewayv1.Hostname{gatewayv1.Hostname(spec.Host)},
			Rules:     rules,
		},
	}

	objects := map[string][]client.Object{kindHTTPRoute: {httpRoute}}

	for _, route := range sshRoutes {
		port := gatewayv1.PortNumber(route.Port)

		objects[kindTCPRoute] = append(objects[kindTCPRoute], &gatewayv1alpha2.TCPRoute{
			ObjectMeta: s.objectMeta(spec, names.Entrypoint(spec.Name, fmt.Sprintf("ssh-%s", route.Backend.Name))),
			Spec: gatewayv1alpha2.TCPRouteSpec{
				CommonRouteSpec: gatewayv1.CommonRouteSpec{
					ParentRefs: []gatewayv1.ParentReference{s.parentRef(&port)},
				},
				Rules: []gatewayv1alpha2.TCPRouteRule{{
					BackendRefs: []gatewayv1.BackendRef{backendRef(&route.Backend, route.Port)},
				}},
			},
		})
	}

	return objects, nil
}

func (s *GatewayAPIStrategy) objectMeta(spec *Spec, name string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:        name,
		Namespace:   spec.Namespace,
		Labels:      names.ComponentLabels(names.ComponentNetwork, spec.Name, spec.Name),
		Annotations: maps.Clone(spec.Annotations),
	}
}

func (s *GatewayAPIStrategy) parentRef(port *gatewayv1.PortNumber) gatewayv1.ParentReference {
	ref := gatewayv1.ParentReference{
		Name: gatewayv1.ObjectName(s.cfg.GatewayParentName),
		Port: port,
	}

	if s.cfg.GatewayParentNamespace != "" {
		ref.Namespace = ptr.To(gatewayv1.Namespace(s.cfg.GatewayParentNamespace))
	}

	return ref
}

func httpRouteRule(route *Route) gatewayv1.HTTPRouteRule {
	match := gatewayv1.HTTPRouteMatch{
		Path: &gatewayv1.HTTPPathMatch{
			Type:  ptr.To(gatewayv1.PathMatchPathPrefix),
			Value: ptr.To("/"),
		},
	}

	if route.PathRegex != "" {
		match.Path = &gatewayv1.HTTPPathMatch{
			Type:  ptr.To(gatewayv1.PathMatchRegularExpression),
			Value: ptr.To(route.PathRegex),
		}
	}

	for _, key := range sortedKeys(route.Query) {
		match.QueryParams = append(match.QueryParams, gatewayv1.HTTPQueryParamMatch{
			Type:  ptr.To(gatewayv1.QueryParamMatchExact),
			Name:  gatewayv1.HTTPHeaderName(key),
			Value: route.Query[key],
		})
	}

	if route.Method != "" {
		match.Method = ptr.To(gatewayv1.HTTPMethod(route.Method))
	}

	return gatewayv1.HTTPRouteRule{
		Matches: []gatewayv1.HTTPRouteMatch{match},
		BackendRefs: []gatewayv1.HTTPBackendRef{{
			BackendRef: backendRef(&route.Backend, route.Backend.HTTPPort),
		}},
	}
}

func backendRef(member *Member, port int32) gatewayv1.BackendRef {
	return gatewayv1.BackendRef{
		BackendObjectReference: gatewayv1.BackendObjectReference{
			Name: gatewayv1.ObjectName(member.ServiceName),
			Port: ptr.To(gatewayv1.PortNumber(port)),
		},
	}
}
