package network

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

// Istio networking kinds.
//
//nolint:gochecknoglobals // constant GVKs
var (
	istioGatewayGVK         = schema.GroupVersionKind{Group: "networking.istio.io", Version: "v1beta1", Kind: "Gateway"}
	istioVirtualServiceGVK  = schema.GroupVersionKind{Group: "networking.istio.io", Version: "v1beta1", Kind: "VirtualService"}
	istioDestinationRuleGVK = schema.GroupVersionKind{Group: "networking.istio.io", Version: "v1beta1", Kind: "DestinationRule"}
)

const (
	kindIstioGateway         = "gateway"
	kindIstioVirtualService  = "virtualservice"
	kindIstioDestinationRule = "destinationrule"

	// sessionCookie pins a browser session to one Gerrit pod.
	sessionCookie = "Gerrit_Session"

	portHTTP  = 80
	portHTTPS = 443
)

// IstioStrategy renders an Istio Gateway, a VirtualService and one
// DestinationRule per Gerrit member.
type IstioStrategy struct {
	cfg *config.OperatorConfig
}

// Type implements Strategy.
func (s *IstioStrategy) Type() config.IngressType {
	return config.IngressTypeIstio
}

// Kinds implements Strategy.
func (s *IstioStrategy) Kinds() []Kind {
	return []Kind{
		{Name: kindIstioGateway, Type: newUnstructured(istioGatewayGVK)},
		{Name: kindIstioVirtualService, Type: newUnstructured(istioVirtualServiceGVK)},
		{Name: kindIstioDestinationRule, Type: newUnstructured(istioDestinationRuleGVK)},
	}
}

// Produce implements Strategy.
func (s *IstioStrategy) Produce(_ context.Context, spec *Spec) (map[string][]client.Object, error) {
	routes, err := Routes(spec)
	if err != nil {
		return nil, err
	}

	sshRoutes, err := SSHRoutes(spec)
	if err != nil {
		return nil, err
	}

	gatewayName := names.Entrypoint(spec.Name, "istio-gateway")

	gateway := newEntrypointObject(istioGatewayGVK, spec, gatewayName, map[string]any{
		"selector": map[string]any{"istio": s.gatewaySelector()},
		"servers":  s.servers(spec, sshRoutes),
	})

	virtualServiceSpec := map[string]any{
		"hosts":    []any{spec.Host},
		"gateways": []any{gatewayName},
		"http":     s.httpRoutes(spec, routes),
	}

	if len(sshRoutes) > 0 {
		virtualServiceSpec["tcp"] = s.tcpRoutes(spec, sshRoutes)
	}

	virtualService := newEntrypointObject(istioVirtualServiceGVK, spec,
		names.Entrypoint(spec.Name, "gerrit-http-virtual-service"), virtualServiceSpec)

	var rules []client.Object

	for i := range spec.Members {
		member := &spec.Members[i]
		if member.Role == RoleReceiver {
			continue
		}

		rules = append(rules, newEntrypointObject(istioDestinationRuleGVK, spec, member.Name+"-destination-rule",
			map[string]any{
				"host": serviceHost(spec, member, s.cfg.ClusterDomain),
				"trafficPolicy": map[string]any{
					"loadBalancer": map[string]any{
						"consistentHash": map[string]any{
							"httpCookie": map[string]any{
								"name": sessionCookie,
								"ttl":  "0s",
							},
						},
					},
				},
			}))
	}

	return map[string][]client.Object{
		kindIstioGateway:         {gateway},
		kindIstioVirtualService:  {virtualService},
		kindIstioDestinationRule: rules,
	}, nil
}

func (s *IstioStrategy) gatewaySelector() string {
	if s.cfg.IstioGatewaySelector == "" {
		return config.DefaultIstioGatewaySelector
	}

	return s.cfg.IstioGatewaySelector
}

func (s *IstioStrategy) servers(spec *Spec, sshRoutes []SSHRoute) []any {
	hosts := []any{spec.Host}

	httpServer := map[string]any{
		"port":  map[string]any{"number": int64(portHTTP), "name": "http", "protocol": "HTTP"},
		"hosts": hosts,
	}

	servers := []any{httpServer}

	if spec.TLS {
		httpServer["tls"] = map[string]any{"httpsRedirect": true}

		servers = append(servers, map[string]any{
			"port":  map[string]any{"number": int64(portHTTPS), "name": "https", "protocol": "HTTPS"},
			"hosts": hosts,
			"tls":   map[string]any{"mode": "SIMPLE", "credentialName": spec.TLSSecret},
		})
	}

	for _, route := range sshRoutes {
		servers = append(servers, map[string]any{
			"port": map[string]any{
				"number":   int64(route.Port),
				"name":     fmt.Sprintf("ssh-%d", route.Port),
				"protocol": "TCP",
			},
			"hosts": hosts,
		})
	}

	return servers
}

func (s *IstioStrategy) httpRoutes(spec *Spec, routes []Route) []any {
	result := make([]any, 0, len(routes))

	for i := range routes {
		route := &routes[i]

		entry := map[string]any{
			"name": route.Name,
			"route": []any{map[string]any{
				"destination": map[string]any{
					"host": serviceHost(spec, &route.Backend, s.cfg.ClusterDomain),
					"port": map[string]any{"number": int64(route.Backend.HTTPPort)},
				},
			}},
		}

		if !route.IsDefault() {
			entry["match"] = []any{istioMatch(route)}
		}

		result = append(result, entry)
	}

	return result
}

func istioMatch(route *Route) map[string]any {
	match := map[string]any{}

	if route.PathRegex != "" {
		match["uri"] = map[string]any{"regex": route.PathRegex}
	}

	if len(route.Query) > 0 {
		params := map[string]any{}
		for key, value := range route.Query {
			params[key] = map[string]any{"exact": value}
		}

		match["queryParams"] = params
	}

	if route.Method != "" {
		match["method"] = map[string]any{"exact": route.Method}
	}

	return match
}

func (s *IstioStrategy) tcpRoutes(spec *Spec, sshRoutes []SSHRoute) []any {
	result := make([]any, 0, len(sshRoutes))

	for _, route := range sshRoutes {
		result = append(result, map[string]any{
			"match": []any{map[string]any{"port": int64(route.Port)}},
			"route": []any{map[string]any{
				"destination": map[string]any{
					"host": serviceHost(spec, &route.Backend, s.cfg.ClusterDomain),
					"port": map[string]any{"number": int64(route.Port)},
				},
			}},
		})
	}

	return result
}
