package network

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

// Ambassador kinds.
//
//nolint:gochecknoglobals // constant GVKs
var (
	ambassadorMappingGVK    = schema.GroupVersionKind{Group: "getambassador.io", Version: "v2", Kind: "Mapping"}
	ambassadorTCPMappingGVK = schema.GroupVersionKind{Group: "getambassador.io", Version: "v2", Kind: "TCPMapping"}
	ambassadorTLSContextGVK = schema.GroupVersionKind{Group: "getambassador.io", Version: "v2", Kind: "TLSContext"}
)

const (
	kindAmbassadorMapping    = "mapping"
	kindAmbassadorTCPMapping = "tcpmapping"
	kindAmbassadorTLSContext = "tlscontext"
)

// AmbassadorStrategy renders one Mapping per route, one TCPMapping per SSH
// member and a TLSContext when TLS is enabled.
type AmbassadorStrategy struct {
	cfg *config.OperatorConfig
}

// Type implements Strategy.
func (s *AmbassadorStrategy) Type() config.IngressType {
	return config.IngressTypeAmbassador
}

// Kinds implements Strategy.
func (s *AmbassadorStrategy) Kinds() []Kind {
	return []Kind{
		{Name: kindAmbassadorMapping, Type: newUnstructured(ambassadorMappingGVK)},
		{Name: kindAmbassadorTCPMapping, Type: newUnstructured(ambassadorTCPMappingGVK)},
		{Name: kindAmbassadorTLSContext, Type: newUnstructured(ambassadorTLSContextGVK)},
	}
}

// Produce implements Strategy.
func (s *AmbassadorStrategy) Produce(_ context.Context, spec *Spec) (map[string][]client.Object, error) {
	routes, err := Routes(spec)
	if err != nil {
		return nil, err
	}

	sshRoutes, err := SSHRoutes(spec)
	if err != nil {
		return nil, err
	}

	objects := map[string][]client.Object{}

	for i := range routes {
		route := &routes[i]

		mapping := map[string]any{
			"host":        spec.Host,
			"prefix":      "/",
			"rewrite":     "",
			"service":     ambassadorService(spec, &route.Backend, route.Backend.HTTPPort),
			"precedence":  int64(route.Priority),
			"bypass_auth": true,
		}

		if route.PathRegex != "" {
			mapping["prefix"] = route.PathRegex
			mapping["prefix_regex"] = true
		}

		if len(route.Query) > 0 {
			params := map[string]any{}
			for key, value := range route.Query {
				params[key] = value
			}

			mapping["query_parameters"] = params
		}

		if route.Method != "" {
			mapping["method"] = route.Method
		}

		objects[kindAmbassadorMapping] = append(objects[kindAmbassadorMapping],
			newEntrypointObject(ambassadorMappingGVK, spec, names.Entrypoint(spec.Name, "mapping-"+route.Name), mapping))
	}

	for _, route := range sshRoutes {
		objects[kindAmbassadorTCPMapping] = append(objects[kindAmbassadorTCPMapping],
			newEntrypointObject(ambassadorTCPMappingGVK, spec,
				names.Entrypoint(spec.Name, fmt.Sprintf("tcp-mapping-%s", route.Backend.Name)),
				map[string]any{
					"port":    int64(route.Port),
					"service": ambassadorService(spec, &route.Backend, route.Port),
				}))
	}

	if spec.TLS {
		objects[kindAmbassadorTLSContext] = []client.Object{
			newEntrypointObject(ambassadorTLSContextGVK, spec, names.Entrypoint(spec.Name, "tls-context"),
				map[string]any{
					"hosts":  []any{spec.Host},
					"secret": spec.TLSSecret,
				}),
		}
	}

	return objects, nil
}

func ambassadorService(spec *Spec, member *Member, port int32) string {
	return fmt.Sprintf("%s.%s:%d", member.ServiceName, spec.Namespace, port)
}
