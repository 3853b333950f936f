package network_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	networkingv1 "k8s.io/api/networking/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/controller-runtime/pkg/client"
	gatewayv1 "sigs.k8s.io/gateway-api/apis/v1"
	gatewayv1alpha2 "sigs.k8s.io/gateway-api/apis/v1alpha2"

	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/network"
)

func newStrategy(t *testing.T, ingressType config.IngressType) network.Strategy {
	t.Helper()

	strategy, err := network.New(&config.OperatorConfig{
		IngressType:            ingressType,
		ClusterDomain:          "cluster.local",
		IngressClassName:       "nginx",
		GatewayParentName:      "public",
		GatewayParentNamespace: "gateways",
	})
	require.NoError(t, err)
	require.Equal(t, ingressType, strategy.Type())

	return strategy
}

func produce(t *testing.T, strategy network.Strategy, spec *network.Spec) map[string][]client.Object {
	t.Helper()

	objects, err := strategy.Produce(context.Background(), spec)
	require.NoError(t, err)

	kinds := map[string]bool{}
	for _, kind := range strategy.Kinds() {
		kinds[kind.Name] = true
	}

	for name := range objects {
		assert.True(t, kinds[name], "produced undeclared kind %s", name)
	}

	return objects
}

func TestNewUnknownType(t *testing.T) {
	t.Parallel()

	_, err := network.New(&config.OperatorConfig{IngressType: "traefik"})
	require.Error(t, err)
}

func TestNoneStrategy(t *testing.T) {
	t.Parallel()

	strategy := newStrategy(t, config.IngressTypeNone)

	assert.Empty(t, strategy.Kinds())
	assert.Empty(t, produce(t, strategy, fullSpec()))
}

func TestIngressStrategy(t *testing.T) {
	t.Parallel()

	objects := produce(t, newStrategy(t, config.IngressTypeIngress), fullSpec())
	require.Len(t, objects["ingress"], 1)

	ingress, ok := objects["ingress"][0].(*networkingv1.Ingress)
	require.True(t, ok)

	assert.Equal(t, "main-ingress", ingress.Name)
	assert.Equal(t, "gerrit", ingress.Namespace)
	assert.Equal(t, "nginx", *ingress.Spec.IngressClassName)
	assert.Equal(t, "true", ingress.Annotations["nginx.ingress.kubernetes.io/use-regex"])

	snippet := ingress.Annotations["nginx.ingress.kubernetes.io/configuration-snippet"]
	assert.Contains(t, snippet, "if ($args ~ service=git-upload-pack)")
	assert.Contains(t, snippet, `set $proxy_upstream_name "gerrit-gerrit-replica-service-8080"`)
	assert.Contains(t, snippet, `set $service_name "gerrit-replica-service"`)

	require.Len(t, ingress.Spec.TLS, 1)
	assert.Equal(t, "gerrit-tls", ingress.Spec.TLS[0].SecretName)
	assert.Equal(t, []string{"gerrit.example.com"}, ingress.Spec.TLS[0].Hosts)

	require.Len(t, ingress.Spec.Rules, 1)
	assert.Equal(t, "gerrit.example.com", ingress.Spec.Rules[0].Host)

	paths := map[string]string{}
	for _, path := range ingress.Spec.Rules[0].HTTP.Paths {
		paths[path.Path] = path.Backend.Service.Name
	}

	assert.Equal(t, map[string]string{
		"/a/projects/.*":            "receiver-service",
		"/new/.*":                   "receiver-service",
		"/git/.*":                   "receiver-service",
		"/(a/)?.*/git-upload-pack$": "gerrit-replica-service",
		"/":                         "gerrit-primary-service",
	}, paths)
}

func TestIngressStrategyPlaintext(t *testing.T) {
	t.Parallel()

	spec := &network.Spec{
		Namespace: "gerrit",
		Name:      "main",
		Host:      "gerrit.example.com",
		Members:   []network.Member{member("gerrit-primary", network.RolePrimary, 29418)},
	}

	objects := produce(t, newStrategy(t, config.IngressTypeIngress), spec)
	ingress := objects["ingress"][0].(*networkingv1.Ingress)

	assert.Empty(t, ingress.Spec.TLS)
	assert.NotContains(t, ingress.Annotations, "nginx.ingress.kubernetes.io/configuration-snippet")
	require.Len(t, ingress.Spec.Rules[0].HTTP.Paths, 1)
}

func TestIstioStrategy(t *testing.T) {
	t.Parallel()

	objects := produce(t, newStrategy(t, config.IngressTypeIstio), fullSpec())

	require.Len(t, objects["gateway"], 1)
	gateway := objects["gateway"][0].(*unstructured.Unstructured)
	assert.Equal(t, "main-istio-gateway", gateway.GetName())
	assert.Equal(t, "Gateway", gateway.GetKind())

	selector, _, _ := unstructured.NestedStringMap(gateway.Object, "spec", "selector")
	assert.Equal(t, map[string]string{"istio": "ingressgateway"}, selector)

	servers, _, _ := unstructured.NestedSlice(gateway.Object, "spec", "servers")
	require.Len(t, servers, 4)

	credential, _, _ := unstructured.NestedString(servers[1].(map[string]any), "tls", "credentialName")
	assert.Equal(t, "gerrit-tls", credential)

	sshProtocol, _, _ := unstructured.NestedString(servers[2].(map[string]any), "port", "protocol")
	assert.Equal(t, "TCP", sshProtocol)

	require.Len(t, objects["virtualservice"], 1)
	virtualService := objects["virtualservice"][0].(*unstructured.Unstructured)

	gateways, _, _ := unstructured.NestedStringSlice(virtualService.Object, "spec", "gateways")
	assert.Equal(t, []string{"main-istio-gateway"}, gateways)

	httpRoutes, _, _ := unstructured.NestedSlice(virtualService.Object, "spec", "http")
	require.Len(t, httpRoutes, 6)

	refs := findIstioRoute(t, httpRoutes, "git-upload-pack-refs")
	matches, _, _ := unstructured.NestedSlice(refs, "match")
	require.Len(t, matches, 1)

	exact, _, _ := unstructured.NestedString(matches[0].(map[string]any), "queryParams", "service", "exact")
	assert.Equal(t, "git-upload-pack", exact)

	destinations, _, _ := unstructured.NestedSlice(refs, "route")
	host, _, _ := unstructured.NestedString(destinations[0].(map[string]any), "destination", "host")
	assert.Equal(t, "gerrit-replica-service.gerrit.svc.cluster.local", host)

	def := findIstioRoute(t, httpRoutes, "default")
	assert.NotContains(t, def, "match")

	tcpRoutes, _, _ := unstructured.NestedSlice(virtualService.Object, "spec", "tcp")
	assert.Len(t, tcpRoutes, 2)

	require.Len(t, objects["destinationrule"], 2)

	rule := objects["destinationrule"][0].(*unstructured.Unstructured)
	cookie, _, _ := unstructured.NestedString(rule.Object,
		"spec", "trafficPolicy", "loadBalancer", "consistentHash", "httpCookie", "name")
	assert.Equal(t, "Gerrit_Session", cookie)
}

func TestIstioStrategyObjectsDeepCopy(t *testing.T) {
	t.Parallel()

	objects := produce(t, newStrategy(t, config.IngressTypeIstio), fullSpec())

	for _, list := range objects {
		for _, obj := range list {
			assert.NotPanics(t, func() {
				obj.(*unstructured.Unstructured).DeepCopy()
			})
		}
	}
}

func TestIstioStrategyWithoutSSH(t *testing.T) {
	t.Parallel()

	spec := fullSpec()
	spec.SSH = false
	spec.TLS = false

	objects := produce(t, newStrategy(t, config.IngressTypeIstio), spec)

	gateway := objects["gateway"][0].(*unstructured.Unstructured)
	servers, _, _ := unstructured.NestedSlice(gateway.Object, "spec", "servers")
	assert.Len(t, servers, 1)

	virtualService := objects["virtualservice"][0].(*unstructured.Unstructured)
	_, found, _ := unstructured.NestedSlice(virtualService.Object, "spec", "tcp")
	assert.False(t, found)
}

func findIstioRoute(t *testing.T, routes []any, name string) map[string]any {
	t.Helper()

	for _, route := range routes {
		entry := route.(map[string]any)
		if entry["name"] == name {
			return entry
		}
	}

	t.Fatalf("route %s not found", name)

	return nil
}

func TestAmbassadorStrategy(t *testing.T) {
	t.Parallel()

	objects := produce(t, newStrategy(t, config.IngressTypeAmbassador), fullSpec())

	require.Len(t, objects["mapping"], 6)
	require.Len(t, objects["tcpmapping"], 2)
	require.Len(t, objects["tlscontext"], 1)

	mappings := map[string]*unstructured.Unstructured{}
	for _, obj := range objects["mapping"] {
		mappings[obj.GetName()] = obj.(*unstructured.Unstructured)
	}

	refs := mappings["main-mapping-git-upload-pack-refs"]
	require.NotNil(t, refs)

	service, _, _ := unstructured.NestedString(refs.Object, "spec", "service")
	assert.Equal(t, "gerrit-replica-service.gerrit:8080", service)

	regex, _, _ := unstructured.NestedBool(refs.Object, "spec", "prefix_regex")
	assert.True(t, regex)

	params, _, _ := unstructured.NestedStringMap(refs.Object, "spec", "query_parameters")
	assert.Equal(t, map[string]string{"service": "git-upload-pack"}, params)

	post := mappings["main-mapping-git-upload-pack"]
	method, _, _ := unstructured.NestedString(post.Object, "spec", "method")
	assert.Equal(t, "POST", method)

	def := mappings["main-mapping-default"]
	prefix, _, _ := unstructured.NestedString(def.Object, "spec", "prefix")
	assert.Equal(t, "/", prefix)

	defService, _, _ := unstructured.NestedString(def.Object, "spec", "service")
	assert.Equal(t, "gerrit-primary-service.gerrit:8080", defService)

	tls := objects["tlscontext"][0].(*unstructured.Unstructured)
	secret, _, _ := unstructured.NestedString(tls.Object, "spec", "secret")
	assert.Equal(t, "gerrit-tls", secret)
}

func TestGatewayAPIStrategy(t *testing.T) {
	t.Parallel()

	objects := produce(t, newStrategy(t, config.IngressTypeGatewayAPI), fullSpec())

	require.Len(t, objects["httproute"], 1)
	route := objects["httproute"][0].(*gatewayv1.HTTPRoute)

	assert.Equal(t, "main-http-route", route.Name)
	require.Len(t, route.Spec.ParentRefs, 1)
	assert.Equal(t, gatewayv1.ObjectName("public"), route.Spec.ParentRefs[0].Name)
	assert.Equal(t, gatewayv1.Namespace("gateways"), *route.Spec.ParentRefs[0].Namespace)
	assert.Equal(t, []gatewayv1.Hostname{"gerrit.example.com"}, route.Spec.Hostnames)
	require.Len(t, route.Spec.Rules, 6)

	var refsRule *gatewayv1.HTTPRouteRule

	for i := range route.Spec.Rules {
		if len(route.Spec.Rules[i].Matches[0].QueryParams) > 0 {
			refsRule = &route.Spec.Rules[i]
		}
	}

	require.NotNil(t, refsRule)
	assert.Equal(t, gatewayv1.PathMatchRegularExpression, *refsRule.Matches[0].Path.Type)
	assert.Equal(t, gatewayv1.HTTPHeaderName("service"), refsRule.Matches[0].QueryParams[0].Name)
	assert.Equal(t, gatewayv1.ObjectName("gerrit-replica-service"), refsRule.BackendRefs[0].Name)

	last := route.Spec.Rules[len(route.Spec.Rules)-1]
	assert.Equal(t, gatewayv1.PathMatchPathPrefix, *last.Matches[0].Path.Type)
	assert.Equal(t, gatewayv1.ObjectName("gerrit-primary-service"), last.BackendRefs[0].Name)

	require.Len(t, objects["tcproute"], 2)

	tcp := objects["tcproute"][0].(*gatewayv1alpha2.TCPRoute)
	assert.Equal(t, "main-ssh-gerrit-primary", tcp.Name)
	assert.Equal(t, gatewayv1.PortNumber(29418), *tcp.Spec.ParentRefs[0].Port)
	assert.Equal(t, gatewayv1.PortNumber(29418), *tcp.Spec.Rules[0].BackendRefs[0].Port)
}

func TestStrategiesRejectInvalidTopology(t *testing.T) {
	t.Parallel()

	spec := fullSpec()
	spec.Members = append(spec.Members, member("second", network.RolePrimary, 0))

	for _, ingressType := range []config.IngressType{
		config.IngressTypeIngress,
		config.IngressTypeIstio,
		config.IngressTypeAmbassador,
		config.IngressTypeGatewayAPI,
	} {
		_, err := newStrategy(t, ingressType).Produce(context.Background(), spec)
		assert.Error(t, err, string(ingressType))
	}
}
