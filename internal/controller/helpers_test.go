package controller

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/metrics"
)

const testNamespace = "gerrit"

func testOperatorConfig() *config.OperatorConfig {
	return &config.OperatorConfig{
		ClusterMode:             config.ClusterModeHighAvailability,
		IngressType:             config.IngressTypeIngress,
		ClusterDomain:           config.DefaultClusterDomain,
		FieldOwner:              config.DefaultFieldOwner,
		MaxConcurrentReconciles: 1,
		ReloadTimeout:           config.DefaultReloadTimeout,
	}
}

func newTestDeps(t *testing.T, objs ...client.Object) (*Dependencies, *record.FakeRecorder) {
	t.Helper()

	return newInterceptedTestDeps(t, interceptor.Funcs{}, objs...)
}

func newInterceptedTestDeps(
	t *testing.T,
	funcs interceptor.Funcs,
	objs ...client.Object,
) (*Dependencies, *record.FakeRecorder) {
	t.Helper()

	scheme, err := NewScheme()
	require.NoError(t, err)

	c := fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(objs...).
		WithInterceptorFuncs(funcs).
		WithStatusSubresource(
			&v1alpha1.GerritCluster{},
			&v1alpha1.Gerrit{},
			&v1alpha1.Receiver{},
			&v1alpha1.GitGarbageCollection{},
		).
		Build()

	recorder := record.NewFakeRecorder(32)

	return &Dependencies{
		Client:   c,
		Scheme:   scheme,
		Config:   testOperatorConfig(),
		Metrics:  metrics.NewNoopCollector(),
		Recorder: recorder,
	}, recorder
}

// outcomeCollector keeps the outcomes recorded per node in order.
type outcomeCollector struct {
	*metrics.NoopCollector

	mu       sync.Mutex
	outcomes map[string][]string
}

func newOutcomeCollector() *outcomeCollector {
	return &outcomeCollector{NoopCollector: metrics.NewNoopCollector(), outcomes: map[string][]string{}}
}

func (c *outcomeCollector) RecordOutcome(_ context.Context, _, node, outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outcomes[node] = append(c.outcomes[node], outcome)
}

// take returns the recorded outcomes and forgets them.
func (c *outcomeCollector) take() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	outcomes := c.outcomes
	c.outcomes = map[string][]string{}

	return outcomes
}

// redirectTransport sends every request to target, keeping method and path.
type redirectTransport struct {
	target *url.URL
}

func (r *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	redirected := req.Clone(req.Context())
	redirected.URL.Scheme = r.target.Scheme
	redirected.URL.Host = r.target.Host
	redirected.Host = r.target.Host

	return http.DefaultTransport.RoundTrip(redirected)
}

func requestNamed(name string) ctrl.Request {
	return ctrl.Request{NamespacedName: types.NamespacedName{Namespace: testNamespace, Name: name}}
}
