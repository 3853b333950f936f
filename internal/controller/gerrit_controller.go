package controller

import (
	"context"

	"github.com/cockroachdb/errors"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlcontroller "sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/handler"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/builder"
	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
	"github.com/lexfrei/gerrit-operator/internal/remediation"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// Gerrit workflow node ids.
const (
	nodeGerritConfigMap       = "gerrit-configmap"
	nodeGerritInitConfigMap   = "gerrit-init-configmap"
	nodeGerritService         = "gerrit-service"
	nodeGerritHeadlessService = "gerrit-headless-service"
	nodeGerritStatefulSet     = "gerrit-statefulset"

	gerritControllerName = "gerrit"
)

type gerrit = *v1alpha1.Gerrit

// GerritReconciler reconciles Gerrit resources into ConfigMaps, Services
// and a StatefulSet, restarting or reloading the instance when its
// configuration changes.
type GerritReconciler struct {
	deps     *Dependencies
	pipeline *pipeline[gerrit]
}

// NewGerritReconciler builds the Gerrit workflow. It fails when the graph
// is invalid.
func NewGerritReconciler(deps *Dependencies) (*GerritReconciler, error) {
	graph, err := newGerritGraph(deps.Config)
	if err != nil {
		return nil, err
	}

	fix := newRemediator(gerritControllerName, deps, &remediation.Planner{
		RestartKeys: []string{remediation.KeyGerritConfig, remediation.KeyGerritInitConfig},
		ConfigNodes: []string{nodeGerritConfigMap, nodeGerritInitConfigMap},
	})

	pipe, err := newPipeline(gerritControllerName, deps, graph, steps[gerrit]{
		secrets: func(g gerrit) []string {
			return []string{g.Spec.SecretRef}
		},
		remediate: func(ctx context.Context, g gerrit, result *workflow.Result, live map[string]string) {
			fix.apply(ctx, &target{
				owner:     g,
				workload:  appsv1.SchemeGroupVersion.WithKind("StatefulSet"),
				key:       client.ObjectKey{Namespace: g.Namespace, Name: names.GerritStatefulSet(g.Name)},
				reloadURL: builder.ServiceURL(g, deps.Config),
			}, result, g.Status.AppliedSecretVersions, live)
		},
	})
	if err != nil {
		return nil, err
	}

	return &GerritReconciler{deps: deps, pipeline: pipe}, nil
}

func newGerritGraph(cfg *config.OperatorConfig) (*workflow.Graph[gerrit], error) {
	graph := workflow.NewGraph[gerrit]()

	nodes := []*workflow.Node[gerrit]{
		{
			ID:   nodeGerritConfigMap,
			Type: &corev1.ConfigMap{},
			Name: func(g gerrit) string { return names.GerritConfigMap(g.Name) },
			Produce: func(_ context.Context, g gerrit, _ workflow.Outputs) (client.Object, error) {
				return builder.GerritConfigMap(g, cfg)
			},
		},
		{
			ID:        nodeGerritInitConfigMap,
			DependsOn: []string{nodeGerritConfigMap},
			Type:      &corev1.ConfigMap{},
			Name:      func(g gerrit) string { return names.GerritInitConfigMap(g.Name) },
			Produce: func(_ context.Context, g gerrit, deps workflow.Outputs) (client.Object, error) {
				configMap, _ := workflow.DesiredOf[*corev1.ConfigMap](deps, nodeGerritConfigMap)

				return builder.GerritInitConfigMap(g, cfg, configMap)
			},
		},
		{
			ID:   nodeGerritService,
			Type: &corev1.Service{},
			Name: func(g gerrit) string { return names.GerritService(g.Name) },
			Produce: func(_ context.Context, g gerrit, _ workflow.Outputs) (client.Object, error) {
				return builder.GerritService(g), nil
			},
		},
		{
			ID:   nodeGerritHeadlessService,
			Type: &corev1.Service{},
			Name: func(g gerrit) string { return names.GerritHeadlessService(g.Name) },
			Produce: func(_ context.Context, g gerrit, _ workflow.Outputs) (client.Object, error) {
				return builder.GerritHeadlessService(g), nil
			},
		},
		{
			ID: nodeGerritStatefulSet,
			DependsOn: []string{
				nodeGerritConfigMap,
				nodeGerritInitConfigMap,
				nodeGerritService,
				nodeGerritHeadlessService,
			},
			Type: &appsv1.StatefulSet{},
			Name: func(g gerrit) string { return names.GerritStatefulSet(g.Name) },
			Produce: func(_ context.Context, g gerrit, _ workflow.Outputs) (client.Object, error) {
				return builder.GerritStatefulSet(g), nil
			},
		},
	}

	for _, node := range nodes {
		err := graph.Register(node)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build gerrit workflow")
		}
	}

	return graph, nil
}

func (r *GerritReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	return r.pipeline.run(ctx, req, &v1alpha1.Gerrit{})
}

// SetupWithManager sets up the controller with the Manager.
func (r *GerritReconciler) SetupWithManager(mgr ctrl.Manager) error {
	mapper := &SecretMapper{Client: mgr.GetClient()}

	//nolint:wrapcheck // controller-runtime builder pattern
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.Gerrit{}).
		Owns(&corev1.ConfigMap{}).
		Owns(&corev1.Service{}).
		Owns(&appsv1.StatefulSet{}).
		Watches(&corev1.Secret{}, handler.EnqueueRequestsFromMapFunc(mapper.MapSecretToGerrits)).
		WithOptions(ctrlcontroller.Options{MaxConcurrentReconciles: r.deps.Config.MaxConcurrentReconciles}).
		Complete(r)
}
