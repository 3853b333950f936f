package controller

import (
	"context"

	"github.com/cockroachdb/errors"
	snapshotv1 "github.com/kubernetes-csi/external-snapshotter/client/v6/apis/volumesnapshot/v1"
	corev1 "k8s.io/api/core/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlcontroller "sigs.k8s.io/controller-runtime/pkg/controller"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/builder"
	"github.com/lexfrei/gerrit-operator/internal/names"
	"github.com/lexfrei/gerrit-operator/internal/network"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// GerritCluster workflow node ids.
const (
	nodeSharedStoragePVC       = "shared-storage-pvc"
	nodePluginCachePVC         = "plugin-cache-pvc"
	nodeSharedStorageSnapshots = "shared-storage-snapshots"
	nodeGerrits                = "gerrits"
	nodeReceiver               = "receiver"
	nodeNetworkPrefix          = "network-"

	clusterControllerName = "gerritcluster"
)

type gerritCluster = *v1alpha1.GerritCluster

// GerritClusterReconciler reconciles GerritCluster resources into shared
// storage, child Gerrits, an optional Receiver and the network entrypoint
// of the configured strategy.
type GerritClusterReconciler struct {
	deps     *Dependencies
	strategy network.Strategy
	pipeline *pipeline[gerritCluster]
}

// NewGerritClusterReconciler builds the GerritCluster workflow for the
// network strategy selected by the operator configuration.
func NewGerritClusterReconciler(deps *Dependencies) (*GerritClusterReconciler, error) {
	strategy, err := network.New(deps.Config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select network strategy")
	}

	graph, err := newClusterGraph(strategy)
	if err != nil {
		return nil, err
	}

	pipe, err := newPipeline(clusterControllerName, deps, graph, steps[gerritCluster]{
		members: func(cluster gerritCluster, result *workflow.Result) map[string][]string {
			return builder.Members(clusterNetworkSpec(cluster, result.Outputs))
		},
	})
	if err != nil {
		return nil, err
	}

	return &GerritClusterReconciler{deps: deps, strategy: strategy, pipeline: pipe}, nil
}

//nolint:funlen // one entry per node
func newClusterGraph(strategy network.Strategy) (*workflow.Graph[gerritCluster], error) {
	graph := workflow.NewGraph[gerritCluster]()

	nodes := []*workflow.Node[gerritCluster]{
		{
			ID:   nodeSharedStoragePVC,
			Type: &corev1.PersistentVolumeClaim{},
			Name: func(cluster gerritCluster) string { return names.SharedStorage(cluster.Name) },
			Produce: func(_ context.Context, cluster gerritCluster, _ workflow.Outputs) (client.Object, error) {
				return builder.SharedStoragePVC(cluster), nil
			},
		},
		{
			ID:   nodePluginCachePVC,
			Type: &corev1.PersistentVolumeClaim{},
			Name: func(cluster gerritCluster) string { return names.PluginCache(cluster.Name) },
			IsActive: func(cluster gerritCluster, _ workflow.Outputs) bool {
				return cluster.Spec.Storage.PluginCache.Enabled
			},
			Produce: func(_ context.Context, cluster gerritCluster, _ workflow.Outputs) (client.Object, error) {
				return builder.PluginCachePVC(cluster), nil
			},
		},
		{
			ID:          nodeSharedStorageSnapshots,
			Cardinality: workflow.Bulk,
			DependsOn:   []string{nodeSharedStoragePVC},
			Type:        &snapshotv1.VolumeSnapshot{},
			IsActive: func(cluster gerritCluster, _ workflow.Outputs) bool {
				return len(cluster.Spec.Storage.SharedStorage.Snapshots) > 0
			},
			ProduceBulk: func(_ context.Context, cluster gerritCluster, _ workflow.Outputs) ([]client.Object, error) {
				return builder.SharedStorageSnapshots(cluster), nil
			},
		},
		{
			ID:          nodeGerrits,
			Cardinality: workflow.Bulk,
			DependsOn:   []string{nodeSharedStoragePVC},
			Type:        &v1alpha1.Gerrit{},
			ProduceBulk: func(_ context.Context, cluster gerritCluster, _ workflow.Outputs) ([]client.Object, error) {
				return builder.Gerrits(cluster), nil
			},
		},
		{
			ID:        nodeReceiver,
			DependsOn: []string{nodeSharedStoragePVC},
			Type:      &v1alpha1.Receiver{},
			Name:      builder.ReceiverName,
			IsActive: func(cluster gerritCluster, _ workflow.Outputs) bool {
				return cluster.Spec.Receiver != nil
			},
			Produce: func(_ context.Context, cluster gerritCluster, _ workflow.Outputs) (client.Object, error) {
				return builder.Receiver(cluster), nil
			},
		},
	}

	for _, kind := range strategy.Kinds() {
		nodes = append(nodes, networkNode(strategy, kind))
	}

	for _, node := range nodes {
		err := graph.Register(node)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build gerritcluster workflow")
		}
	}

	return graph, nil
}

// networkNode manages the entrypoint objects of one kind.
func networkNode(strategy network.Strategy, kind network.Kind) *workflow.Node[gerritCluster] {
	return &workflow.Node[gerritCluster]{
		ID:          nodeNetworkPrefix + kind.Name,
		Cardinality: workflow.Bulk,
		DependsOn:   []string{nodeGerrits, nodeReceiver},
		Type:        kind.Type,
		IsActive: func(cluster gerritCluster, _ workflow.Outputs) bool {
			return cluster.Spec.Ingress.Enabled
		},
		ProduceBulk: func(ctx context.Context, cluster gerritCluster, deps workflow.Outputs) ([]client.Object, error) {
			objects, err := strategy.Produce(ctx, clusterNetworkSpec(cluster, deps))
			if err != nil {
				return nil, errors.Wrap(err, "failed to produce network entrypoint")
			}

			return objects[kind.Name], nil
		},
	}
}

// clusterNetworkSpec reads the rendered children of a cluster back into
// its network description.
func clusterNetworkSpec(cluster gerritCluster, outputs workflow.Outputs) *network.Spec {
	gerrits := workflow.AllDesiredOf[*v1alpha1.Gerrit](outputs, nodeGerrits)
	receiver, _ := workflow.DesiredOf[*v1alpha1.Receiver](outputs, nodeReceiver)

	return builder.NetworkSpec(cluster, gerrits, receiver)
}

func (r *GerritClusterReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	return r.pipeline.run(ctx, req, &v1alpha1.GerritCluster{})
}

// SetupWithManager sets up the controller with the Manager. The entrypoint
// kinds of the configured strategy are watched as owned objects.
func (r *GerritClusterReconciler) SetupWithManager(mgr ctrl.Manager) error {
	bldr := ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.GerritCluster{}).
		Owns(&corev1.PersistentVolumeClaim{}).
		Owns(&snapshotv1.VolumeSnapshot{}).
		Owns(&v1alpha1.Gerrit{}).
		Owns(&v1alpha1.Receiver{})

	for _, kind := range r.strategy.Kinds() {
		bldr = bldr.Owns(kind.Type)
	}

	//nolint:wrapcheck // controller-runtime builder pattern
	return bldr.
		WithOptions(ctrlcontroller.Options{MaxConcurrentReconciles: r.deps.Config.MaxConcurrentReconciles}).
		Complete(r)
}
