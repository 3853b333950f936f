package controller

import (
	"context"

	"github.com/cockroachdb/errors"
	batchv1 "k8s.io/api/batch/v1"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	ctrlcontroller "sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/handler"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/builder"
	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

const (
	nodeGitGCCronJob = "gitgc-cronjob"

	gitGCControllerName = "gitgc"
)

type gitGC = *v1alpha1.GitGarbageCollection

// GitGarbageCollectionReconciler reconciles GitGarbageCollection resources
// into CronJobs running git gc on the shared storage of a cluster.
type GitGarbageCollectionReconciler struct {
	deps     *Dependencies
	pipeline *pipeline[gitGC]
}

// NewGitGarbageCollectionReconciler builds the GitGarbageCollection workflow.
func NewGitGarbageCollectionReconciler(deps *Dependencies) (*GitGarbageCollectionReconciler, error) {
	graph, err := newGitGCGraph(config.NewResolver(deps.Client))
	if err != nil {
		return nil, err
	}

	pipe, err := newPipeline(gitGCControllerName, deps, graph, steps[gitGC]{})
	if err != nil {
		return nil, err
	}

	return &GitGarbageCollectionReconciler{deps: deps, pipeline: pipe}, nil
}

func newGitGCGraph(resolver *config.Resolver) (*workflow.Graph[gitGC], error) {
	graph := workflow.NewGraph[gitGC]()

	err := graph.Register(&workflow.Node[gitGC]{
		ID:   nodeGitGCCronJob,
		Type: &batchv1.CronJob{},
		Name: func(gc gitGC) string { return names.GitGCCronJob(gc.Name) },
		Produce: func(ctx context.Context, gc gitGC, _ workflow.Outputs) (client.Object, error) {
			cluster, err := resolver.Cluster(ctx, gc.Namespace, gc.Spec.Cluster)
			if err != nil {
				return nil, err
			}

			siblings, err := resolver.GitGarbageCollections(ctx, gc.Namespace, gc.Spec.Cluster)
			if err != nil {
				return nil, err
			}

			excluded := builder.ExcludedProjects(gc, siblings)
			gc.Status.ExcludedProjects = excluded

			return builder.GitGCCronJob(gc, cluster, excluded), nil
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build gitgc workflow")
	}

	return graph, nil
}

func (r *GitGarbageCollectionReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	return r.pipeline.run(ctx, req, &v1alpha1.GitGarbageCollection{})
}

// SetupWithManager sets up the controller with the Manager.
func (r *GitGarbageCollectionReconciler) SetupWithManager(mgr ctrl.Manager) error {
	mapper := &GitGCMapper{Client: mgr.GetClient()}

	//nolint:wrapcheck // controller-runtime builder pattern
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.GitGarbageCollection{}).
		Owns(&batchv1.CronJob{}).
		Watches(&v1alpha1.GerritCluster{}, handler.EnqueueRequestsFromMapFunc(mapper.MapClusterToGitGCs)).
		Watches(&v1alpha1.GitGarbageCollection{}, handler.EnqueueRequestsFromMapFunc(mapper.MapGitGCToSiblings)).
		WithOptions(ctrlcontroller.Options{MaxConcurrentReconciles: r.deps.Config.MaxConcurrentReconciles}).
		Complete(r)
}
