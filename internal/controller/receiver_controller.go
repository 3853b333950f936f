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
	"github.com/lexfrei/gerrit-operator/internal/names"
	"github.com/lexfrei/gerrit-operator/internal/remediation"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// Receiver workflow node ids.
const (
	nodeReceiverDeployment = "receiver-deployment"
	nodeReceiverService    = "receiver-service"

	receiverControllerName = "receiver"
)

type receiver = *v1alpha1.Receiver

// ReceiverReconciler reconciles Receiver resources into a Deployment and a
// Service. Rotating the credential Secret restarts the Deployment.
type ReceiverReconciler struct {
	deps     *Dependencies
	pipeline *pipeline[receiver]
}

// NewReceiverReconciler builds the Receiver workflow.
func NewReceiverReconciler(deps *Dependencies) (*ReceiverReconciler, error) {
	graph, err := newReceiverGraph()
	if err != nil {
		return nil, err
	}

	fix := newRemediator(receiverControllerName, deps, &remediation.Planner{})

	pipe, err := newPipeline(receiverControllerName, deps, graph, steps[receiver]{
		secrets: func(rcv receiver) []string {
			return []string{rcv.Spec.CredentialSecretRef}
		},
		remediate: func(ctx context.Context, rcv receiver, result *workflow.Result, live map[string]string) {
			fix.apply(ctx, &target{
				owner:    rcv,
				workload: appsv1.SchemeGroupVersion.WithKind("Deployment"),
				key:      client.ObjectKey{Namespace: rcv.Namespace, Name: names.ReceiverDeployment(rcv.Name)},
			}, result, rcv.Status.AppliedSecretVersions, live)
		},
	})
	if err != nil {
		return nil, err
	}

	return &ReceiverReconciler{deps: deps, pipeline: pipe}, nil
}

func newReceiverGraph() (*workflow.Graph[receiver], error) {
	graph := workflow.NewGraph[receiver]()

	nodes := []*workflow.Node[receiver]{
		{
			ID:   nodeReceiverDeployment,
			Type: &appsv1.Deployment{},
			Name: func(rcv receiver) string { return names.ReceiverDeployment(rcv.Name) },
			Produce: func(_ context.Context, rcv receiver, _ workflow.Outputs) (client.Object, error) {
				return builder.ReceiverDeployment(rcv), nil
			},
		},
		{
			ID:   nodeReceiverService,
			Type: &corev1.Service{},
			Name: func(rcv receiver) string { return names.ReceiverService(rcv.Name) },
			Produce: func(_ context.Context, rcv receiver, _ workflow.Outputs) (client.Object, error) {
				return builder.ReceiverService(rcv), nil
			},
		},
	}

	for _, node := range nodes {
		err := graph.Register(node)
		if err != nil {
			return nil, errors.Wrap(err, "failed to build receiver workflow")
		}
	}

	return graph, nil
}

func (r *ReceiverReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	return r.pipeline.run(ctx, req, &v1alpha1.Receiver{})
}

// SetupWithManager sets up the controller with the Manager.
func (r *ReceiverReconciler) SetupWithManager(mgr ctrl.Manager) error {
	mapper := &SecretMapper{Client: mgr.GetClient()}

	//nolint:wrapcheck // controller-runtime builder pattern
	return ctrl.NewControllerManagedBy(mgr).
		For(&v1alpha1.Receiver{}).
		Owns(&appsv1.Deployment{}).
		Owns(&corev1.Service{}).
		Watches(&corev1.Secret{}, handler.EnqueueRequestsFromMapFunc(mapper.MapSecretToReceivers)).
		WithOptions(ctrlcontroller.Options{MaxConcurrentReconciles: r.deps.Config.MaxConcurrentReconciles}).
		Complete(r)
}
