package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

func testGerritCluster() *v1alpha1.GerritCluster {
	return &v1alpha1.GerritCluster{
		ObjectMeta: metav1.ObjectMeta{Name: "review", Namespace: testNamespace, UID: "cluster-uid", Generation: 1},
		Spec: v1alpha1.GerritClusterSpec{
			ClusterSharedSpec: v1alpha1.ClusterSharedSpec{
				Storage: v1alpha1.StorageConfig{
					SharedStorage: v1alpha1.SharedStorage{Size: resource.MustParse("10Gi")},
				},
				Ingress: v1alpha1.IngressConfig{Enabled: true, Host: "gerrit.example.com"},
			},
			Gerrits: []v1alpha1.GerritTemplate{
				{
					ObjectMeta: metav1.ObjectMeta{Name: "gerrit"},
					Spec:       v1alpha1.GerritTemplateSpec{Mode: v1alpha1.GerritModePrimary},
				},
				{
					ObjectMeta: metav1.ObjectMeta{Name: "gerrit-replica"},
					Spec:       v1alpha1.GerritTemplateSpec{Mode: v1alpha1.GerritModeReplica},
				},
			},
			Receiver: &v1alpha1.ReceiverTemplate{
				Spec: v1alpha1.ReceiverTemplateSpec{CredentialSecretRef: "receiver-credentials"},
			},
		},
	}
}

func getCluster(t *testing.T, c client.Client) *v1alpha1.GerritCluster {
	t.Helper()

	cluster := &v1alpha1.GerritCluster{}
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Namespace: testNamespace, Name: "review"}, cluster))

	return cluster
}

func TestGerritClusterReconcileCreatesChildren(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, testGerritCluster())
	reconciler, err := NewGerritClusterReconciler(deps)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := reconciler.Reconcile(ctx, requestNamed("review"))
	require.NoError(t, err)
	assert.Equal(t, notReadyRequeueDelay, result.RequeueAfter, "child Gerrits are not ready yet")

	pvc := &corev1.PersistentVolumeClaim{}
	require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "review-shared-storage"}, pvc))
	assert.Contains(t, pvc.Spec.AccessModes, corev1.ReadWriteMany)

	for _, name := range []string{"gerrit", "gerrit-replica"} {
		gerrit := &v1alpha1.Gerrit{}
		require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: name}, gerrit))
		assert.True(t, metav1.IsControlledBy(gerrit, getCluster(t, deps.Client)), name)
		assert.Equal(t, "gerrit.example.com", gerrit.Spec.Ingress.Host)
	}

	receiver := &v1alpha1.Receiver{}
	require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "review-receiver"}, receiver))
	assert.Equal(t, "receiver-credentials", receiver.Spec.CredentialSecretRef)

	ingress := &networkingv1.Ingress{}
	require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "review-ingress"}, ingress))
	require.Len(t, ingress.Spec.Rules, 1)
	assert.Equal(t, "gerrit.example.com", ingress.Spec.Rules[0].Host)

	cluster := getCluster(t, deps.Client)
	assert.Equal(t, map[string][]string{
		"primary":  {"gerrit"},
		"replica":  {"gerrit-replica"},
		"receiver": {"review-receiver"},
	}, cluster.Status.Members)
	assert.Equal(t, int64(1), cluster.Status.ObservedGeneration)
}

func TestGerritClusterReconcileRemovesReceiver(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, testGerritCluster())
	reconciler, err := NewGerritClusterReconciler(deps)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = reconciler.Reconcile(ctx, requestNamed("review"))
	require.NoError(t, err)

	cluster := getCluster(t, deps.Client)
	cluster.Spec.Receiver = nil
	require.NoError(t, deps.Client.Update(ctx, cluster))

	_, err = reconciler.Reconcile(ctx, requestNamed("review"))
	require.NoError(t, err)

	err = deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "review-receiver"}, &v1alpha1.Receiver{})
	assert.True(t, apierrors.IsNotFound(err), "receiver should be deleted, got %v", err)
	assert.NotContains(t, getCluster(t, deps.Client).Status.Members, "receiver")
}

func TestGerritClusterReconcileRemovesGerrit(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, testGerritCluster())
	reconciler, err := NewGerritClusterReconciler(deps)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = reconciler.Reconcile(ctx, requestNamed("review"))
	require.NoError(t, err)

	cluster := getCluster(t, deps.Client)
	cluster.Spec.Gerrits = cluster.Spec.Gerrits[:1]
	require.NoError(t, deps.Client.Update(ctx, cluster))

	_, err = reconciler.Reconcile(ctx, requestNamed("review"))
	require.NoError(t, err)

	err = deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "gerrit-replica"}, &v1alpha1.Gerrit{})
	assert.True(t, apierrors.IsNotFound(err), "replica should be deleted, got %v", err)
	require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "gerrit"}, &v1alpha1.Gerrit{}))
}

func TestGerritClusterReconcileDuplicateGerritNames(t *testing.T) {
	t.Parallel()

	cluster := testGerritCluster()
	cluster.Spec.Gerrits[1].Name = "gerrit"

	deps, recorder := newTestDeps(t, cluster)
	reconciler, err := NewGerritClusterReconciler(deps)
	require.NoError(t, err)

	_, err = reconciler.Reconcile(context.Background(), requestNamed("review"))
	require.Error(t, err)

	condition := meta.FindStatusCondition(getCluster(t, deps.Client).Status.Conditions, v1alpha1.ConditionReady)
	require.NotNil(t, condition)
	assert.Equal(t, v1alpha1.ReasonDuplicateResourceID, condition.Reason)

	require.Len(t, recorder.Events, 1)
	assert.Contains(t, <-recorder.Events, "Warning "+v1alpha1.ReasonDuplicateResourceID)
}

func TestGerritClusterReconcileIngressDisabled(t *testing.T) {
	t.Parallel()

	cluster := testGerritCluster()
	cluster.Spec.Ingress.Enabled = false

	deps, _ := newTestDeps(t, cluster)
	reconciler, err := NewGerritClusterReconciler(deps)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = reconciler.Reconcile(ctx, requestNamed("review"))
	require.NoError(t, err)

	ingresses := &networkingv1.IngressList{}
	require.NoError(t, deps.Client.List(ctx, ingresses, client.InNamespace(testNamespace)))
	assert.Empty(t, ingresses.Items)
}

func TestGerritClusterReconcileConverges(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, testGerritCluster())
	collector := newOutcomeCollector()
	deps.Metrics = collector

	reconciler, err := NewGerritClusterReconciler(deps)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = reconciler.Reconcile(ctx, requestNamed("review"))
	require.NoError(t, err)

	first := collector.take()
	require.NotEmpty(t, first)

	_, err = reconciler.Reconcile(ctx, requestNamed("review"))
	require.NoError(t, err)

	second := collector.take()
	require.Len(t, second, len(first))

	for node, outcomes := range second {
		require.Len(t, outcomes, len(first[node]), node)

		for _, outcome := range outcomes {
			assert.Equal(t, string(workflow.Unchanged), outcome, node)
		}
	}
}
