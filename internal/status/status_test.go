package status_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/metrics"
	"github.com/lexfrei/gerrit-operator/internal/status"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

var errProduce = errors.New("cluster main not found")

func setup(t *testing.T) (client.Client, *v1alpha1.Gerrit) {
	t.Helper()

	scheme := runtime.NewScheme()
	require.NoError(t, clientgoscheme.AddToScheme(scheme))
	require.NoError(t, v1alpha1.AddToScheme(scheme))

	gerrit := &v1alpha1.Gerrit{
		ObjectMeta: metav1.ObjectMeta{Name: "gerrit", Namespace: "gerrit", Generation: 3},
	}

	fakeClient := fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(gerrit).
		WithStatusSubresource(&v1alpha1.Gerrit{}).
		Build()

	live := &v1alpha1.Gerrit{}
	require.NoError(t, fakeClient.Get(context.Background(), client.ObjectKeyFromObject(gerrit), live))

	return fakeClient, live
}

func statefulSetOutcome(ready bool) workflow.Outcome {
	obj := &unstructured.Unstructured{Object: map[string]any{
		"spec":   map[string]any{"replicas": int64(1)},
		"status": map[string]any{"readyReplicas": int64(0)},
	}}
	obj.SetGroupVersionKind(schema.GroupVersionKind{Group: "apps", Version: "v1", Kind: "StatefulSet"})

	if ready {
		obj.Object["status"] = map[string]any{"readyReplicas": int64(1)}
	}

	return workflow.Outcome{
		NodeID: "statefulset",
		Kind:   workflow.Unchanged,
		GVK:    obj.GroupVersionKind(),
		Name:   "gerrit",
		Object: obj,
	}
}

func TestCommitReady(t *testing.T) {
	t.Parallel()

	fakeClient, gerrit := setup(t)
	reconciler := status.NewReconciler(fakeClient, metrics.NewNoopCollector(), "gerrit")
	ctx := context.Background()

	conflict, err := reconciler.Commit(ctx, gerrit, status.Update{
		Result:         &workflow.Result{Outcomes: []workflow.Outcome{statefulSetOutcome(true)}},
		SecretVersions: map[string]string{"secure": "7"},
		Members:        map[string][]string{"primary": {"gerrit"}},
	})
	require.NoError(t, err)
	assert.False(t, conflict)

	live := &v1alpha1.Gerrit{}
	require.NoError(t, fakeClient.Get(ctx, client.ObjectKeyFromObject(gerrit), live))

	assert.True(t, live.Status.Ready)
	assert.Equal(t, map[string]string{"secure": "7"}, live.Status.AppliedSecretVersions)
	assert.Equal(t, map[string][]string{"primary": {"gerrit"}}, live.Status.Members)
	assert.Equal(t, int64(3), live.Status.ObservedGeneration)

	condition := meta.FindStatusCondition(live.Status.Conditions, v1alpha1.ConditionReady)
	require.NotNil(t, condition)
	assert.Equal(t, metav1.ConditionTrue, condition.Status)
	assert.Equal(t, v1alpha1.ReasonReconciled, condition.Reason)
}

func TestCommitNotReady(t *testing.T) {
	t.Parallel()

	fakeClient, gerrit := setup(t)
	reconciler := status.NewReconciler(fakeClient, metrics.NewNoopCollector(), "gerrit")
	ctx := context.Background()

	_, err := reconciler.Commit(ctx, gerrit, status.Update{
		Result:         &workflow.Result{Outcomes: []workflow.Outcome{statefulSetOutcome(false)}},
		SecretVersions: map[string]string{"secure": "8"},
	})
	require.NoError(t, err)

	live := &v1alpha1.Gerrit{}
	require.NoError(t, fakeClient.Get(ctx, client.ObjectKeyFromObject(gerrit), live))

	assert.False(t, live.Status.Ready)
	// The baseline moves even when not ready.
	assert.Equal(t, map[string]string{"secure": "8"}, live.Status.AppliedSecretVersions)

	condition := meta.FindStatusCondition(live.Status.Conditions, v1alpha1.ConditionReady)
	require.NotNil(t, condition)
	assert.Equal(t, v1alpha1.ReasonProgressing, condition.Reason)
	assert.Contains(t, condition.Message, "StatefulSet/gerrit")
}

func TestCommitConflict(t *testing.T) {
	t.Parallel()

	fakeClient, gerrit := setup(t)
	reconciler := status.NewReconciler(fakeClient, metrics.NewNoopCollector(), "gerrit")
	ctx := context.Background()

	// A concurrent writer moves the resourceVersion.
	concurrent := gerrit.DeepCopy()
	concurrent.Labels = map[string]string{"touched": "true"}
	require.NoError(t, fakeClient.Update(ctx, concurrent))

	conflict, err := reconciler.Commit(ctx, gerrit, status.Update{
		Result:         &workflow.Result{},
		SecretVersions: map[string]string{"secure": "9"},
	})
	require.NoError(t, err)
	assert.True(t, conflict)

	live := &v1alpha1.Gerrit{}
	require.NoError(t, fakeClient.Get(ctx, client.ObjectKeyFromObject(gerrit), live))
	assert.Empty(t, live.Status.AppliedSecretVersions)
}

func TestFail(t *testing.T) {
	t.Parallel()

	fakeClient, gerrit := setup(t)
	reconciler := status.NewReconciler(fakeClient, metrics.NewNoopCollector(), "gerrit")
	ctx := context.Background()

	gerrit.Status.AppliedSecretVersions = map[string]string{"secure": "1"}

	conflict, err := reconciler.Fail(ctx, gerrit, v1alpha1.ReasonReferenceNotFound, errProduce)
	require.NoError(t, err)
	assert.False(t, conflict)

	live := &v1alpha1.Gerrit{}
	require.NoError(t, fakeClient.Get(ctx, client.ObjectKeyFromObject(gerrit), live))

	assert.False(t, live.Status.Ready)
	assert.Equal(t, map[string]string{"secure": "1"}, live.Status.AppliedSecretVersions)

	condition := meta.FindStatusCondition(live.Status.Conditions, v1alpha1.ConditionReady)
	require.NotNil(t, condition)
	assert.Equal(t, metav1.ConditionFalse, condition.Status)
	assert.Equal(t, v1alpha1.ReasonReferenceNotFound, condition.Reason)
	assert.Equal(t, "cluster main not found", condition.Message)
}
