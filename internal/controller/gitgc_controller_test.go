package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
)

func testGitGC(name string, projects ...string) *v1alpha1.GitGarbageCollection {
	return &v1alpha1.GitGarbageCollection{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: testNamespace, UID: types.UID(name + "-uid")},
		Spec: v1alpha1.GitGarbageCollectionSpec{
			Cluster:  "review",
			Schedule: "0 3 * * *",
			Projects: projects,
		},
	}
}

func TestGitGCReconcileExcludesSelectiveProjects(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t,
		testGerritCluster(),
		testGitGC("gc-all"),
		testGitGC("gc-core", "core/build", "All-Projects"),
	)
	reconciler, err := NewGitGarbageCollectionReconciler(deps)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := reconciler.Reconcile(ctx, requestNamed("gc-all"))
	require.NoError(t, err)
	assert.Zero(t, result)

	cronJob := &batchv1.CronJob{}
	require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "gc-all"}, cronJob))
	assert.Equal(t, "0 3 * * *", cronJob.Spec.Schedule)

	containers := cronJob.Spec.JobTemplate.Spec.Template.Spec.Containers
	require.Len(t, containers, 1)
	assert.Equal(t, []string{"-s", "All-Projects", "-s", "core/build"}, containers[0].Args)

	gc := &v1alpha1.GitGarbageCollection{}
	require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "gc-all"}, gc))
	assert.Equal(t, []string{"All-Projects", "core/build"}, gc.Status.ExcludedProjects)
	assert.True(t, gc.Status.Ready)
}

func TestGitGCReconcileSelectiveProjects(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, testGerritCluster(), testGitGC("gc-core", "core/build", "All-Projects"))
	reconciler, err := NewGitGarbageCollectionReconciler(deps)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = reconciler.Reconcile(ctx, requestNamed("gc-core"))
	require.NoError(t, err)

	cronJob := &batchv1.CronJob{}
	require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "gc-core"}, cronJob))
	assert.Equal(t,
		[]string{"-p", "All-Projects", "-p", "core/build"},
		cronJob.Spec.JobTemplate.Spec.Template.Spec.Containers[0].Args)
}

func TestGitGCReconcileMissingCluster(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, testGitGC("gc-all"))
	reconciler, err := NewGitGarbageCollectionReconciler(deps)
	require.NoError(t, err)

	ctx := context.Background()

	_, err = reconciler.Reconcile(ctx, requestNamed("gc-all"))
	require.Error(t, err)

	gc := &v1alpha1.GitGarbageCollection{}
	require.NoError(t, deps.Client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: "gc-all"}, gc))

	condition := meta.FindStatusCondition(gc.Status.Conditions, v1alpha1.ConditionReady)
	require.NotNil(t, condition)
	assert.Equal(t, v1alpha1.ReasonReferenceNotFound, condition.Reason)
	assert.False(t, gc.Status.Ready)
}
