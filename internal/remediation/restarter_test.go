package remediation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/lexfrei/gerrit-operator/internal/names"
	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

func newStatefulSet() *appsv1.StatefulSet {
	return &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: "gerrit", Namespace: "gerrit"},
		Spec: appsv1.StatefulSetSpec{
			Template: corev1PodTemplate(),
		},
	}
}

func setupRestarter(t *testing.T, objects ...client.Object) (*Restarter, client.Client) {
	t.Helper()

	scheme := runtime.NewScheme()
	require.NoError(t, clientgoscheme.AddToScheme(scheme))

	fakeClient := fake.NewClientBuilder().WithScheme(scheme).WithObjects(objects...).Build()

	restarter := NewRestarter(fakeClient, "test")
	restarter.newID = func() string { return "trigger-1" }

	return restarter, fakeClient
}

var statefulSetGVK = appsv1.SchemeGroupVersion.WithKind("StatefulSet")

func TestRestarterRestart(t *testing.T) {
	t.Parallel()

	restarter, fakeClient := setupRestarter(t, newStatefulSet())
	ctx := context.Background()
	key := client.ObjectKey{Namespace: "gerrit", Name: "gerrit"}

	restarted, err := restarter.Restart(ctx, statefulSetGVK, key, &workflow.Result{})
	require.NoError(t, err)
	assert.True(t, restarted)

	live := &appsv1.StatefulSet{}
	require.NoError(t, fakeClient.Get(ctx, key, live))
	assert.Equal(t, "trigger-1", live.Spec.Template.Annotations[names.AnnotationRestartTrigger])
	assert.Equal(t, "kept", live.Spec.Template.Annotations["existing"])
}

func TestRestarterSkipsCreatedWorkload(t *testing.T) {
	t.Parallel()

	restarter, fakeClient := setupRestarter(t, newStatefulSet())
	ctx := context.Background()
	key := client.ObjectKey{Namespace: "gerrit", Name: "gerrit"}

	result := &workflow.Result{Outcomes: []workflow.Outcome{{
		Kind:      workflow.Created,
		GVK:       statefulSetGVK,
		Namespace: "gerrit",
		Name:      "gerrit",
	}}}

	restarted, err := restarter.Restart(ctx, statefulSetGVK, key, result)
	require.NoError(t, err)
	assert.False(t, restarted)

	live := &appsv1.StatefulSet{}
	require.NoError(t, fakeClient.Get(ctx, key, live))
	assert.NotContains(t, live.Spec.Template.Annotations, names.AnnotationRestartTrigger)
}

func TestRestarterMissingWorkload(t *testing.T) {
	t.Parallel()

	restarter, _ := setupRestarter(t)

	_, err := restarter.Restart(context.Background(), statefulSetGVK,
		client.ObjectKey{Namespace: "gerrit", Name: "absent"}, nil)
	require.Error(t, err)
}

func corev1PodTemplate() corev1.PodTemplateSpec {
	return corev1.PodTemplateSpec{
		ObjectMeta: metav1.ObjectMeta{
			Annotations: map[string]string{"existing": "kept"},
		},
	}
}
