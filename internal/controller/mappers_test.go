package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
)

func TestMapSecretToGerrits(t *testing.T) {
	t.Parallel()

	other := testGerrit()
	other.Name = "other"
	other.UID = "other-uid"
	other.Spec.SecretRef = "other-secret"

	foreign := testGerrit()
	foreign.Namespace = "elsewhere"

	deps, _ := newTestDeps(t, testGerrit(), other, foreign)
	mapper := &SecretMapper{Client: deps.Client}

	requests := mapper.MapSecretToGerrits(context.Background(), testSecret("gerrit-secure-config"))
	assert.Equal(t, []reconcile.Request{requestNamed("gerrit")}, requests)

	assert.Nil(t, mapper.MapSecretToGerrits(context.Background(), &corev1.ConfigMap{}))
}

func TestMapSecretToReceivers(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, testReceiver())
	mapper := &SecretMapper{Client: deps.Client}

	requests := mapper.MapSecretToReceivers(context.Background(), testSecret("receiver-credentials"))
	assert.Equal(t, []reconcile.Request{requestNamed("receiver")}, requests)

	assert.Empty(t, mapper.MapSecretToReceivers(context.Background(), testSecret("unrelated")))
}

func TestMapClusterToGitGCs(t *testing.T) {
	t.Parallel()

	unrelated := testGitGC("gc-other")
	unrelated.Spec.Cluster = "other"

	deps, _ := newTestDeps(t, testGitGC("gc-all"), testGitGC("gc-core", "core"), unrelated)
	mapper := &GitGCMapper{Client: deps.Client}

	requests := mapper.MapClusterToGitGCs(context.Background(), &v1alpha1.GerritCluster{
		ObjectMeta: metav1.ObjectMeta{Name: "review", Namespace: testNamespace},
	})
	assert.ElementsMatch(t, []reconcile.Request{requestNamed("gc-all"), requestNamed("gc-core")}, requests)
}

func TestMapGitGCToSiblings(t *testing.T) {
	t.Parallel()

	deps, _ := newTestDeps(t, testGitGC("gc-all"), testGitGC("gc-core", "core"))
	mapper := &GitGCMapper{Client: deps.Client}

	gc := testGitGC("gc-core", "core")

	requests := mapper.MapGitGCToSiblings(context.Background(), gc)
	require.Len(t, requests, 1)
	assert.Equal(t, requestNamed("gc-all"), requests[0])

	assert.Nil(t, mapper.MapGitGCToSiblings(context.Background(), testSecret("x")))
}
