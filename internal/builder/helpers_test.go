package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/config"
)

func testConfig() *config.OperatorConfig {
	return &config.OperatorConfig{
		ClusterMode:             config.ClusterModeHighAvailability,
		IngressType:             config.IngressTypeNone,
		ClusterDomain:           config.DefaultClusterDomain,
		MaxConcurrentReconciles: 1,
	}
}

func testCluster() *v1alpha1.GerritCluster {
	return &v1alpha1.GerritCluster{
		ObjectMeta: metav1.ObjectMeta{Name: "review", Namespace: "gerrit", UID: "cluster-uid"},
		Spec: v1alpha1.GerritClusterSpec{
			ClusterSharedSpec: v1alpha1.ClusterSharedSpec{
				ServerID: "server-1",
				Storage: v1alpha1.StorageConfig{
					SharedStorage: v1alpha1.SharedStorage{Size: resource.MustParse("10Gi")},
				},
				Ingress: v1alpha1.IngressConfig{Enabled: true, Host: "gerrit.example.com"},
			},
			Gerrits: []v1alpha1.GerritTemplate{
				{
					ObjectMeta: metav1.ObjectMeta{Name: "gerrit", Labels: map[string]string{"team": "scm"}},
					Spec:       v1alpha1.GerritTemplateSpec{Mode: v1alpha1.GerritModePrimary, Service: v1alpha1.GerritServiceConfig{SSHPort: 29418}},
				},
				{
					ObjectMeta: metav1.ObjectMeta{Name: "gerrit-replica"},
					Spec:       v1alpha1.GerritTemplateSpec{Mode: v1alpha1.GerritModeReplica, Replicas: 2},
				},
			},
		},
	}
}

// clusterGerrit returns a Gerrit controlled by the test cluster.
func clusterGerrit() *v1alpha1.Gerrit {
	cluster := testCluster()

	return &v1alpha1.Gerrit{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "gerrit",
			Namespace: "gerrit",
			OwnerReferences: []metav1.OwnerReference{{
				APIVersion: v1alpha1.GroupVersion.String(),
				Kind:       "GerritCluster",
				Name:       cluster.Name,
				UID:        cluster.UID,
				Controller: ptr.To(true),
			}},
		},
		Spec: v1alpha1.GerritSpec{
			GerritTemplateSpec: cluster.Spec.Gerrits[0].Spec,
			ClusterSharedSpec:  cluster.Spec.ClusterSharedSpec,
		},
	}
}

func parseINI(t *testing.T, content string) *ini.File {
	t.Helper()

	file, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, []byte(content))
	require.NoError(t, err)

	return file
}
