package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

func object(apiVersion, kind string, fields map[string]any) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": apiVersion,
		"kind":       kind,
	}}

	for key, value := range fields {
		obj.Object[key] = value
	}

	return obj
}

func TestIsReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		obj      *unstructured.Unstructured
		expected bool
	}{
		{
			name: "statefulset ready",
			obj: object("apps/v1", "StatefulSet", map[string]any{
				"spec":   map[string]any{"replicas": int64(2)},
				"status": map[string]any{"readyReplicas": int64(2)},
			}),
			expected: true,
		},
		{
			name: "statefulset rolling",
			obj: object("apps/v1", "StatefulSet", map[string]any{
				"spec":   map[string]any{"replicas": int64(2)},
				"status": map[string]any{"readyReplicas": int64(1)},
			}),
			expected: false,
		},
		{
			name:     "statefulset without status defaults to one replica",
			obj:      object("apps/v1", "StatefulSet", map[string]any{}),
			expected: false,
		},
		{
			name: "statefulset scaled to zero",
			obj: object("apps/v1", "StatefulSet", map[string]any{
				"spec": map[string]any{"replicas": int64(0)},
			}),
			expected: true,
		},
		{
			name: "deployment available",
			obj: object("apps/v1", "Deployment", map[string]any{
				"spec":   map[string]any{"replicas": int64(1)},
				"status": map[string]any{"availableReplicas": int64(1)},
			}),
			expected: true,
		},
		{
			name:     "pvc pending is ready",
			obj:      object("v1", "PersistentVolumeClaim", map[string]any{"status": map[string]any{"phase": "Pending"}}),
			expected: true,
		},
		{
			name:     "pvc lost",
			obj:      object("v1", "PersistentVolumeClaim", map[string]any{"status": map[string]any{"phase": "Lost"}}),
			expected: false,
		},
		{
			name: "snapshot ready",
			obj: object("snapshot.storage.k8s.io/v1", "VolumeSnapshot", map[string]any{
				"status": map[string]any{"readyToUse": true},
			}),
			expected: true,
		},
		{
			name:     "snapshot pending",
			obj:      object("snapshot.storage.k8s.io/v1", "VolumeSnapshot", map[string]any{}),
			expected: false,
		},
		{
			name:     "gerrit child ready",
			obj:      object("gerrit.k8s.lex.la/v1alpha1", "Gerrit", map[string]any{"status": map[string]any{"ready": true}}),
			expected: true,
		},
		{
			name:     "gerrit child not ready",
			obj:      object("gerrit.k8s.lex.la/v1alpha1", "Receiver", map[string]any{"status": map[string]any{"ready": false}}),
			expected: false,
		},
		{
			name:     "configmap exists",
			obj:      object("v1", "ConfigMap", map[string]any{}),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, workflow.IsReady(tt.obj))
		})
	}
}

func TestResult_Ready(t *testing.T) {
	t.Parallel()

	ready := object("v1", "ConfigMap", map[string]any{"metadata": map[string]any{"name": "a"}})
	notReady := object("apps/v1", "StatefulSet", map[string]any{"metadata": map[string]any{"name": "gerrit"}})

	result := &workflow.Result{Outcomes: []workflow.Outcome{
		{Kind: workflow.Unchanged, Object: ready, Name: "a", GVK: ready.GroupVersionKind()},
		{Kind: workflow.Deleted, Name: "gone"},
	}}
	assert.True(t, result.Ready())
	assert.Empty(t, result.NotReady())

	result.Outcomes = append(result.Outcomes, workflow.Outcome{
		Kind:   workflow.Created,
		Object: notReady,
		Name:   "gerrit",
		GVK:    notReady.GroupVersionKind(),
	})
	assert.False(t, result.Ready())
	assert.Equal(t, []string{"StatefulSet/gerrit"}, result.NotReady())
}
