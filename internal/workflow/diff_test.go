package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestCovers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		want     any
		have     any
		expected bool
	}{
		{name: "nil is don't care", want: nil, have: "x", expected: true},
		{name: "empty map is don't care", want: map[string]any{}, have: nil, expected: true},
		{name: "equal strings", want: "a", have: "a", expected: true},
		{name: "different strings", want: "a", have: "b", expected: false},
		{name: "numbers across types", want: int64(3), have: float64(3), expected: true},
		{name: "server defaults ignored", want: map[string]any{"a": "1"}, have: map[string]any{"a": "1", "b": "2"}, expected: true},
		{name: "missing key", want: map[string]any{"a": "1"}, have: map[string]any{"b": "2"}, expected: false},
		{name: "nested", want: map[string]any{"a": map[string]any{"b": true}}, have: map[string]any{"a": map[string]any{"b": false}}, expected: false},
		{name: "list length differs", want: []any{"a"}, have: []any{"a", "b"}, expected: false},
		{
			name:     "list elements covered",
			want:     []any{map[string]any{"name": "c"}},
			have:     []any{map[string]any{"name": "c", "terminationMessagePath": "/dev/termination-log"}},
			expected: true,
		},
		{name: "empty list against missing", want: []any{}, have: nil, expected: true},
		{name: "empty list against populated", want: []any{}, have: []any{"a"}, expected: false},
		{name: "map against scalar", want: map[string]any{"a": "1"}, have: "x", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, covers(tt.want, tt.have))
		})
	}
}

func TestChangedFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		desired  map[string]any
		live     map[string]any
		expected []string
	}{
		{
			name:     "identical",
			desired:  map[string]any{"spec": map[string]any{"replicas": int64(1)}},
			live:     map[string]any{"spec": map[string]any{"replicas": int64(1)}, "status": map[string]any{"x": "y"}},
			expected: []string{},
		},
		{
			name:     "spec section",
			desired:  map[string]any{"spec": map[string]any{"replicas": int64(2)}},
			live:     map[string]any{"spec": map[string]any{"replicas": int64(1)}},
			expected: []string{"spec"},
		},
		{
			name:     "data keys both ways",
			desired:  map[string]any{"data": map[string]any{"a": "1", "b": "2"}},
			live:     map[string]any{"data": map[string]any{"a": "1", "b": "3", "c": "4"}},
			expected: []string{"b", "c"},
		},
		{
			name:     "data removed entirely",
			desired:  map[string]any{},
			live:     map[string]any{"data": map[string]any{"a": "1"}},
			expected: []string{"a"},
		},
		{
			name: "labels",
			desired: map[string]any{"metadata": map[string]any{
				"labels": map[string]any{"a": "1"},
			}},
			live:     map[string]any{"metadata": map[string]any{}},
			expected: []string{"metadata.labels"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			changed := changedFields(&unstructured.Unstructured{Object: tt.desired}, &unstructured.Unstructured{Object: tt.live})
			if len(tt.expected) == 0 {
				assert.Empty(t, changed)

				return
			}

			assert.Equal(t, tt.expected, changed)
		})
	}
}

func TestOverlay(t *testing.T) {
	t.Parallel()

	desired := &unstructured.Unstructured{Object: map[string]any{
		"metadata": map[string]any{
			"name":   "x",
			"labels": map[string]any{"managed": "yes"},
		},
		"spec": map[string]any{
			"replicas": int64(2),
			"containers": []any{
				map[string]any{"name": "gerrit", "image": "new"},
			},
		},
	}}

	live := &unstructured.Unstructured{Object: map[string]any{
		"metadata": map[string]any{
			"name":            "x",
			"resourceVersion": "7",
			"labels":          map[string]any{"user": "label"},
		},
		"spec": map[string]any{
			"replicas":        int64(1),
			"revisionHistory": int64(10),
			"containers": []any{
				map[string]any{"name": "gerrit", "image": "old", "terminationMessagePath": "/dev/termination-log"},
				map[string]any{"name": "sidecar"},
			},
		},
		"data":   map[string]any{"stale": "1"},
		"status": map[string]any{"ready": true},
	}}

	overlay(desired, live)

	assert.Equal(t, map[string]any{
		"replicas":        int64(2),
		"revisionHistory": int64(10),
		"containers": []any{
			map[string]any{"name": "gerrit", "image": "new", "terminationMessagePath": "/dev/termination-log"},
		},
	}, live.Object["spec"])
	assert.NotContains(t, live.Object, "data")
	assert.Equal(t, map[string]any{"ready": true}, live.Object["status"])
	assert.Equal(t, map[string]string{"user": "label", "managed": "yes"}, live.GetLabels())
	assert.Equal(t, "7", live.GetResourceVersion())
	assert.Empty(t, changedFields(desired, live))
}
