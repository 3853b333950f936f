package config

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
)

// ErrReferenceNotFound marks errors caused by a referenced object that does
// not exist. The reconcile is retried until it appears.
var ErrReferenceNotFound = errors.New("referenced object not found")

// Resolver looks up objects referenced by primary resources.
type Resolver struct {
	client client.Reader
}

// NewResolver creates a new Resolver.
func NewResolver(c client.Reader) *Resolver {
	return &Resolver{client: c}
}

// SecretVersions returns the live resourceVersion of each named Secret in
// namespace. Empty names are skipped. A missing Secret is a reference error.
func (r *Resolver) SecretVersions(ctx context.Context, namespace string, names ...string) (map[string]string, error) {
	versions := make(map[string]string, len(names))

	for _, name := range slices.Compact(slices.Sorted(slices.Values(names))) {
		if name == "" {
			continue
		}

		secret := &corev1.Secret{}

		err := r.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, secret)
		if err != nil {
			return nil, markNotFound(err, "Secret", namespace, name)
		}

		versions[name] = secret.ResourceVersion
	}

	return versions, nil
}

// Cluster returns the GerritCluster a GitGarbageCollection refers to.
func (r *Resolver) Cluster(ctx context.Context, namespace, name string) (*v1alpha1.GerritCluster, error) {
	cluster := &v1alpha1.GerritCluster{}

	err := r.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, cluster)
	if err != nil {
		return nil, markNotFound(err, "GerritCluster", namespace, name)
	}

	return cluster, nil
}

// GitGarbageCollections lists the GitGarbageCollections of a cluster.
func (r *Resolver) GitGarbageCollections(
	ctx context.Context,
	namespace, cluster string,
) ([]v1alpha1.GitGarbageCollection, error) {
	list := &v1alpha1.GitGarbageCollectionList{}

	err := r.client.List(ctx, list, client.InNamespace(namespace))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list GitGarbageCollections in %s", namespace)
	}

	return slices.DeleteFunc(list.Items, func(gc v1alpha1.GitGarbageCollection) bool {
		return gc.Spec.Cluster != cluster
	}), nil
}

func markNotFound(err error, kind, namespace, name string) error {
	wrapped := errors.Wrapf(err, "failed to get %s %s/%s", kind, namespace, name)
	if apierrors.IsNotFound(err) {
		return errors.Mark(wrapped, ErrReferenceNotFound)
	}

	return wrapped
}
