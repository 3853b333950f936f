package controller

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
)

// SecretMapper maps Secret events to the primaries referencing the Secret.
type SecretMapper struct {
	Client client.Reader
}

// MapSecretToGerrits returns requests for the Gerrits whose secretRef names
// the Secret.
func (m *SecretMapper) MapSecretToGerrits(ctx context.Context, obj client.Object) []reconcile.Request {
	secret, ok := obj.(*corev1.Secret)
	if !ok {
		return nil
	}

	var gerrits v1alpha1.GerritList

	err := m.Client.List(ctx, &gerrits, client.InNamespace(secret.Namespace))
	if err != nil {
		log.FromContext(ctx).Error(err, "Failed to list Gerrits for Secret", "secret", secret.Name)

		return nil
	}

	var requests []reconcile.Request

	for i := range gerrits.Items {
		if gerrits.Items[i].Spec.SecretRef == secret.Name {
			requests = append(requests, requestFor(&gerrits.Items[i]))
		}
	}

	return requests
}

// MapSecretToReceivers returns requests for the Receivers whose credential
// Secret is the given Secret.
func (m *SecretMapper) MapSecretToReceivers(ctx context.Context, obj client.Object) []reconcile.Request {
	secret, ok := obj.(*corev1.Secret)
	if !ok {
		return nil
	}

	var receivers v1alpha1.ReceiverList

	err := m.Client.List(ctx, &receivers, client.InNamespace(secret.Namespace))
	if err != nil {
		log.FromContext(ctx).Error(err, "Failed to list Receivers for Secret", "secret", secret.Name)

		return nil
	}

	var requests []reconcile.Request

	for i := range receivers.Items {
		if receivers.Items[i].Spec.CredentialSecretRef == secret.Name {
			requests = append(requests, requestFor(&receivers.Items[i]))
		}
	}

	return requests
}

// GitGCMapper maps events to the GitGarbageCollections they affect.
type GitGCMapper struct {
	Client client.Reader
}

// MapClusterToGitGCs returns requests for the GitGarbageCollections of a
// GerritCluster.
func (m *GitGCMapper) MapClusterToGitGCs(ctx context.Context, obj client.Object) []reconcile.Request {
	cluster, ok := obj.(*v1alpha1.GerritCluster)
	if !ok {
		return nil
	}

	return m.requestsForCluster(ctx, cluster.Namespace, cluster.Name, "")
}

// MapGitGCToSiblings returns requests for the other GitGarbageCollections
// of the same cluster. Their excluded projects depend on this one.
func (m *GitGCMapper) MapGitGCToSiblings(ctx context.Context, obj client.Object) []reconcile.Request {
	gitgc, ok := obj.(*v1alpha1.GitGarbageCollection)
	if !ok {
		return nil
	}

	return m.requestsForCluster(ctx, gitgc.Namespace, gitgc.Spec.Cluster, gitgc.Name)
}

func (m *GitGCMapper) requestsForCluster(ctx context.Context, namespace, cluster, skip string) []reconcile.Request {
	var gitgcs v1alpha1.GitGarbageCollectionList

	err := m.Client.List(ctx, &gitgcs, client.InNamespace(namespace))
	if err != nil {
		log.FromContext(ctx).Error(err, "Failed to list GitGarbageCollections", "cluster", cluster)

		return nil
	}

	var requests []reconcile.Request

	for i := range gitgcs.Items {
		gitgc := &gitgcs.Items[i]
		if gitgc.Spec.Cluster == cluster && gitgc.Name != skip {
			requests = append(requests, requestFor(gitgc))
		}
	}

	return requests
}

func requestFor(obj client.Object) reconcile.Request {
	return reconcile.Request{NamespacedName: client.ObjectKeyFromObject(obj)}
}
