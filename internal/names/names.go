// Package names derives object names and labels from the identity of the
// primary resource that owns them.
//
// Every name is a pure function of the owner's name, so two primaries can
// never compute colliding children unless their own names collide.
package names

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	// maxLabelValueLength is the Kubernetes limit for label values.
	maxLabelValueLength = 63

	// hashLength is the number of hex characters appended to truncated values.
	hashLength = 8

	// truncationMark separates a truncated value from its hash.
	truncationMark = "---"
)

// Labels stamped on every object the operator manages.
const (
	LabelManagedBy = "app.kubernetes.io/managed-by"
	LabelName      = "app.kubernetes.io/name"
	LabelInstance  = "app.kubernetes.io/instance"
	LabelComponent = "app.kubernetes.io/component"
	LabelPartOf    = "app.kubernetes.io/part-of"

	LabelOwnerKind = "gerrit.k8s.lex.la/owner-kind"
	LabelOwnerName = "gerrit.k8s.lex.la/owner-name"
	LabelNode      = "gerrit.k8s.lex.la/node"

	ManagedByValue = "gerrit-operator"
	AppName        = "gerrit"
)

// Annotations written by the operator.
const (
	AnnotationRestartTrigger = "gerrit.k8s.lex.la/restart-trigger"
	AnnotationLastApplied    = "gerrit.k8s.lex.la/last-applied"
)

// Component label values.
const (
	ComponentGerrit   = "gerrit"
	ComponentReceiver = "receiver"
	ComponentGitGC    = "git-gc"
	ComponentStorage  = "storage"
	ComponentNetwork  = "network"
)

// LabelValue returns s unchanged when it is a valid label value length,
// otherwise a truncated prefix followed by a hash of the full value.
func LabelValue(s string) string {
	if len(s) <= maxLabelValueLength {
		return s
	}

	sum := sha256.Sum256([]byte(s))
	hash := hex.EncodeToString(sum[:])[:hashLength]
	prefix := strings.TrimRight(s[:maxLabelValueLength-hashLength-len(truncationMark)], "-.")

	return prefix + truncationMark + hash
}

// SelectorLabels are the immutable labels used in workload pod selectors.
func SelectorLabels(component, instance string) map[string]string {
	return map[string]string{
		LabelName:      AppName,
		LabelInstance:  LabelValue(instance),
		LabelComponent: component,
	}
}

// ComponentLabels extends SelectorLabels with the informational labels set
// on every object of a component.
func ComponentLabels(component, instance, partOf string) map[string]string {
	labels := SelectorLabels(component, instance)
	labels[LabelManagedBy] = ManagedByValue

	if partOf != "" {
		labels[LabelPartOf] = LabelValue(partOf)
	}

	return labels
}

// SharedStorage names the ReadWriteMany claim shared by a cluster.
func SharedStorage(cluster string) string {
	return cluster + "-shared-storage"
}

// PluginCache names the claim caching downloaded plugins.
func PluginCache(cluster string) string {
	return cluster + "-plugin-cache"
}

// GerritConfigMap names the ConfigMap holding gerrit.config and plugin configs.
func GerritConfigMap(gerrit string) string {
	return gerrit + "-configmap"
}

// GerritInitConfigMap names the ConfigMap read by the init container.
func GerritInitConfigMap(gerrit string) string {
	return gerrit + "-init-configmap"
}

// GerritService names the Service exposing Gerrit's HTTP and SSH ports.
func GerritService(gerrit string) string {
	return gerrit + "-service"
}

// GerritHeadlessService names the governing Service of the StatefulSet.
func GerritHeadlessService(gerrit string) string {
	return gerrit
}

// GerritStatefulSet names the Gerrit workload.
func GerritStatefulSet(gerrit string) string {
	return gerrit
}

// ReceiverDeployment names the receiver workload.
func ReceiverDeployment(receiver string) string {
	return receiver
}

// ReceiverService names the Service exposing the receiver.
func ReceiverService(receiver string) string {
	return receiver + "-service"
}

// GitGCCronJob names the CronJob of a GitGarbageCollection.
func GitGCCronJob(gitgc string) string {
	return gitgc
}

// Entrypoint names the network objects created for a cluster.
func Entrypoint(cluster, suffix string) string {
	if suffix == "" {
		return cluster + "-entrypoint"
	}

	return cluster + "-" + suffix
}
