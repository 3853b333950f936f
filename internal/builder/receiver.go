package builder

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

const (
	receiverImage     = "apache-git-http-backend"
	receiverPort      = 80
	volumeCredentials = "receiver-credentials"
	credentialsPath   = "/var/apache/credentials"
	receiverGitPath   = "/var/gerrit/git"
)

// ReceiverDeployment builds the receiver workload.
func ReceiverDeployment(receiver *v1alpha1.Receiver) *appsv1.Deployment {
	images := &receiver.Spec.ContainerImages
	selector := names.SelectorLabels(names.ComponentReceiver, receiver.Name)
	meta := objectMeta(names.ReceiverDeployment(receiver.Name), names.ComponentReceiver, receiver)

	return &appsv1.Deployment{
		ObjectMeta: meta,
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(receiver.Spec.GetReplicas()),
			Selector: &metav1.LabelSelector{MatchLabels: selector},
			Strategy: appsv1.DeploymentStrategy{Type: appsv1.RollingUpdateDeploymentStrategyType},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: meta.Labels},
				Spec: corev1.PodSpec{
					ImagePullSecrets: images.ImagePullSecrets,
					SecurityContext:  &corev1.PodSecurityContext{FSGroup: ptr.To(gerritFSGroup)},
					Containers: []corev1.Container{{
						Name:            names.ComponentReceiver,
						Image:           images.Image(receiverImage),
						ImagePullPolicy: images.GetImagePullPolicy(),
						Ports:           []corev1.ContainerPort{{Name: portHTTP, ContainerPort: receiverPort}},
						Resources:       receiver.Spec.Resources,
						ReadinessProbe: &corev1.Probe{
							ProbeHandler: corev1.ProbeHandler{
								TCPSocket: &corev1.TCPSocketAction{Port: intstr.FromString(portHTTP)},
							},
						},
						VolumeMounts: []corev1.VolumeMount{
							{Name: volumeShared, MountPath: receiverGitPath, SubPath: "git"},
							{Name: volumeCredentials, MountPath: credentialsPath, ReadOnly: true},
						},
					}},
					Volumes: []corev1.Volume{
						claimVolume(volumeShared, names.SharedStorage(ClusterOf(receiver))),
						{
							Name: volumeCredentials,
							VolumeSource: corev1.VolumeSource{
								Secret: &corev1.SecretVolumeSource{SecretName: receiver.Spec.CredentialSecretRef},
							},
						},
					},
				},
			},
		},
	}
}

// ReceiverService builds the Service exposing the receiver.
func ReceiverService(receiver *v1alpha1.Receiver) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: objectMeta(names.ReceiverService(receiver.Name), names.ComponentReceiver, receiver),
		Spec: corev1.ServiceSpec{
			Type:     receiver.Spec.GetServiceType(),
			Selector: names.SelectorLabels(names.ComponentReceiver, receiver.Name),
			Ports: []corev1.ServicePort{{
				Name:       portHTTP,
				Port:       receiver.Spec.GetHTTPPort(),
				TargetPort: intstr.FromString(portHTTP),
				Protocol:   corev1.ProtocolTCP,
			}},
		},
	}
}
