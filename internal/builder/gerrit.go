package builder

import (
	"maps"

	"github.com/cockroachdb/errors"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/config"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

// Volume and port names of the Gerrit pod.
const (
	volumeShared      = "shared"
	volumeSite        = "gerrit-site"
	volumeConfig      = "gerrit-config"
	volumeInitConfig  = "gerrit-init-config"
	volumeSecret      = "gerrit-secure-config"
	volumePluginCache = "gerrit-plugin-cache"

	portHTTP  = "http"
	portSSH   = "ssh"
	portDebug = "debug"

	healthcheckPath = "/config/server/healthcheck~status"

	gerritFSGroup int64 = 100
)

// GerritConfigMap builds the ConfigMap holding gerrit.config and the other
// configuration files of a Gerrit.
func GerritConfigMap(gerrit *v1alpha1.Gerrit, cfg *config.OperatorConfig) (*corev1.ConfigMap, error) {
	data := maps.Clone(gerrit.Spec.ConfigFiles)
	if data == nil {
		data = map[string]string{}
	}

	rendered, err := GerritConfig(gerrit, cfg)
	if err != nil {
		return nil, err
	}

	data[KeyGerritConfig] = rendered

	if _, ok := data[KeyHealthcheckConfig]; !ok {
		data[KeyHealthcheckConfig] = defaultHealthcheckConfig
	}

	if isHighAvailability(gerrit, cfg) {
		haConfig, err := highAvailabilityConfig(gerrit)
		if err != nil {
			return nil, err
		}

		data[KeyHighAvailabilityConfig] = haConfig
	}

	return &corev1.ConfigMap{
		ObjectMeta: objectMeta(names.GerritConfigMap(gerrit.Name), names.ComponentGerrit, gerrit),
		Data:       data,
	}, nil
}

// GerritInitConfigMap builds the ConfigMap read by the init container. The
// canonical URL is taken from the rendered gerrit.config so both agree.
func GerritInitConfigMap(
	gerrit *v1alpha1.Gerrit,
	cfg *config.OperatorConfig,
	configMap *corev1.ConfigMap,
) (*corev1.ConfigMap, error) {
	if configMap == nil {
		return nil, errors.New("gerrit configmap has not been rendered")
	}

	url, err := ReadCanonicalWebURL(configMap.Data[KeyGerritConfig])
	if err != nil {
		return nil, err
	}

	initConfig, err := GerritInitConfig(gerrit, cfg, url)
	if err != nil {
		return nil, err
	}

	return &corev1.ConfigMap{
		ObjectMeta: objectMeta(names.GerritInitConfigMap(gerrit.Name), names.ComponentGerrit, gerrit),
		Data:       map[string]string{KeyGerritInitConfig: initConfig},
	}, nil
}

// GerritService builds the Service exposing a Gerrit.
func GerritService(gerrit *v1alpha1.Gerrit) *corev1.Service {
	ports := []corev1.ServicePort{{
		Name:       portHTTP,
		Port:       gerrit.Spec.GetHTTPPort(),
		TargetPort: intstr.FromString(portHTTP),
		Protocol:   corev1.ProtocolTCP,
	}}

	if gerrit.Spec.Service.SSHPort > 0 {
		ports = append(ports, corev1.ServicePort{
			Name:       portSSH,
			Port:       gerrit.Spec.Service.SSHPort,
			TargetPort: intstr.FromString(portSSH),
			Protocol:   corev1.ProtocolTCP,
		})
	}

	return &corev1.Service{
		ObjectMeta: objectMeta(names.GerritService(gerrit.Name), names.ComponentGerrit, gerrit),
		Spec: corev1.ServiceSpec{
			Type:     gerrit.Spec.GetServiceType(),
			Selector: names.SelectorLabels(names.ComponentGerrit, gerrit.Name),
			Ports:    ports,
		},
	}
}

// GerritHeadlessService builds the governing Service of the StatefulSet.
func GerritHeadlessService(gerrit *v1alpha1.Gerrit) *corev1.Service {
	return &corev1.Service{
		ObjectMeta: objectMeta(names.GerritHeadlessService(gerrit.Name), names.ComponentGerrit, gerrit),
		Spec: corev1.ServiceSpec{
			ClusterIP:                corev1.ClusterIPNone,
			PublishNotReadyAddresses: true,
			Selector:                 names.SelectorLabels(names.ComponentGerrit, gerrit.Name),
			Ports: []corev1.ServicePort{{
				Name:       portHTTP,
				Port:       v1alpha1.DefaultHTTPPort,
				TargetPort: intstr.FromString(portHTTP),
				Protocol:   corev1.ProtocolTCP,
			}},
		},
	}
}

// GerritStatefulSet builds the Gerrit workload.
//
//nolint:funlen // pod template layout
func GerritStatefulSet(gerrit *v1alpha1.Gerrit) *appsv1.StatefulSet {
	images := &gerrit.Spec.ContainerImages
	selector := names.SelectorLabels(names.ComponentGerrit, gerrit.Name)
	meta := objectMeta(names.GerritStatefulSet(gerrit.Name), names.ComponentGerrit, gerrit)

	return &appsv1.StatefulSet{
		ObjectMeta: meta,
		Spec: appsv1.StatefulSetSpec{
			ServiceName:         names.GerritHeadlessService(gerrit.Name),
			Replicas:            ptr.To(gerrit.Spec.GetReplicas()),
			PodManagementPolicy: appsv1.ParallelPodManagement,
			Selector:            &metav1.LabelSelector{MatchLabels: selector},
			UpdateStrategy: appsv1.StatefulSetUpdateStrategy{
				Type: appsv1.RollingUpdateStatefulSetStrategyType,
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: meta.Labels},
				Spec: corev1.PodSpec{
					ImagePullSecrets: images.ImagePullSecrets,
					SecurityContext:  &corev1.PodSecurityContext{FSGroup: ptr.To(gerritFSGroup)},
					InitContainers: []corev1.Container{{
						Name:            "gerrit-init",
						Image:           images.Image("gerrit-init"),
						ImagePullPolicy: images.GetImagePullPolicy(),
						VolumeMounts:    gerritVolumeMounts(gerrit, true),
					}},
					Containers: []corev1.Container{{
						Name:            "gerrit",
						Image:           images.Image("gerrit"),
						ImagePullPolicy: images.GetImagePullPolicy(),
						Ports:           gerritContainerPorts(gerrit),
						Resources:       gerrit.Spec.Resources,
						ReadinessProbe:  healthcheckProbe(),
						LivenessProbe:   healthcheckProbe(),
						VolumeMounts:    gerritVolumeMounts(gerrit, false),
					}},
					Volumes: gerritVolumes(gerrit),
				},
			},
			VolumeClaimTemplates: []corev1.PersistentVolumeClaim{{
				ObjectMeta: metav1.ObjectMeta{Name: volumeSite, Labels: selector},
				Spec: corev1.PersistentVolumeClaimSpec{
					AccessModes:      []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
					StorageClassName: ptr.To(gerrit.Spec.Storage.GetReadWriteOnceClass()),
					Resources: corev1.VolumeResourceRequirements{
						Requests: corev1.ResourceList{corev1.ResourceStorage: gerrit.Spec.GetSiteSize()},
					},
				},
			}},
		},
	}
}

func gerritContainerPorts(gerrit *v1alpha1.Gerrit) []corev1.ContainerPort {
	ports := []corev1.ContainerPort{{Name: portHTTP, ContainerPort: v1alpha1.DefaultHTTPPort}}

	if gerrit.Spec.Service.SSHPort > 0 {
		ports = append(ports, corev1.ContainerPort{Name: portSSH, ContainerPort: v1alpha1.DefaultSSHPort})
	}

	if gerrit.Spec.Debug.Enabled {
		ports = append(ports, corev1.ContainerPort{Name: portDebug, ContainerPort: debugPort})
	}

	return ports
}

func healthcheckProbe() *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: healthcheckPath,
				Port: intstr.FromString(portHTTP),
			},
		},
		InitialDelaySeconds: 10,
		PeriodSeconds:       10,
	}
}

func gerritVolumes(gerrit *v1alpha1.Gerrit) []corev1.Volume {
	cluster := ClusterOf(gerrit)

	volumes := []corev1.Volume{
		claimVolume(volumeShared, names.SharedStorage(cluster)),
		configMapVolume(volumeConfig, names.GerritConfigMap(gerrit.Name)),
		configMapVolume(volumeInitConfig, names.GerritInitConfigMap(gerrit.Name)),
	}

	if gerrit.Spec.SecretRef != "" {
		volumes = append(volumes, corev1.Volume{
			Name: volumeSecret,
			VolumeSource: corev1.VolumeSource{
				Secret: &corev1.SecretVolumeSource{SecretName: gerrit.Spec.SecretRef},
			},
		})
	}

	if gerrit.Spec.Storage.PluginCache.Enabled {
		volumes = append(volumes, claimVolume(volumePluginCache, names.PluginCache(cluster)))
	}

	return volumes
}

func gerritVolumeMounts(gerrit *v1alpha1.Gerrit, initContainer bool) []corev1.VolumeMount {
	mounts := []corev1.VolumeMount{
		{Name: volumeSite, MountPath: sitePath},
		{Name: volumeShared, MountPath: sitePath + "/git", SubPath: "git"},
		{Name: volumeConfig, MountPath: configMountPath},
	}

	if isSharedSite(gerrit) {
		mounts = append(mounts, corev1.VolumeMount{Name: volumeShared, MountPath: sitePath + "/shared", SubPath: "shared"})
	}

	if gerrit.Spec.SecretRef != "" {
		mounts = append(mounts, corev1.VolumeMount{Name: volumeSecret, MountPath: secretMountPath, ReadOnly: true})
	}

	if initContainer {
		mounts = append(mounts, corev1.VolumeMount{Name: volumeInitConfig, MountPath: initConfigPath})

		if gerrit.Spec.Storage.PluginCache.Enabled {
			mounts = append(mounts, corev1.VolumeMount{Name: volumePluginCache, MountPath: pluginCachePath})
		}
	}

	return mounts
}

// isSharedSite reports whether several primary pods share site data.
func isSharedSite(gerrit *v1alpha1.Gerrit) bool {
	return gerrit.Spec.GetMode() == v1alpha1.GerritModePrimary && gerrit.Spec.GetReplicas() > 1
}

func claimVolume(name, claim string) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{ClaimName: claim},
		},
	}
}

func configMapVolume(name, configMap string) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: configMap},
			},
		},
	}
}
