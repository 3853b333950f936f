package builder

import (
	"slices"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/ptr"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/names"
)

const (
	gitGCImage           = "git-gc"
	gitGCHistoryLimit    = 3
	gitGCBackoffLimit    = 1
	gitGCLogsPath        = "/var/log/git"
	volumeGitGCLogs      = "logs"
	volumeGitGCTemporary = "tmp"
)

// ExcludedProjects returns the projects a GitGarbageCollection that collects
// everything must skip because other collections of the cluster claim them.
// Collections with an explicit project list exclude nothing.
func ExcludedProjects(gitgc *v1alpha1.GitGarbageCollection, siblings []v1alpha1.GitGarbageCollection) []string {
	if !gitgc.IsCollectingAll() {
		return nil
	}

	claimed := sets.New[string]()

	for i := range siblings {
		sibling := &siblings[i]
		if sibling.Name == gitgc.Name || sibling.Spec.Cluster != gitgc.Spec.Cluster {
			continue
		}

		claimed.Insert(sibling.Spec.Projects...)
	}

	return sets.List(claimed)
}

// GitGCArgs returns the arguments of the git-gc container.
func GitGCArgs(projects, excluded []string) []string {
	args := make([]string, 0, 2*(len(projects)+len(excluded)))

	for _, project := range slices.Sorted(slices.Values(projects)) {
		args = append(args, "-p", project)
	}

	for _, project := range excluded {
		args = append(args, "-s", project)
	}

	return args
}

// GitGCCronJob builds the CronJob running git gc on the shared storage of
// cluster.
func GitGCCronJob(
	gitgc *v1alpha1.GitGarbageCollection,
	cluster *v1alpha1.GerritCluster,
	excluded []string,
) *batchv1.CronJob {
	images := &cluster.Spec.ContainerImages
	meta := objectMeta(names.GitGCCronJob(gitgc.Name), names.ComponentGitGC, gitgc)
	meta.Labels[names.LabelPartOf] = names.LabelValue(cluster.Name)

	emptyDir := corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}}

	return &batchv1.CronJob{
		ObjectMeta: meta,
		Spec: batchv1.CronJobSpec{
			Schedule:                   gitgc.Spec.Schedule,
			ConcurrencyPolicy:          batchv1.ForbidConcurrent,
			SuccessfulJobsHistoryLimit: ptr.To[int32](gitGCHistoryLimit),
			FailedJobsHistoryLimit:     ptr.To[int32](gitGCHistoryLimit),
			JobTemplate: batchv1.JobTemplateSpec{
				Spec: batchv1.JobSpec{
					BackoffLimit: ptr.To[int32](gitGCBackoffLimit),
					Template: corev1.PodTemplateSpec{
						ObjectMeta: metav1.ObjectMeta{Labels: meta.Labels},
						Spec: corev1.PodSpec{
							RestartPolicy:    corev1.RestartPolicyOnFailure,
							ImagePullSecrets: images.ImagePullSecrets,
							SecurityContext:  &corev1.PodSecurityContext{FSGroup: ptr.To(gerritFSGroup)},
							Containers: []corev1.Container{{
								Name:            gitGCImage,
								Image:           images.Image(gitGCImage),
								ImagePullPolicy: images.GetImagePullPolicy(),
								Args:            GitGCArgs(gitgc.Spec.Projects, excluded),
								Resources:       gitgc.Spec.Resources,
								VolumeMounts: []corev1.VolumeMount{
									{Name: volumeShared, MountPath: receiverGitPath, SubPath: "git"},
									{Name: volumeGitGCLogs, MountPath: gitGCLogsPath},
									{Name: volumeGitGCTemporary, MountPath: "/tmp"},
								},
							}},
							Volumes: []corev1.Volume{
								claimVolume(volumeShared, names.SharedStorage(cluster.Name)),
								{Name: volumeGitGCLogs, VolumeSource: emptyDir},
								{Name: volumeGitGCTemporary, VolumeSource: emptyDir},
							},
						},
					},
				},
			},
		},
	}
}
