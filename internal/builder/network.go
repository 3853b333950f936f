package builder

import (
	"slices"

	"github.com/lexfrei/gerrit-operator/api/v1alpha1"
	"github.com/lexfrei/gerrit-operator/internal/names"
	"github.com/lexfrei/gerrit-operator/internal/network"
)

// NetworkSpec describes the entrypoint of a cluster from the rendered
// Gerrits and Receiver.
func NetworkSpec(
	cluster *v1alpha1.GerritCluster,
	gerrits []*v1alpha1.Gerrit,
	receiver *v1alpha1.Receiver,
) *network.Spec {
	ingress := &cluster.Spec.Ingress

	spec := &network.Spec{
		Namespace:   cluster.Namespace,
		Name:        cluster.Name,
		Host:        ingress.Host,
		TLS:         ingress.TLS.Enabled,
		TLSSecret:   ingress.TLS.Secret,
		SSH:         ingress.SSH.Enabled,
		Annotations: ingress.Annotations,
		Members:     make([]network.Member, 0, len(gerrits)+1),
	}

	for _, gerrit := range gerrits {
		role := network.RolePrimary
		if gerrit.Spec.GetMode() == v1alpha1.GerritModeReplica {
			role = network.RoleReplica
		}

		spec.Members = append(spec.Members, network.Member{
			Name:        gerrit.Name,
			Role:        role,
			ServiceName: names.GerritService(gerrit.Name),
			HTTPPort:    gerrit.Spec.GetHTTPPort(),
			SSHPort:     gerrit.Spec.Service.SSHPort,
		})
	}

	if receiver != nil {
		spec.Members = append(spec.Members, network.Member{
			Name:        receiver.Name,
			Role:        network.RoleReceiver,
			ServiceName: names.ReceiverService(receiver.Name),
			HTTPPort:    receiver.Spec.GetHTTPPort(),
		})
	}

	return spec
}

// Members groups the member names of a network spec by role.
func Members(spec *network.Spec) map[string][]string {
	members := map[string][]string{}

	for _, member := range spec.Members {
		members[string(member.Role)] = append(members[string(member.Role)], member.Name)
	}

	for role := range members {
		slices.Sort(members[role])
	}

	return members
}
