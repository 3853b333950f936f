package network

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
)

// ErrInvalidTopology is returned when the members of a cluster cannot be
// routed unambiguously.
var ErrInvalidTopology = errors.New("invalid network topology")

// Role is the part a member plays in the cluster.
type Role string

const (
	RolePrimary  Role = "primary"
	RoleReplica  Role = "replica"
	RoleReceiver Role = "receiver"
)

// Member is one routable component of a cluster.
type Member struct {
	Name string
	Role Role

	// ServiceName is the Service fronting the member.
	ServiceName string

	HTTPPort int32

	// SSHPort is zero when the member serves no SSH.
	SSHPort int32
}

// Spec is the canonical network description of one cluster.
type Spec struct {
	Namespace string

	// Name is the cluster name. Entrypoint objects are named after it.
	Name string

	Host string

	TLS       bool
	TLSSecret string

	// SSH enables per-member SSH routing.
	SSH bool

	// Annotations are copied onto the entrypoint objects.
	Annotations map[string]string

	Members []Member
}

// Route priorities. Higher values are matched first.
const (
	priorityDefault  = 0
	priorityGitRead  = 10
	priorityReceiver = 20
)

// Route is one HTTP routing rule.
type Route struct {
	// Name identifies the rule within the cluster.
	Name string

	// PathRegex is an anchored regular expression on the request path.
	// Empty means any path.
	PathRegex string

	// Query restricts the rule to requests carrying these exact query
	// parameter values.
	Query map[string]string

	// Method restricts the rule to one HTTP method. Empty means any.
	Method string

	Priority int

	Backend Member
}

// IsDefault reports whether the route matches every request.
func (r *Route) IsDefault() bool {
	return r.PathRegex == "" && len(r.Query) == 0 && r.Method == ""
}

// SSHRoute forwards one TCP port to a member.
type SSHRoute struct {
	Port    int32
	Backend Member
}

// Routes returns the HTTP routing table of spec, most specific first.
func Routes(spec *Spec) ([]Route, error) {
	primary, replica, receiver, err := pickMembers(spec.Members)
	if err != nil {
		return nil, err
	}

	var routes []Route

	if receiver != nil {
		for _, path := range []struct{ name, regex string }{
			{"receiver-projects", `^/a/projects/.*`},
			{"receiver-new", `^/new/.*`},
			{"receiver-git", `^/git/.*`},
		} {
			routes = append(routes, Route{
				Name:      path.name,
				PathRegex: path.regex,
				Priority:  priorityReceiver,
				Backend:   *receiver,
			})
		}
	}

	if replica != nil && primary != nil {
		routes = append(routes,
			Route{
				Name:      "git-upload-pack-refs",
				PathRegex: `^/(a/)?.*/info/refs$`,
				Query:     map[string]string{"service": "git-upload-pack"},
				Priority:  priorityGitRead,
				Backend:   *replica,
			},
			Route{
				Name:      "git-upload-pack",
				PathRegex: `^/(a/)?.*/git-upload-pack$`,
				Method:    "POST",
				Priority:  priorityGitRead,
				Backend:   *replica,
			},
		)
	}

	if def := cmp.Or(primary, replica); def != nil {
		routes = append(routes, Route{
			Name:     "default",
			Priority: priorityDefault,
			Backend:  *def,
		})
	}

	sortRoutes(routes)

	return routes, nil
}

// SSHRoutes returns one route per SSH-serving member ordered by port.
// It returns nothing when SSH is disabled for the cluster.
func SSHRoutes(spec *Spec) ([]SSHRoute, error) {
	if !spec.SSH {
		return nil, nil
	}

	byPort := make(map[int32]Member)

	for _, member := range spec.Members {
		if member.SSHPort == 0 {
			continue
		}

		if other, ok := byPort[member.SSHPort]; ok {
			return nil, errors.Wrapf(ErrInvalidTopology, "members %s and %s share SSH port %d",
				other.Name, member.Name, member.SSHPort)
		}

		byPort[member.SSHPort] = member
	}

	routes := make([]SSHRoute, 0, len(byPort))
	for port, member := range byPort {
		routes = append(routes, SSHRoute{Port: port, Backend: member})
	}

	slices.SortFunc(routes, func(a, b SSHRoute) int {
		return cmp.Compare(a.Port, b.Port)
	})

	return routes, nil
}

// pickMembers selects the member serving each role. The first replica by
// name serves reads when there are several.
func pickMembers(members []Member) (primary, replica, receiver *Member, err error) {
	sorted := slices.Clone(members)
	slices.SortFunc(sorted, func(a, b Member) int {
		return cmp.Compare(a.Name, b.Name)
	})

	for i := range sorted {
		member := &sorted[i]

		switch member.Role {
		case RolePrimary:
			if primary != nil {
				return nil, nil, nil, errors.Wrapf(ErrInvalidTopology, "more than one primary: %s, %s",
					primary.Name, member.Name)
			}

			primary = member
		case RoleReplica:
			if replica == nil {
				replica = member
			}
		case RoleReceiver:
			if receiver != nil {
				return nil, nil, nil, errors.Wrapf(ErrInvalidTopology, "more than one receiver: %s, %s",
					receiver.Name, member.Name)
			}

			receiver = member
		default:
			return nil, nil, nil, errors.Wrapf(ErrInvalidTopology, "member %s has unknown role %q",
				member.Name, member.Role)
		}
	}

	return primary, replica, receiver, nil
}

// sortRoutes orders routes by priority, then by path length, then by name.
func sortRoutes(routes []Route) {
	slices.SortStableFunc(routes, func(a, b Route) int {
		if a.Priority != b.Priority {
			return cmp.Compare(b.Priority, a.Priority)
		}

		if len(a.PathRegex) != len(b.PathRegex) {
			return cmp.Compare(len(b.PathRegex), len(a.PathRegex))
		}

		return cmp.Compare(a.Name, b.Name)
	})
}

// serviceHost is the cluster-internal DNS name of a member's Service.
func serviceHost(spec *Spec, member *Member, clusterDomain string) string {
	return fmt.Sprintf("%s.%s.svc.%s", member.ServiceName, spec.Namespace, clusterDomain)
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
