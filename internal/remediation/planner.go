// Package remediation decides and performs the side effects that follow an
// apply: a rolling restart of the workload, a reload of changed plugin
// configuration, or nothing.
package remediation

import (
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/lexfrei/gerrit-operator/internal/workflow"
)

// Canonical configuration keys.
const (
	KeyGerritConfig     = "gerrit.config"
	KeyGerritInitConfig = "gerrit-init.yaml"
)

// ActionKind tells what remediation is needed.
type ActionKind string

const (
	ActionNone           ActionKind = "None"
	ActionRollingRestart ActionKind = "RollingRestart"
	ActionReloadKeys     ActionKind = "ReloadKeys"
)

// Action is the outcome of planning.
type Action struct {
	Kind ActionKind

	// Keys are the configuration keys to reload. Set for ActionReloadKeys.
	Keys []string

	// Reason explains the decision for logs and events.
	Reason string
}

// None is the empty action.
func None() Action {
	return Action{Kind: ActionNone}
}

// Planner maps workflow results to remediation actions. The zero value
// restarts on gerrit.config changes only.
type Planner struct {
	// RestartKeys are the configuration keys whose change requires a restart.
	RestartKeys []string

	// ConfigNodes restricts inspection to ConfigMaps of these nodes. Empty
	// means every ConfigMap outcome.
	ConfigNodes []string
}

// Input is everything Plan looks at.
type Input struct {
	Result *workflow.Result

	// AppliedSecretVersions is the baseline stored in the primary's status.
	AppliedSecretVersions map[string]string

	// LiveSecretVersions are the current versions of the referenced Secrets.
	LiveSecretVersions map[string]string
}

// Plan decides the remediation for one reconcile. It performs no I/O.
//
// A change to a restart key in a created or updated ConfigMap wins over any
// other change. Other changed data keys are reloaded. Metadata changes of a
// ConfigMap are ignored. Without configuration
// changes, a referenced Secret whose version differs from the stored
// baseline triggers a restart. Secrets without a baseline only establish one.
func (p *Planner) Plan(in Input) Action {
	restartKeys := sets.New(p.RestartKeys...)
	if restartKeys.Len() == 0 {
		restartKeys.Insert(KeyGerritConfig)
	}

	reload := sets.New[string]()

	if in.Result != nil {
		for _, outcome := range in.Result.OfKind("ConfigMap") {
			if !outcome.Changed() || !p.inspects(outcome.NodeID) {
				continue
			}

			if changed := restartKeys.Intersection(sets.New(outcome.ChangedData...)); changed.Len() > 0 {
				return Action{
					Kind:   ActionRollingRestart,
					Reason: "configuration changed: " + strings.Join(sets.List(changed), ", "),
				}
			}

			reload.Insert(outcome.ChangedData...)
		}
	}

	if reload.Len() > 0 {
		keys := sets.List(reload)

		return Action{
			Kind:   ActionReloadKeys,
			Keys:   keys,
			Reason: "plugin configuration changed: " + strings.Join(keys, ", "),
		}
	}

	var rotated []string

	for name, live := range in.LiveSecretVersions {
		applied, ok := in.AppliedSecretVersions[name]
		if ok && applied != live {
			rotated = append(rotated, name)
		}
	}

	if len(rotated) > 0 {
		slices.Sort(rotated)

		return Action{
			Kind:   ActionRollingRestart,
			Reason: "secret changed: " + strings.Join(rotated, ", "),
		}
	}

	return None()
}

func (p *Planner) inspects(nodeID string) bool {
	return len(p.ConfigNodes) == 0 || slices.Contains(p.ConfigNodes, nodeID)
}

// PluginForKey returns the plugin whose configuration is stored under key.
func PluginForKey(key string) string {
	return strings.TrimSuffix(key, ".config")
}
