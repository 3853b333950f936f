package workflow

import (
	"maps"
	"slices"

	"github.com/cockroachdb/errors"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/lexfrei/gerrit-operator/internal/names"
)

// prunedMetadata are the metadata maps the operator takes part in.
//
//nolint:gochecknoglobals // constant lookup table
var prunedMetadata = []string{"labels", "annotations"}

// recordLastApplied stores the managed part of rendered in the last-applied
// annotation. Data sections are replaced wholesale on update and are left
// out of the record.
func recordLastApplied(rendered *unstructured.Unstructured) error {
	snapshot := &unstructured.Unstructured{Object: map[string]any{}}

	for section, value := range rendered.Object {
		if section == "metadata" || section == "status" || dataSections.Has(section) {
			continue
		}

		snapshot.Object[section] = value
	}

	metadata := map[string]any{}
	if labels := rendered.GetLabels(); len(labels) > 0 {
		metadata["labels"] = mapOrNil(labels)
	}

	annotations := rendered.GetAnnotations()
	delete(annotations, names.AnnotationLastApplied)

	if len(annotations) > 0 {
		metadata["annotations"] = mapOrNil(annotations)
	}

	snapshot.Object["metadata"] = metadata

	content, err := snapshot.MarshalJSON()
	if err != nil {
		return errors.Wrapf(err, "failed to record last applied state of %s", rendered.GetName())
	}

	if annotations == nil {
		annotations = map[string]string{}
	}

	annotations[names.AnnotationLastApplied] = string(content)
	rendered.SetAnnotations(annotations)

	return nil
}

// lastApplied returns the state recorded by recordLastApplied on live, or
// nil when there is none.
func lastApplied(live *unstructured.Unstructured) map[string]any {
	content, ok := live.GetAnnotations()[names.AnnotationLastApplied]
	if !ok {
		return nil
	}

	snapshot := &unstructured.Unstructured{}

	err := snapshot.UnmarshalJSON([]byte(content))
	if err != nil {
		return nil
	}

	return snapshot.Object
}

// staleFields lists the sections of live holding values that were applied
// before and are no longer desired.
func staleFields(last map[string]any, desired, live *unstructured.Unstructured) []string {
	stale := sets.New[string]()

	for section, previous := range last {
		if ignoredSections.Has(section) || dataSections.Has(section) {
			continue
		}

		if _, pruned := prune(previous, desired.Object[section], live.Object[section]); pruned {
			stale.Insert(section)
		}
	}

	lastMeta, _ := last["metadata"].(map[string]any)
	wantMeta, _ := desired.Object["metadata"].(map[string]any)
	liveMeta, _ := live.Object["metadata"].(map[string]any)

	for _, field := range prunedMetadata {
		if _, pruned := prune(lastMeta[field], wantMeta[field], liveMeta[field]); pruned {
			stale.Insert("metadata." + field)
		}
	}

	return sets.List(stale)
}

// pruneStale removes from obj the values that were applied before and are
// no longer desired.
func pruneStale(last map[string]any, desired, obj *unstructured.Unstructured) {
	for section, previous := range last {
		if ignoredSections.Has(section) || dataSections.Has(section) {
			continue
		}

		if value, pruned := prune(previous, desired.Object[section], obj.Object[section]); pruned {
			obj.Object[section] = value
		}
	}

	lastMeta, _ := last["metadata"].(map[string]any)
	wantMeta, _ := desired.Object["metadata"].(map[string]any)

	objMeta, ok := obj.Object["metadata"].(map[string]any)
	if !ok {
		return
	}

	for _, field := range prunedMetadata {
		if value, pruned := prune(lastMeta[field], wantMeta[field], objMeta[field]); pruned {
			objMeta[field] = value
		}
	}
}

// prune removes from have every key that last set and want no longer sets.
// Values nobody applied, such as server defaults, are kept. Lists are walked
// index by index. The inputs are not modified.
func prune(last, want, have any) (any, bool) {
	switch previous := last.(type) {
	case map[string]any:
		haveMap, ok := have.(map[string]any)
		if !ok {
			return have, false
		}

		wantMap, _ := want.(map[string]any)
		result := haveMap
		pruned := false

		for key, lastValue := range previous {
			haveValue, present := haveMap[key]
			if lastValue == nil || !present || haveValue == nil {
				continue
			}

			wantValue := wantMap[key]

			var value any

			if wantValue != nil {
				var removed bool

				value, removed = prune(lastValue, wantValue, haveValue)
				if !removed {
					continue
				}
			}

			if !pruned {
				result = maps.Clone(haveMap)
				pruned = true
			}

			if wantValue == nil {
				delete(result, key)
			} else {
				result[key] = value
			}
		}

		return result, pruned
	case []any:
		haveList, ok := have.([]any)
		if !ok {
			return have, false
		}

		wantList, _ := want.([]any)
		result := haveList
		pruned := false

		for i := range min(len(previous), len(wantList), len(haveList)) {
			value, removed := prune(previous[i], wantList[i], haveList[i])
			if !removed {
				continue
			}

			if !pruned {
				result = slices.Clone(haveList)
				pruned = true
			}

			result[i] = value
		}

		return result, pruned
	default:
		return have, false
	}
}
