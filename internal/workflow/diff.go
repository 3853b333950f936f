package workflow

import (
	"maps"
	"reflect"
	"slices"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/sets"
)

// dataSections are compared key by key in both directions and replaced
// wholesale on update, so removed keys are removed from the live object.
//
//nolint:gochecknoglobals // constant lookup table
var dataSections = sets.New("data", "binaryData", "stringData")

// ignoredSections never take part in comparison.
//
//nolint:gochecknoglobals // constant lookup table
var ignoredSections = sets.New("apiVersion", "kind", "metadata", "status")

// changedFields compares desired against live and returns what differs.
// For data sections the differing keys are returned, for other sections the
// section name. Metadata contributes "metadata.labels",
// "metadata.annotations" and "metadata.ownerReferences".
func changedFields(desired, live *unstructured.Unstructured) []string {
	changed := sets.New[string]()

	for section, want := range desired.Object {
		if ignoredSections.Has(section) {
			continue
		}

		if dataSections.Has(section) {
			continue
		}

		if !covers(want, live.Object[section]) {
			changed.Insert(section)
		}
	}

	changed.Insert(changedData(desired, live)...)

	if !covers(mapOrNil(desired.GetLabels()), mapOrNil(live.GetLabels())) {
		changed.Insert("metadata.labels")
	}

	if !covers(mapOrNil(desired.GetAnnotations()), mapOrNil(live.GetAnnotations())) {
		changed.Insert("metadata.annotations")
	}

	if !ownerReferencesPresent(desired, live) {
		changed.Insert("metadata.ownerReferences")
	}

	return sets.List(changed)
}

// changedData returns the data keys that differ between desired and live,
// in both directions.
func changedData(desired, live *unstructured.Unstructured) []string {
	changed := sets.New[string]()

	for section := range dataSections {
		changed.Insert(changedDataKeys(desired.Object[section], live.Object[section])...)
	}

	return sets.List(changed)
}

// dataKeys returns every key of the data sections of obj.
func dataKeys(obj *unstructured.Unstructured) []string {
	keys := sets.New[string]()

	for section := range dataSections {
		if values, ok := obj.Object[section].(map[string]any); ok {
			keys.Insert(slices.Collect(maps.Keys(values))...)
		}
	}

	return sets.List(keys)
}

func changedDataKeys(want, have any) []string {
	wantMap, _ := want.(map[string]any)
	haveMap, _ := have.(map[string]any)

	var changed []string

	for key := range sets.KeySet(wantMap).Union(sets.KeySet(haveMap)) {
		wantValue, inWant := wantMap[key]
		haveValue, inHave := haveMap[key]

		if inWant != inHave || !reflect.DeepEqual(wantValue, haveValue) {
			changed = append(changed, key)
		}
	}

	return changed
}

// covers reports whether every value set in want is present and equal in
// have. Nil values and empty maps in want are not compared. Lists must have
// the same length and every element must be covered.
func covers(want, have any) bool {
	switch typed := want.(type) {
	case nil:
		return true
	case map[string]any:
		if len(typed) == 0 {
			return true
		}

		haveMap, ok := have.(map[string]any)
		if !ok {
			return false
		}

		for key, value := range typed {
			if !covers(value, haveMap[key]) {
				return false
			}
		}

		return true
	case []any:
		haveList, ok := have.([]any)
		if !ok {
			return len(typed) == 0 && have == nil
		}

		if len(typed) != len(haveList) {
			return false
		}

		for i := range typed {
			if !covers(typed[i], haveList[i]) {
				return false
			}
		}

		return true
	default:
		return scalarEqual(want, have)
	}
}

// overlay writes want into have. Maps are merged recursively, lists are
// replaced while keeping the fields of matching live elements, and data
// sections are replaced wholesale.
func overlay(want, have *unstructured.Unstructured) {
	for section, value := range want.Object {
		switch {
		case section == "metadata" || section == "status":
			continue
		case dataSections.Has(section):
			have.Object[section] = value
		default:
			have.Object[section] = overlayValue(value, have.Object[section])
		}
	}

	for section := range dataSections {
		if _, declared := want.Object[section]; !declared {
			delete(have.Object, section)
		}
	}

	labels := have.GetLabels()
	if labels == nil {
		labels = map[string]string{}
	}

	maps.Copy(labels, want.GetLabels())
	have.SetLabels(labels)

	if len(want.GetAnnotations()) > 0 {
		annotations := have.GetAnnotations()
		if annotations == nil {
			annotations = map[string]string{}
		}

		maps.Copy(annotations, want.GetAnnotations())
		have.SetAnnotations(annotations)
	}

	refs := have.GetOwnerReferences()
	for _, ref := range want.GetOwnerReferences() {
		if !slices.ContainsFunc(refs, func(existing metav1.OwnerReference) bool { return existing.UID == ref.UID }) {
			refs = append(refs, ref)
		}
	}

	have.SetOwnerReferences(refs)
}

func overlayValue(want, have any) any {
	switch typed := want.(type) {
	case nil:
		return have
	case map[string]any:
		haveMap, ok := have.(map[string]any)
		if !ok {
			return typed
		}

		merged := make(map[string]any, len(haveMap))
		maps.Copy(merged, haveMap)

		for key, value := range typed {
			merged[key] = overlayValue(value, haveMap[key])
		}

		return merged
	case []any:
		haveList, _ := have.([]any)
		merged := make([]any, len(typed))

		for i, value := range typed {
			var existing any
			if i < len(haveList) {
				existing = haveList[i]
			}

			merged[i] = overlayValue(value, existing)
		}

		return merged
	default:
		return want
	}
}

func ownerReferencesPresent(desired, live *unstructured.Unstructured) bool {
	liveRefs := live.GetOwnerReferences()

	for _, ref := range desired.GetOwnerReferences() {
		found := slices.ContainsFunc(liveRefs, func(existing metav1.OwnerReference) bool {
			return existing.UID == ref.UID && existing.Kind == ref.Kind && existing.Name == ref.Name
		})
		if !found {
			return false
		}
	}

	return true
}

func scalarEqual(want, have any) bool {
	wantNumber, wantIsNumber := toFloat(want)
	haveNumber, haveIsNumber := toFloat(have)

	if wantIsNumber && haveIsNumber {
		return wantNumber == haveNumber
	}

	return reflect.DeepEqual(want, have)
}

func toFloat(value any) (float64, bool) {
	switch number := value.(type) {
	case int:
		return float64(number), true
	case int32:
		return float64(number), true
	case int64:
		return float64(number), true
	case float64:
		return number, true
	default:
		return 0, false
	}
}

func mapOrNil(values map[string]string) any {
	if len(values) == 0 {
		return nil
	}

	result := make(map[string]any, len(values))
	for key, value := range values {
		result[key] = value
	}

	return result
}
