package merge

// Merge applies patch onto target and returns the result.
// Neither argument is modified, and the result shares no mutable state with patch.
func Merge(target, patch any) any {
	patchObject, ok := patch.(map[string]any)
	if !ok {
		return clone(patch)
	}

	targetObject, _ := target.(map[string]any)

	result := make(map[string]any, len(targetObject)+len(patchObject))
	for key, value := range targetObject {
		result[key] = value
	}

	for key, patchValue := range patchObject {
		// Explicit null is a tombstone.
		if patchValue == nil {
			delete(result, key)
			continue
		}

		result[key] = Merge(result[key], patchValue)
	}

	return result
}

// Documents merges two JSON objects. A nil patch yields a shallow copy of base.
func Documents(base, patch map[string]any) map[string]any {
	if patch == nil {
		patch = map[string]any{}
	}

	//nolint:forcetypeassert // Merge of an object patch always returns an object.
	return Merge(base, patch).(map[string]any)
}

// clone deep-copies objects and arrays so callers cannot reach into the patch through the result.
func clone(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		cloned := make(map[string]any, len(typed))
		for key, nested := range typed {
			cloned[key] = clone(nested)
		}

		return cloned
	case []any:
		cloned := make([]any, len(typed))
		for i, nested := range typed {
			cloned[i] = clone(nested)
		}

		return cloned
	default:
		return value
	}
}
