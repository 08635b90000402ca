package invoices

// DeepMerge merges sources left to right into a new tree. When both the accumulated value
// and the incoming value under a key are objects the merge recurses; in every other case
// (arrays, scalars, nil, or an object replacing a non-object) the later value replaces the
// earlier one wholesale. Sources are never modified and the result shares no maps or
// slices with them.
func DeepMerge(sources ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, src := range sources {
		mergeInto(out, src)
	}
	return out
}

func mergeInto(dst, src map[string]interface{}) {
	for k, v := range src {
		incoming, incomingIsMap := v.(map[string]interface{})
		current, currentIsMap := dst[k].(map[string]interface{})
		if incomingIsMap && currentIsMap {
			mergeInto(current, incoming)
			continue
		}
		dst[k] = deepCopy(v)
	}
}

func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopy(v)
	}
	return out
}
