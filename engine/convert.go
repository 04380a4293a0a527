package engine

// Configuration maps arrive from JSON (numbers as float64), YAML
// (numbers as int) or Go literals. These accessors normalize the
// lookups; every getter reports ok=false for a present value of the
// wrong type so validators can flag it.

func getString(config map[string]any, key string) (string, bool) {
	v, present := config[key]
	if !present {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func getStringDefault(config map[string]any, key, def string) (string, bool) {
	if _, present := config[key]; !present {
		return def, true
	}
	return getString(config, key)
}

func getInt(config map[string]any, key string) (int, bool) {
	v, present := config[key]
	if !present {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// getIntDefault returns def when the key is absent. A present value of
// the wrong type yields (def, false) so range checks downstream still
// operate on something sane.
func getIntDefault(config map[string]any, key string, def int) (int, bool) {
	if _, present := config[key]; !present {
		return def, true
	}
	if n, ok := getInt(config, key); ok {
		return n, true
	}
	return def, false
}

func getFloat(config map[string]any, key string) (float64, bool) {
	v, present := config[key]
	if !present {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func getFloatDefault(config map[string]any, key string, def float64) (float64, bool) {
	if _, present := config[key]; !present {
		return def, true
	}
	if f, ok := getFloat(config, key); ok {
		return f, true
	}
	return def, false
}

func getBoolDefault(config map[string]any, key string, def bool) bool {
	v, present := config[key]
	if !present {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}
