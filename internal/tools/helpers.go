package tools

func stringOrDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// boolOrDefault distinguishes "omitted" from an explicit false; defaults for
// flags like is_active are true, so the args structs carry *bool.
func boolOrDefault(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func intOrDefault(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func stringField(record map[string]any, key, fallback string) string {
	if v, ok := record[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
