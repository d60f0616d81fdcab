package common

import "strings"

// ParseAssignments turns "key=value" items into a map. Later items win.
func ParseAssignments(items []string) (map[string]string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	output := make(map[string]string, len(items))
	for _, item := range items {
		key, value, err := splitAssignment(item)
		if err != nil {
			return nil, err
		}
		output[key] = value
	}
	return output, nil
}

// ParseAttributeAssignments is ParseAssignments for entity attributes. A
// dotted key builds a nested object.
func ParseAttributeAssignments(items []string) (map[string]any, error) {
	output := map[string]any{}
	for _, item := range items {
		key, value, err := splitAssignment(item)
		if err != nil {
			return nil, err
		}
		if err := setDottedValue(output, key, value); err != nil {
			return nil, err
		}
	}
	return output, nil
}

func splitAssignment(item string) (string, string, error) {
	key, value, found := strings.Cut(item, "=")
	if !found {
		return "", "", ValidationError("invalid assignment "+item+": expected key=value", nil)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", ValidationError("invalid assignment "+item+": key must not be empty", nil)
	}
	return key, value, nil
}

func setDottedValue(target map[string]any, dottedKey string, value string) error {
	segments := strings.Split(dottedKey, ".")
	current := target
	for idx, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return ValidationError("invalid assignment key "+dottedKey+": empty path segment", nil)
		}
		if idx == len(segments)-1 {
			current[segment] = value
			return nil
		}

		next, exists := current[segment]
		if !exists {
			child := map[string]any{}
			current[segment] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return ValidationError("invalid assignment key "+dottedKey+": path conflicts with scalar value", nil)
		}
		current = child
	}
	return nil
}
