package config

import (
	"strings"

	"go.yaml.in/yaml/v3"
)

// StringList accepts either a comma-separated scalar or a YAML sequence and
// normalizes to trimmed, non-empty names.
type StringList []string

// ParseStringList splits a comma-separated list of names.
func ParseStringList(value string) StringList {
	return normalizeNames(strings.Split(value, ","))
}

func (s StringList) Contains(name string) bool {
	for _, item := range s {
		if item == name {
			return true
		}
	}
	return false
}

func (s StringList) String() string {
	return strings.Join(s, ",")
}

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*s = nil
		return nil
	}
	if value.Kind == yaml.ScalarNode {
		if value.Tag == "!!null" {
			*s = nil
			return nil
		}
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = ParseStringList(single)
		return nil
	}

	var items []string
	if err := value.Decode(&items); err != nil {
		return err
	}
	*s = normalizeNames(items)
	return nil
}

func (s StringList) MarshalYAML() (any, error) {
	if s == nil {
		return nil, nil
	}
	return []string(s), nil
}

func normalizeNames(values []string) StringList {
	var names StringList
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		names = append(names, trimmed)
	}
	return names
}

func cloneStringList(values StringList) StringList {
	if values == nil {
		return nil
	}
	cloned := make(StringList, len(values))
	copy(cloned, values)
	return cloned
}
