package server

import (
	"fmt"
	"sort"
	"strings"
)

// InputSchema describes the JSON Schema for tool input. Only the object
// shape with flat properties is supported; that covers every tool here.
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes a single tool parameter.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Validate checks args against the schema and returns a copy with defaults
// filled in. Required parameters must be present, unknown parameters are
// rejected, and every supplied value must match its declared type (and enum
// where one is declared). All offending parameters are reported in one error.
func (s InputSchema) Validate(args map[string]any) (map[string]any, error) {
	var problems []string

	for name := range args {
		if _, ok := s.Properties[name]; !ok {
			problems = append(problems, fmt.Sprintf("unknown parameter %q", name))
		}
	}

	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			problems = append(problems, fmt.Sprintf("missing required parameter %q", name))
		}
	}

	validated := make(map[string]any, len(s.Properties))
	for name, val := range args {
		prop, ok := s.Properties[name]
		if !ok {
			continue
		}
		if !typeMatches(prop.Type, val) {
			problems = append(problems, fmt.Sprintf("parameter %q must be of type %s", name, prop.Type))
			continue
		}
		if len(prop.Enum) > 0 {
			str, _ := val.(string)
			if !contains(prop.Enum, str) {
				problems = append(problems, fmt.Sprintf("parameter %q must be one of [%s]", name, strings.Join(prop.Enum, ", ")))
				continue
			}
		}
		validated[name] = val
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("%w: %s", ErrInvalidArguments, strings.Join(problems, "; "))
	}

	for name, prop := range s.Properties {
		if _, ok := validated[name]; !ok && prop.Default != nil {
			validated[name] = prop.Default
		}
	}

	return validated, nil
}

// typeMatches checks a decoded JSON value against a declared schema type.
// JSON numbers decode as float64, so integer additionally requires an
// integral value.
func typeMatches(schemaType string, val any) bool {
	switch schemaType {
	case "string":
		_, ok := val.(string)
		return ok
	case "boolean":
		_, ok := val.(bool)
		return ok
	case "number":
		return isNumber(val)
	case "integer":
		switch v := val.(type) {
		case float64:
			return v == float64(int64(v))
		case int, int64:
			return true
		default:
			return false
		}
	case "object":
		_, ok := val.(map[string]any)
		return ok
	case "array":
		_, ok := val.([]any)
		return ok
	default:
		return false
	}
}

func isNumber(val any) bool {
	switch val.(type) {
	case float64, int, int64:
		return true
	default:
		return false
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
