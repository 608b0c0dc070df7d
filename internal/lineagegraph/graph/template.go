package graph

import (
	"fmt"
	"regexp"
	"strings"
)

// NewVariableSpec constructs a required VariableSpec with no default and
// no validation pattern.
func NewVariableSpec(name, typeHint string) VariableSpec {
	return VariableSpec{Name: name, TypeHint: typeHint, Required: true}
}

// WithDefault returns a copy of the spec carrying the given default value
// and marked optional: supplying a default implies the variable is no
// longer required.
func (v VariableSpec) WithDefault(value string) VariableSpec {
	v.Default = &value
	v.Required = false
	return v
}

// WithValidation returns a copy of the spec with the given regexp pattern
// attached.
func (v VariableSpec) WithValidation(pattern string) VariableSpec {
	v.ValidationRegexp = pattern
	return v
}

// Validate checks a supplied value (nil meaning "not provided by the
// caller") against the spec: a required variable with no value and no
// default is an error, and a provided value failing ValidationRegexp is
// an error.
func (v VariableSpec) Validate(value *string) error {
	effective := value
	if effective == nil {
		effective = v.Default
	}
	if effective == nil {
		if v.Required {
			return fmt.Errorf("graph: variable %q is required but no value or default was supplied", v.Name)
		}
		return nil
	}
	if v.ValidationRegexp != "" {
		re, err := regexp.Compile(v.ValidationRegexp)
		if err != nil {
			return fmt.Errorf("graph: variable %q has invalid validation pattern %q: %w", v.Name, v.ValidationRegexp, err)
		}
		if !re.MatchString(*effective) {
			return fmt.Errorf("graph: variable %q value %q does not match pattern %q", v.Name, *effective, v.ValidationRegexp)
		}
	}
	return nil
}

// Validate checks every declared variable of t against the supplied
// values map, in declaration order, returning the first failure.
func (t *Template) Validate(values map[string]string) error {
	for _, spec := range t.Variables {
		var value *string
		if v, ok := values[spec.Name]; ok {
			value = &v
		}
		if err := spec.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

// Instantiate validates values against every declared variable, then
// substitutes each "{{name}}" placeholder in the template string with
// the provided value (falling back to the variable's Default), in
// declaration order. Validation runs for every variable before any
// substitution happens, so a single invalid value leaves the template
// body untouched.
func (t *Template) Instantiate(values map[string]string) (string, error) {
	if err := t.Validate(values); err != nil {
		return "", err
	}
	final := make(map[string]string, len(t.Variables))
	for _, spec := range t.Variables {
		if v, ok := values[spec.Name]; ok {
			final[spec.Name] = v
		} else if spec.Default != nil {
			final[spec.Name] = *spec.Default
		}
	}
	result := t.Template
	for _, spec := range t.Variables {
		if value, ok := final[spec.Name]; ok {
			result = strings.ReplaceAll(result, "{{"+spec.Name+"}}", value)
		}
	}
	return result, nil
}
