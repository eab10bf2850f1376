// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import "fmt"

// Map is an ordinary map[string]any but implements both the
// Source and Store interfaces.
type Map map[string]any

// Apply implements the [Source] interface. It recursively walks the
// underlying map to find key value pairs to set on the given store.
func (m Map) Apply(store Store) error {
	return walkMap(m, store, nil)
}

func walkMap(m map[string]any, store Store, keys []string) error {
	for k, v := range m {
		switch x := v.(type) {
		case map[string]any:
			// An empty map is a leaf. Recursing into it would record
			// nothing and the key would vanish from the store.
			if len(x) == 0 {
				err := store.Set(append(keys, k), x)
				if err != nil {
					return err
				}
				continue
			}

			err := walkMap(x, store, append(keys, k))
			if err != nil {
				return err
			}
		default:
			err := store.Set(append(keys, k), x)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// EmptyKeyError occurs when a source tries to set a value with no key.
type EmptyKeyError struct {
	Value any
}

// Error implements the [builtin.error] interface.
func (e EmptyKeyError) Error() string {
	return fmt.Sprintf("attempted to set value with an empty key: %v", e.Value)
}

// UnexpectedKeyValueTypeError represents the situation when a source
// tries setting a sub-key under a key which previously held a
// non-map value.
type UnexpectedKeyValueTypeError struct {
	Key          string
	ExpectedType string
}

// Error implements the [builtin.error] interface.
func (e UnexpectedKeyValueTypeError) Error() string {
	return fmt.Sprintf("expected key %q to hold a %s", e.Key, e.ExpectedType)
}

// Set implements the [Store] interface.
func (m Map) Set(keys []string, value any) error {
	if len(keys) == 0 {
		return EmptyKeyError{Value: value}
	}

	cur := m
	for _, k := range keys[:len(keys)-1] {
		v, ok := cur[k]
		if !ok || v == nil {
			next := make(Map)
			cur[k] = map[string]any(next)
			cur = next
			continue
		}

		sub, ok := v.(map[string]any)
		if !ok {
			return UnexpectedKeyValueTypeError{
				Key:          k,
				ExpectedType: "map[string]any",
			}
		}
		cur = sub
	}

	cur[keys[len(keys)-1]] = value
	return nil
}
