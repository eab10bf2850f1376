// Copyright (c) 2026 Treeline Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package document

import (
	"fmt"
	"reflect"
	"time"

	"github.com/treelinelabs/otelkit/config"
)

// Component references an extensible component by name together with
// its component-specific properties.
//
// In the document a component is written either as a bare string
//
//	sampler: always_on
//
// or as a single-key mapping whose key is the component name
//
//	sampler:
//	  trace_id_ratio_based:
//	    ratio: 0.25
type Component struct {
	Name       string
	Properties Properties
}

// Properties holds the raw, signal-agnostic configuration of one
// component. Factories decode it into their own config structs.
type Properties map[string]any

// Decode unmarshals the properties into v, matching struct fields by
// their "config" tag. Durations accept Go duration strings ("5s") or
// bare integers interpreted as milliseconds, which is how the file
// format spells timeouts and intervals.
func (p Properties) Decode(v any) error {
	m, err := config.Read(config.Map(p))
	if err != nil {
		return err
	}
	return m.Unmarshal(
		v,
		config.WithDecodeHook(componentHookFunc()),
		config.WithDecodeHook(millisecondHookFunc()),
	)
}

// AmbiguousComponentError occurs when a component mapping holds more
// than one key and the intended component name cannot be determined.
type AmbiguousComponentError struct {
	Names []string
}

// Error implements the [builtin.error] interface.
func (e AmbiguousComponentError) Error() string {
	return fmt.Sprintf("component mapping must have exactly one key, got %d: %v", len(e.Names), e.Names)
}

var componentType = reflect.TypeOf(Component{})

// componentHookFunc decodes the two document spellings of a component
// reference into a [Component].
func componentHookFunc() func(f reflect.Type, t reflect.Type, data any) (any, error) {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != componentType {
			return nil, config.SkipDecodeHook
		}

		switch x := data.(type) {
		case string:
			return Component{Name: x}, nil
		case map[string]any:
			if len(x) != 1 {
				names := make([]string, 0, len(x))
				for name := range x {
					names = append(names, name)
				}
				return nil, AmbiguousComponentError{Names: names}
			}
			for name, props := range x {
				c := Component{Name: name}
				if m, ok := props.(map[string]any); ok {
					c.Properties = Properties(m)
				}
				return c, nil
			}
		}
		return nil, config.SkipDecodeHook
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

// millisecondHookFunc interprets bare integers as milliseconds when
// decoding into a [time.Duration], per the file format.
func millisecondHookFunc() func(f reflect.Type, t reflect.Type, data any) (any, error) {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != durationType {
			return nil, config.SkipDecodeHook
		}

		switch x := data.(type) {
		case int:
			return time.Duration(x) * time.Millisecond, nil
		case int64:
			return time.Duration(x) * time.Millisecond, nil
		case float64:
			return time.Duration(x * float64(time.Millisecond)), nil
		default:
			return nil, config.SkipDecodeHook
		}
	}
}
