// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/MKhiriev/go-valid-record/result"
	"github.com/MKhiriev/go-valid-record/validate"
)

// metadata is the resolved, immutable form of a record type's attribute
// declaration. One instance exists per concrete type for the lifetime of
// the process; all maps are populated at resolution time and never
// written again, which is what makes sharing across goroutines safe.
type metadata struct {
	typeName string

	// names holds the attribute names in declaration order; index maps a
	// name back to its position.
	names []string
	index map[string]int

	validators map[string][]validate.Func
	classes    map[string]Class
	defaults   map[string]defaultProvider
	getters    map[string]func(any) any
	setters    map[string]func(any) any
	generators map[string]func(any, bool) any
	options    map[string]Option

	// fillDefaults is set for value objects and entities; entity enables
	// generators, read-only exclusion and getters/setters.
	fillDefaults bool
	entity       bool
}

// defaultProvider normalizes the two accepted default forms: a literal
// value or a zero-argument provider function.
type defaultProvider struct {
	literal any
	fn      func() any
}

func (d defaultProvider) value() any {
	if d.fn != nil {
		return d.fn()
	}
	return d.literal
}

// metaCache memoizes resolved metadata keyed by the concrete pointer
// type. sync.Map gives safe lazy initialization under concurrent first
// use; a duplicate resolution race is harmless because the loser's
// result is discarded and metadata is immutable.
var metaCache sync.Map // reflect.Type -> *metadata

// metadataFor returns the resolved metadata for def's concrete type,
// computing and caching it on first use. Panics on a broken declaration.
func metadataFor(def Definition) *metadata {
	t := reflect.TypeOf(def)
	if cached, ok := metaCache.Load(t); ok {
		return cached.(*metadata)
	}

	resolved := resolveMetadata(t, def)
	cached, _ := metaCache.LoadOrStore(t, resolved)
	return cached.(*metadata)
}

// resolveMetadata extracts one mapping per specification key from the
// single Attributes declaration. Any inconsistency in the declaration is
// a programming error and panics immediately.
func resolveMetadata(t reflect.Type, def Definition) *metadata {
	m := &metadata{
		typeName:   t.String(),
		index:      make(map[string]int),
		validators: make(map[string][]validate.Func),
		classes:    make(map[string]Class),
		defaults:   make(map[string]defaultProvider),
		getters:    make(map[string]func(any) any),
		setters:    make(map[string]func(any) any),
		generators: make(map[string]func(any, bool) any),
		options:    make(map[string]Option),
	}

	_, m.fillDefaults = def.(interface{ appliesDefaults() })
	_, m.entity = def.(interface{ entityRecord() })
	if m.entity {
		m.fillDefaults = true
	}

	for _, attr := range def.Attributes() {
		name := attr.Name
		if name == "" {
			panic(fmt.Sprintf("record: %s declares an attribute with an empty name", m.typeName))
		}
		if _, dup := m.index[name]; dup {
			panic(fmt.Sprintf("record: %s declares attribute %q twice", m.typeName, name))
		}
		m.index[name] = len(m.names)
		m.names = append(m.names, name)

		spec := attr.Spec
		if chain := resolveValidators(m.typeName, name, spec.Validators); len(chain) > 0 {
			m.validators[name] = chain
		}
		if spec.Class != nil {
			m.classes[name] = spec.Class
		}

		if spec.Default != nil {
			if !m.fillDefaults {
				panic(fmt.Sprintf("record: %s.%s declares a default, but %s fills no defaults; embed ValueObject or Entity", m.typeName, name, m.typeName))
			}
			m.defaults[name] = resolveDefault(spec.Default)
		}

		if spec.Getter != nil || spec.Setter != nil || spec.Generator != nil || spec.Options != 0 {
			if !m.entity {
				panic(fmt.Sprintf("record: %s.%s uses entity-only specification keys; embed Entity", m.typeName, name))
			}
		}
		if spec.Getter != nil {
			m.getters[name] = spec.Getter
		}
		if spec.Setter != nil {
			m.setters[name] = spec.Setter
		}
		if spec.Generator != nil {
			m.generators[name] = spec.Generator
		}
		if spec.Options != 0 {
			m.options[name] = spec.Options
		}
	}

	return m
}

// resolveValidators turns the heterogeneous validator references of a
// declaration into a uniform function table. Unknown names and unnamed
// inline functions (under strict naming) are fatal.
func resolveValidators(typeName, attribute string, refs []any) []validate.Func {
	if len(refs) == 0 {
		return nil
	}

	chain := make([]validate.Func, 0, len(refs))
	for i, ref := range refs {
		switch v := ref.(type) {
		case string:
			fn, ok := validate.Lookup(v)
			if !ok {
				panic(fmt.Sprintf("record: %s.%s references unknown validator %q", typeName, attribute, v))
			}
			chain = append(chain, fn)

		case NamedValidator:
			if v.Name == "" || v.Fn == nil {
				panic(fmt.Sprintf("record: %s.%s validator #%d has an incomplete NamedValidator", typeName, attribute, i))
			}
			chain = append(chain, v.Fn)

		case validate.Func:
			chain = append(chain, inlineValidator(typeName, attribute, i, v))

		case func(string, string, *any, *result.OperationResult) bool:
			chain = append(chain, inlineValidator(typeName, attribute, i, v))

		default:
			panic(fmt.Sprintf("record: %s.%s validator #%d has unsupported type %T", typeName, attribute, i, ref))
		}
	}
	return chain
}

// inlineValidator admits a bare function reference only when strict
// naming is disabled.
func inlineValidator(typeName, attribute string, i int, fn validate.Func) validate.Func {
	if currentSettings().StrictValidatorNames {
		panic(fmt.Sprintf("record: %s.%s validator #%d is an unnamed inline function; wrap it in Named or disable strict validator naming", typeName, attribute, i))
	}
	return fn
}

func resolveDefault(ref any) defaultProvider {
	if fn, ok := ref.(func() any); ok {
		return defaultProvider{fn: fn}
	}
	return defaultProvider{literal: ref}
}
